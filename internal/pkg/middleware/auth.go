package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/constants"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/entitlements"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/usercontext"
)

// RequireAuth ensures a logged-in web session; redirects to /login if missing.
func RequireAuth(c *fiber.Ctx) error {
	if !entitlements.Allowed(usercontext.GetUserContext(c), entitlements.CapAuthenticated) {
		return c.Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAdmin ensures a logged-in admin; redirects otherwise.
func RequireAdmin(c *fiber.Ctx) error {
	ctx := usercontext.GetUserContext(c)
	if !entitlements.Allowed(ctx, entitlements.CapAuthenticated) {
		return c.Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}
	if !entitlements.Allowed(ctx, entitlements.CapAdmin) {
		return c.Redirect(constants.HomeRoute, fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAPISessionAuth ensures a logged-in session for API routes and returns JSON 401 instead of redirect.
func RequireAPISessionAuth(c *fiber.Ctx) error {
	if !entitlements.Allowed(usercontext.GetUserContext(c), entitlements.CapAuthenticated) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "login required",
		})
	}
	return c.Next()
}

// RequireAPIAdmin ensures an admin session for API routes, JSON 401/403.
func RequireAPIAdmin(c *fiber.Ctx) error {
	ctx := usercontext.GetUserContext(c)
	if !entitlements.Allowed(ctx, entitlements.CapAuthenticated) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "login required",
		})
	}
	if !entitlements.Allowed(ctx, entitlements.CapAdmin) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "admin access required",
		})
	}
	return c.Next()
}
