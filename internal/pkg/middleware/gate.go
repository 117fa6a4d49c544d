package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/constants"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/entitlements"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/usercontext"
)

// Path prefix tables for the route gate. Premium prefixes additionally
// require an authenticated session; a path matching nothing is public.
var (
	premiumPrefixes = []string{
		"/ai",
		"/documents/corrections",
		"/premium/content",
	}
	adminPrefixes = []string{
		"/admin",
	}
	authPrefixes = []string{
		"/favorites",
		"/download",
		"/quiz",
		"/premium",
		"/payment",
		"/profile",
	}
)

// Decision is the gate's verdict for one request path. A non-allowed decision
// names the redirect target and a reason code for the destination page.
type Decision struct {
	Allow  bool
	Target string
	Reason string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(target, reason string) Decision {
	return Decision{Target: target, Reason: reason}
}

func matchesAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Decide classifies the path against the tier tables and checks the session
// context. It is a pure function: no lookups, no side effects.
func Decide(path string, ctx usercontext.UserContext) Decision {
	if matchesAny(path, premiumPrefixes) && !entitlements.Allowed(ctx, entitlements.CapPremium) {
		return redirect(constants.PricingRoute, constants.ReasonPremiumRequired)
	}
	if matchesAny(path, adminPrefixes) && !entitlements.Allowed(ctx, entitlements.CapAdmin) {
		return redirect(constants.HomeRoute, "")
	}
	requiresAuth := matchesAny(path, authPrefixes) ||
		matchesAny(path, premiumPrefixes) ||
		matchesAny(path, adminPrefixes)
	if requiresAuth && !entitlements.Allowed(ctx, entitlements.CapAuthenticated) {
		return redirect(constants.LoginRoute, "")
	}
	return allow()
}

// RouteGate enforces the tier decision before business logic runs.
func RouteGate(c *fiber.Ctx) error {
	decision := Decide(c.Path(), usercontext.GetUserContext(c))
	if decision.Allow {
		return c.Next()
	}
	if decision.Reason != "" {
		return flash.WithData(c, fiber.Map{"reason": decision.Reason}).
			Redirect(decision.Target, fiber.StatusSeeOther)
	}
	return c.Redirect(decision.Target, fiber.StatusSeeOther)
}
