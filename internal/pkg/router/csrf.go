package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/env"
)

// csrfMiddleware protects the session-backed browser routes. Webhooks carry
// no session, the OAuth flow manages its own state, and the /api group is
// meant for non-browser clients.
func csrfMiddleware() fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "header:X-Csrf-Token",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/") ||
				strings.HasPrefix(c.Path(), "/webhooks/") ||
				strings.HasPrefix(c.Path(), "/auth/")
		},
	})
}
