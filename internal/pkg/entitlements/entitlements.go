package entitlements

import (
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/usercontext"
)

// Capability is a required right checked against the session-derived user
// context. The route gate and individual handlers share this single check so
// authorization logic is not re-derived per handler.
type Capability string

const (
	CapAuthenticated Capability = "authenticated"
	CapPremium       Capability = "premium"
	CapAdmin         Capability = "admin"
)

// Allowed reports whether the given user context satisfies the capability.
// Premium and admin both imply an authenticated session.
func Allowed(ctx usercontext.UserContext, cap Capability) bool {
	switch cap {
	case CapAuthenticated:
		return ctx.IsLoggedIn
	case CapPremium:
		return ctx.IsLoggedIn && (ctx.IsPremium || ctx.IsAdmin)
	case CapAdmin:
		return ctx.IsLoggedIn && ctx.IsAdmin
	default:
		return false
	}
}
