package constants

// Static route constants
const (
	HomeRoute    = "/"
	LoginRoute   = "/login"
	PricingRoute = "/pricing"
)

// Redirect reason codes carried to the pricing page
const (
	ReasonPremiumRequired = "premium_required"
)
