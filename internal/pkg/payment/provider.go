package payment

import (
	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/subscription"
)

// ClientFor returns the checkout provider for a wire name, or nil when the
// name is unknown. Callers treat nil like an unconfigured provider.
func ClientFor(provider string) subscription.CheckoutProvider {
	switch provider {
	case models.ProviderWave, "":
		return NewWaveClientFromEnv()
	case models.ProviderOrangeMoney:
		return NewOrangeMoneyClientFromEnv()
	default:
		return nil
	}
}
