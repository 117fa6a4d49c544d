package subscription

import (
	"strings"
	"time"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
)

const (
	monthlyDays = 30
	annualDays  = 365
)

// Plan prices in CFA francs.
const (
	PriceMonthlyXOF = 2500
	PriceAnnualXOF  = 15000
)

func normalizePlan(plan string) string {
	return strings.ToLower(strings.TrimSpace(plan))
}

func isPaidPlan(plan string) bool {
	switch normalizePlan(plan) {
	case models.PlanMonthly, models.PlanAnnual:
		return true
	default:
		return false
	}
}

// PlanDuration returns how long a paid plan entitles the user. The admin
// grant has no duration; callers must not compute an end date for it.
func PlanDuration(plan string) (time.Duration, bool) {
	switch normalizePlan(plan) {
	case models.PlanMonthly:
		return monthlyDays * 24 * time.Hour, true
	case models.PlanAnnual:
		return annualDays * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// PlanPriceXOF returns the checkout amount for a paid plan.
func PlanPriceXOF(plan string) (int, bool) {
	switch normalizePlan(plan) {
	case models.PlanMonthly:
		return PriceMonthlyXOF, true
	case models.PlanAnnual:
		return PriceAnnualXOF, true
	default:
		return 0, false
	}
}

func normalizeProvider(provider string) string {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case models.ProviderWave:
		return models.ProviderWave
	case models.ProviderOrangeMoney:
		return models.ProviderOrangeMoney
	default:
		return ""
	}
}
