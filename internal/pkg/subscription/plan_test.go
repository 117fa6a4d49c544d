package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
)

func TestPlanDuration(t *testing.T) {
	d, ok := PlanDuration(models.PlanMonthly)
	assert.True(t, ok)
	assert.Equal(t, 30*24*time.Hour, d)

	d, ok = PlanDuration(models.PlanAnnual)
	assert.True(t, ok)
	assert.Equal(t, 365*24*time.Hour, d)

	_, ok = PlanDuration(models.PlanAdminActivate)
	assert.False(t, ok)

	_, ok = PlanDuration("weekly")
	assert.False(t, ok)

	d, ok = PlanDuration("  Monthly ")
	assert.True(t, ok)
	assert.Equal(t, 30*24*time.Hour, d)
}

func TestPlanPriceXOF(t *testing.T) {
	price, ok := PlanPriceXOF(models.PlanMonthly)
	assert.True(t, ok)
	assert.Equal(t, PriceMonthlyXOF, price)

	price, ok = PlanPriceXOF(models.PlanAnnual)
	assert.True(t, ok)
	assert.Equal(t, PriceAnnualXOF, price)

	_, ok = PlanPriceXOF(models.PlanAdminActivate)
	assert.False(t, ok)
}

func TestNormalizeProvider(t *testing.T) {
	assert.Equal(t, models.ProviderWave, normalizeProvider(" Wave "))
	assert.Equal(t, models.ProviderOrangeMoney, normalizeProvider("ORANGE_MONEY"))
	assert.Equal(t, "", normalizeProvider("paypal"))
}
