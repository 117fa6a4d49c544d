package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/subscription"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/usercontext"
)

// HandleHealth is the liveness endpoint.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleHome renders the landing page.
func HandleHome(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	return c.Render("index", fiber.Map{
		"Title":      "Jàngatub",
		"IsLoggedIn": userCtx.IsLoggedIn,
		"Username":   userCtx.Username,
	})
}

// HandleLoginPage renders the login form; the actual login is a JSON POST.
func HandleLoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Title": "Connexion",
		"Flash": flash.Get(c),
	})
}

// HandlePricingPage renders the paid plans. The route gate lands
// non-premium members here with a reason code in the flash data.
func HandlePricingPage(c *fiber.Ctx) error {
	return c.Render("pricing", fiber.Map{
		"Title": "Abonnement Premium",
		"Flash": flash.Get(c),
		"Plans": planList(),
	})
}

// HandlePricing lists the paid plans with their prices in XOF.
func HandlePricing(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"currency": "XOF", "plans": planList()})
}

func planList() []fiber.Map {
	plans := make([]fiber.Map, 0, 2)
	for _, plan := range []string{models.PlanMonthly, models.PlanAnnual} {
		price, _ := subscription.PlanPriceXOF(plan)
		duration, _ := subscription.PlanDuration(plan)
		plans = append(plans, fiber.Map{
			"plan":          plan,
			"price_xof":     price,
			"duration_days": int(duration.Hours() / 24),
		})
	}
	return plans
}
