package router

import (
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/controllers"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get("/", controllers.HandleHome)
	app.Get("/health", controllers.HandleHealth)
	app.Get("/login", controllers.HandleLoginPage)
	app.Get("/pricing", controllers.HandlePricingPage)
	app.Get("/pricing/plans", controllers.HandlePricing)

	// Catalog browsing is open; premium file URLs are withheld in the
	// controller for visitors without entitlement.
	app.Get("/levels", controllers.HandleListLevels)
	app.Get("/subjects", controllers.HandleListSubjects)
	app.Get("/documents", controllers.HandleListDocuments)
	app.Get("/documents/:id<int>", controllers.HandleGetDocument)
	app.Get("/quizzes", controllers.HandleListQuizzes)

	// Account
	app.Post("/auth/register", controllers.HandleRegister)
	app.Post("/auth/login", controllers.HandleLogin)
	app.Post("/auth/logout", controllers.HandleLogout)
	app.Post("/register", controllers.HandleRegister)
	app.Post("/login", controllers.HandleLogin)
	app.Post("/logout", controllers.HandleLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)

	// Payment provider webhooks (no session, references verified against
	// pending checkouts in the service)
	app.Post("/webhooks/wave", controllers.HandleWaveCallback)
	app.Post("/webhooks/orange", controllers.HandleOrangeCallback)
}
