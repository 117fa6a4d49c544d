package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/controllers"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/middleware"
)

// Member routes sit behind the route gate's auth tier; RequireAuth stays on
// each route so a handler is never reachable without a session even if the
// prefix tables change.
func (h HttpRouter) registerMemberRoutes(app *fiber.App) {
	app.Get("/profile", middleware.RequireAuth, controllers.HandleProfile)
	app.Get("/profile/subscriptions", middleware.RequireAuth, controllers.HandleListSubscriptions)

	app.Get("/favorites", middleware.RequireAuth, controllers.HandleListFavorites)
	app.Post("/favorites", middleware.RequireAuth, controllers.HandleToggleFavorite)
	app.Post("/favorites/:id<int>/toggle", middleware.RequireAuth, controllers.HandleToggleFavorite)

	app.Get("/quiz/:id<int>", middleware.RequireAuth, controllers.HandleGetQuiz)
	app.Post("/quiz/:id<int>/submit", middleware.RequireAuth, controllers.HandleSubmitQuiz)

	app.Get("/download/:id<int>", middleware.RequireAuth, controllers.HandleDownloadDocument)
	app.Post("/download/pack", middleware.RequireAuth, controllers.HandleDownloadPack)

	app.Post("/payment/checkout", middleware.RequireAuth, controllers.HandleCheckout)
	app.Post("/premium/activate", middleware.RequireAuth, controllers.HandleActivatePremium)

	// Premium tier, enforced by the gate on the /ai prefix
	app.Post("/ai/generate-quiz", middleware.RequireAuth, controllers.HandleGenerateQuiz)
}
