package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/controllers"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/middleware"
)

type ApiRouter struct {
}

// InstallRouter registers the versioned JSON API. The same handlers back the
// web routes; the difference is rate limiting and 401/403 responses instead
// of redirects.
func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"name":    "jangatub",
			"version": "v1",
		})
	})

	v1 := api.Group("/v1")
	v1.Get("/documents", controllers.HandleListDocuments)
	v1.Get("/documents/:id<int>", controllers.HandleGetDocument)
	v1.Get("/levels", controllers.HandleListLevels)
	v1.Get("/subjects", controllers.HandleListSubjects)
	v1.Get("/quizzes", controllers.HandleListQuizzes)

	v1.Get("/me", middleware.RequireAPISessionAuth, controllers.HandleProfile)
	v1.Get("/me/favorites", middleware.RequireAPISessionAuth, controllers.HandleListFavorites)
	v1.Get("/me/subscriptions", middleware.RequireAPISessionAuth, controllers.HandleListSubscriptions)

	v1.Get("/admin/users", middleware.RequireAPIAdmin, controllers.HandleAdminListUsers)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
