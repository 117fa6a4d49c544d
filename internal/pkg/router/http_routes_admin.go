package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/controllers"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAdmin)

	adminGroup.Get("/stats", controllers.HandleAdminStats)
	adminGroup.Get("/users", controllers.HandleAdminListUsers)
	adminGroup.Patch("/users/:id<int>/premium", controllers.HandleAdminSetPremium)
	adminGroup.Delete("/users/:id<int>", controllers.HandleAdminDeleteUser)

	adminGroup.Post("/upload", controllers.HandleAdminUpload)
}
