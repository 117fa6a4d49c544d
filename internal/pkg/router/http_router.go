package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/middleware"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/oauth"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	app.Use(cors.New())
	app.Use(csrfMiddleware())

	// UserContext first, then the path gate that acts on it
	app.Use(middleware.UserContextMiddleware)
	app.Use(middleware.RouteGate)

	h.registerPublicRoutes(app)
	h.registerMemberRoutes(app)
	h.registerAdminRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
