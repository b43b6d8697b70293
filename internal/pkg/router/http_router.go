package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sweatandcode/tasksher/app/controllers"
	"github.com/sweatandcode/tasksher/internal/pkg/middleware"
	"github.com/sweatandcode/tasksher/internal/pkg/oauth"
	"github.com/sweatandcode/tasksher/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerPublicRoutes(app)
}

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Email + password auth
	app.Post("/auth/register", controllers.HandleAuthRegister)
	app.Post("/auth/login", controllers.HandleAuthLogin)
	app.Post("/auth/logout", controllers.HandleAuthLogout)

	// OAuth provider flow (google, github)
	app.Get("/auth/:provider", controllers.HandleOAuthBegin)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
