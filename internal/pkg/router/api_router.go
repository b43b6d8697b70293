package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sweatandcode/tasksher/app/controllers"
	"github.com/sweatandcode/tasksher/internal/pkg/cache"
	"github.com/sweatandcode/tasksher/internal/pkg/contact"
	"github.com/sweatandcode/tasksher/internal/pkg/mail"
	"github.com/sweatandcode/tasksher/internal/pkg/middleware"
	"github.com/sweatandcode/tasksher/internal/pkg/ratelimit"
)

const (
	contactRateLimitMax    = 5
	contactRateLimitWindow = 15 * time.Minute
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api")

	// Contact form: mailer config is validated here so a broken SMTP
	// setup fails at startup, not on the first submission.
	mailer, err := mail.NewMailer(mail.ConfigFromEnv())
	if err != nil {
		log.Fatalf("mailer configuration invalid: %v", err)
	}
	contactService := contact.NewService(mailer, contact.ServiceConfigFromEnv())

	var store ratelimit.Store
	if client := cache.GetClient(); client != nil {
		store = ratelimit.NewRedisStore(client, "ratelimit:contact")
	} else {
		store = ratelimit.NewMemoryStore()
	}
	limiter := ratelimit.New(store, contactRateLimitMax, contactRateLimitWindow)

	contactController := controllers.NewContactController(contactService, limiter)
	api.Post("/contact", contactController.HandleContactSubmit)
	api.Get("/contact/info", contactController.HandleContactInfo)

	// Session identity
	api.Get("/auth/me", controllers.HandleAuthMe)

	// Authenticated dashboard surface
	user := api.Group("/user", middleware.RequireAPISessionAuth)
	user.Get("/profile", controllers.HandleGetProfile)
	user.Put("/profile", controllers.HandleUpdateProfile)
	user.Get("/usage", controllers.HandleGetUsage)
	user.Get("/subscription", controllers.HandleGetSubscription)

	automations := api.Group("/automations", middleware.RequireAPISessionAuth)
	automations.Get("/", controllers.HandleListAutomations)
	automations.Post("/", controllers.HandleCreateAutomation)
	automations.Get("/:uuid", controllers.HandleGetAutomation)
	automations.Put("/:uuid", controllers.HandleUpdateAutomation)
	automations.Post("/:uuid/toggle", controllers.HandleToggleAutomation)
	automations.Delete("/:uuid", controllers.HandleDeleteAutomation)

	tasks := api.Group("/tasks", middleware.RequireAPISessionAuth)
	tasks.Get("/", controllers.HandleListTasks)
	tasks.Post("/", controllers.HandleCreateTask)
	tasks.Get("/:uuid", controllers.HandleGetTask)

	integrations := api.Group("/integrations", middleware.RequireAPISessionAuth)
	integrations.Get("/", controllers.HandleListIntegrations)
	integrations.Post("/", controllers.HandleCreateIntegration)
	integrations.Put("/:uuid", controllers.HandleUpdateIntegration)
	integrations.Delete("/:uuid", controllers.HandleDeleteIntegration)

	billing := api.Group("/billing", middleware.RequireAPISessionAuth)
	billing.Post("/checkout", controllers.HandleCreateCheckoutSession)

	// Gateway webhooks authenticate via signature, not session.
	app.Post("/webhooks/stripe", controllers.HandleStripeWebhook)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
