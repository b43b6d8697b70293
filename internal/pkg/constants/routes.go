package constants

// Static route constants
const (
	PublicRoute  = "/"
	APIRoute     = "/api"
	AuthRoute    = "/auth"
	WebhookRoute = "/webhooks"
)
