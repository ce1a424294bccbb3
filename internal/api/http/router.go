package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tsenako/console-service/internal/api/http/handlers"
	"github.com/tsenako/console-service/internal/auth"
	"github.com/tsenako/console-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Chats          *handlers.ChatsHandler
	FAQ            *handlers.FAQHandler
	Settings       *handlers.SettingsHandler
	Applications   *handlers.ApplicationsHandler
	Export         *handlers.ExportHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes for the public surface and the two
// consoles.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	public := app.Group("/api/public")
	public.Post("/tickets", cfg.Tickets.Intake)
	public.Post("/chats", cfg.Chats.Start)
	public.Post("/chats/:id/messages", cfg.Chats.Message)
	public.Post("/partner-applications", cfg.Applications.Submit)
	public.Get("/faq", cfg.FAQ.List)
	public.Post("/faq/:id/view", cfg.FAQ.RecordView)
	public.Post("/faq/:id/vote", cfg.FAQ.Vote)

	registerConsoleRoutes(app.Group("/api/shop", cfg.AuthMiddleware.Handle, auth.RequireScope(domain.ScopeShop)), cfg)
	platform := app.Group("/api/platform", cfg.AuthMiddleware.Handle, auth.RequireScope(domain.ScopePlatform))
	registerConsoleRoutes(platform, cfg)

	// live chat and partner review are platform-console features
	platform.Get("/chats", cfg.Chats.List)
	platform.Get("/chats/:id", cfg.Chats.Get)
	platform.Post("/chats/:id/take", cfg.Chats.Take)
	platform.Post("/chats/:id/end", cfg.Chats.End)
	platform.Post("/chats/:id/messages", cfg.Chats.Message)
	platform.Get("/export/chats", cfg.Export.Chats)

	platform.Get("/partner-applications", cfg.Applications.List)
	platform.Get("/partner-applications/:id", cfg.Applications.Get)
	platform.Post("/partner-applications/:id/approve", cfg.Applications.Approve)
	platform.Post("/partner-applications/:id/reject", cfg.Applications.Reject)
}

func registerConsoleRoutes(group fiber.Router, cfg RouteConfig) {
	group.Get("/tickets", cfg.Tickets.List)
	group.Get("/tickets/stats", cfg.Tickets.Stats)
	group.Get("/tickets/:id", cfg.Tickets.Get)
	group.Post("/tickets/:id/respond", cfg.Tickets.Respond)
	group.Post("/tickets/:id/close", cfg.Tickets.Close)
	group.Post("/tickets/:id/reopen", cfg.Tickets.Reopen)

	group.Get("/faq", cfg.FAQ.List)
	group.Get("/faq/:id", cfg.FAQ.Get)
	group.Post("/faq", cfg.FAQ.Create)
	group.Put("/faq/:id", cfg.FAQ.Update)
	group.Delete("/faq/:id", cfg.FAQ.Delete)

	group.Get("/settings/:section", cfg.Settings.Get)
	group.Patch("/settings/:section", cfg.Settings.UpdateField)
	group.Put("/settings/:section", cfg.Settings.Save)
	group.Post("/settings/security/password", cfg.Settings.ChangePassword)

	group.Get("/export/tickets", cfg.Export.Tickets)
	group.Get("/export/faq", cfg.Export.FAQ)
}
