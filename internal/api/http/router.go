package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/creatorhub/memberkit/internal/api/http/handlers"
	"github.com/creatorhub/memberkit/internal/auth"
	"github.com/creatorhub/memberkit/internal/domain"
	"github.com/creatorhub/memberkit/internal/observability"
	"github.com/creatorhub/memberkit/internal/repository"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Campaigns      *handlers.CampaignsHandler
	Members        *handlers.MembersHandler
	Locations      *handlers.LocationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)

	users := app.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Post("/fetchBaseInfo", cfg.AuthMiddleware.Handle, cfg.Users.FetchBaseInfo)

	campaigns := app.Group("/campaigns", cfg.AuthMiddleware.Handle)
	campaigns.Post("/check-page-url", cfg.Campaigns.CheckPageURL)
	campaigns.Post("/initialize", cfg.Campaigns.Initialize)
	campaigns.Post("/check-exists", cfg.Campaigns.CheckExists)

	creator := auth.RequirePersona(domain.PersonaTypeCampaign)
	campaigns.Get("/me", creator, cfg.Campaigns.GetMine)
	campaigns.Put("/campaign-settings", creator, cfg.Campaigns.UpdateCampaignSettings)
	campaigns.Put("/general-settings", creator, cfg.Campaigns.UpdateGeneralSettings)
	campaigns.Put("/page-content", creator, cfg.Campaigns.UpdatePageContent)

	members := app.Group("/members", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	members.Get("/current", cfg.Members.GetCurrent)
	members.Patch("/settings", cfg.Members.UpdateSettings)

	locations := app.Group("/platform/locations", cfg.AuthMiddleware.Handle)
	locations.Get("/countries", cfg.Locations.Countries)
	locations.Get("/states", cfg.Locations.States)
	locations.Get("/info", cfg.Locations.Info)
}

// ServerOptions configures NewServer.
type ServerOptions struct {
	Name            string
	Version         string
	JWTSecret       string
	TokenTTLMinutes int
	BcryptCost      int
	RequestTimeout  time.Duration
	Logger          *zap.Logger
	// Registry receives the request metrics served on /metrics. A private registry is used when nil.
	Registry *prometheus.Registry
}

// NewServer assembles the development backend with fresh in-memory repositories.
func NewServer(opts ServerOptions) *fiber.App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               opts.Name,
		DisableStartupMessage: true,
	})
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	RegisterMiddlewares(app, logger, observability.NewServerMetrics(registry), opts.RequestTimeout)
	app.Get("/metrics", adaptor.HTTPHandler(observability.Handler(registry)))

	users := repository.NewUserRepository()
	members := repository.NewMemberRepository()
	campaigns := repository.NewCampaignRepository()
	tokens := auth.NewTokenManager(opts.JWTSecret, opts.TokenTTLMinutes)

	RegisterRoutes(app, RouteConfig{
		Health: handlers.NewHealthHandler(opts.Name, opts.Version),
		Users: handlers.NewUsersHandler(handlers.UsersDependencies{
			Users:      users,
			Members:    members,
			Campaigns:  campaigns,
			Tokens:     tokens,
			BcryptCost: opts.BcryptCost,
			Logger:     logger,
		}),
		Campaigns:      handlers.NewCampaignsHandler(campaigns, logger),
		Members:        handlers.NewMembersHandler(members),
		Locations:      handlers.NewLocationsHandler(),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, users),
	})
	return app
}
