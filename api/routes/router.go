package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/surjohq/surjo-backend/api/controllers"
	"github.com/surjohq/surjo-backend/api/middleware"
	"github.com/surjohq/surjo-backend/internal/auth"
	"github.com/surjohq/surjo-backend/internal/users"
	"github.com/surjohq/surjo-backend/pkg/config"
	"github.com/surjohq/surjo-backend/pkg/db"
	"github.com/surjohq/surjo-backend/pkg/logger"
	"github.com/surjohq/surjo-backend/pkg/metrics"
	"github.com/surjohq/surjo-backend/pkg/redis"
	"github.com/surjohq/surjo-backend/pkg/sysinfo"
)

type permissionGranter interface {
	Grant(ctx context.Context, userID uuid.UUID, name string) error
}

// Params bundles everything the router wires together.
type Params struct {
	Config         *config.Config
	Logger         *logger.Logger
	DBPinger       db.Pinger
	RedisClient    *redis.Client
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
	LoadSampler    sysinfo.Sampler
	AuthService    auth.Service
	UsersService   *users.Service
	Permissions    permissionGranter
}

// NewRouter assembles the HTTP surface. The documented API routes are
// deliberately open; only the admin-shaped supplemental routes sit behind
// the bearer-token middleware.
func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	createPolicy := middleware.NewAuthRateLimitPolicy(
		"create",
		cfg.AuthRateLimit.CreateWindow,
		cfg.AuthRateLimit.CreateIPLimit,
		cfg.AuthRateLimit.CreateEmailLimit,
	)

	// redis is optional; the limiter and the readiness probe only see it
	// when configured. Assigning a nil *redis.Client directly would hand
	// them a non-nil interface wrapping a nil pointer.
	var redisPinger redis.Pinger
	var limiterStore middleware.RateLimiterStore
	if p.RedisClient != nil {
		redisPinger = p.RedisClient
		limiterStore = p.RedisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DBPinger, redisPinger, logg))
	})

	if p.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", p.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/hello", controllers.Hello(p.LoadSampler, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, limiterStore, logg)).
				Post("/login", controllers.AuthLogin(p.AuthService, logg))
			r.Post("/google", controllers.AuthGoogleLogin(p.AuthService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(createPolicy, limiterStore, logg)).
				Post("/", controllers.UsersCreate(p.UsersService, logg))
			r.Get("/", controllers.UsersList(p.UsersService, logg))
			r.Get("/{id}", controllers.UsersGet(p.UsersService, logg))
			r.Put("/{id}", controllers.UsersUpdate(p.UsersService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Use(middleware.RequireAdmin(logg))
				r.Post("/{id}/permissions", controllers.UsersGrantPermission(p.UsersService, p.Permissions, logg))
				r.Delete("/{id}", controllers.UsersDeactivate(p.UsersService, logg))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/me", controllers.Me(p.UsersService, logg))
		})
	})

	return r
}
