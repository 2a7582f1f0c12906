package http

import (
	"context"
	"time"

	"github.com/gildedfork/tablebook/internal/auth"
	"github.com/gildedfork/tablebook/internal/cache"
	"github.com/gildedfork/tablebook/internal/config"
	"github.com/gildedfork/tablebook/internal/http/handlers"
	"github.com/gildedfork/tablebook/internal/http/middlewares"
	"github.com/gildedfork/tablebook/internal/observability"
	"github.com/gildedfork/tablebook/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(cfg config.Config, pool *pgxpool.Pool, prom *observability.Prom) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(otelgin.Middleware("tablebook"))
	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// wire up repositories
	reservationsRepo := postgres.NewReservationsRepo(pool, prom)
	usersRepo := postgres.NewUsersRepo(pool, prom)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL)
	authMiddleware := middlewares.NewAuthMiddleware(jwtManager)
	limiter := middlewares.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)

	// hot path: each caller's list, invalidated on writes
	listCache := cache.New(30 * time.Second)

	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager)
	reservationsHandler := handlers.NewReservationsHandler(reservationsRepo, listCache)

	authRoutes := r.Group("/auth")
	authRoutes.Use(limiter.RateLimiterMiddleware(middlewares.KeyByIP))
	authRoutes.POST("/signup", authHandler.SignUp)
	authRoutes.POST("/login", authHandler.Login)

	reservations := r.Group("/reservations")
	reservations.Use(authMiddleware.RequireAuth())
	reservations.Use(limiter.RateLimiterMiddleware(middlewares.KeyByUserOrIP))
	reservations.POST("", reservationsHandler.Create)
	reservations.GET("", reservationsHandler.ListMine)
	reservations.PUT("/:id", reservationsHandler.Update)
	reservations.DELETE("/:id", reservationsHandler.Cancel)

	admin := r.Group("/admin")
	admin.Use(authMiddleware.RequireAuth())
	admin.Use(authMiddleware.RequireRole("admin"))
	admin.GET("/reservations", reservationsHandler.ListAll)

	return r
}
