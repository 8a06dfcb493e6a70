package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/soycar/hotel-portal/internal/config"
	"github.com/soycar/hotel-portal/internal/database"
	"github.com/soycar/hotel-portal/internal/handler"
	"github.com/soycar/hotel-portal/internal/httputil"
	"github.com/soycar/hotel-portal/internal/jobs"
	"github.com/soycar/hotel-portal/internal/middleware"
	"github.com/soycar/hotel-portal/internal/password"
	"github.com/soycar/hotel-portal/internal/redis"
	"github.com/soycar/hotel-portal/internal/repository"
	"github.com/soycar/hotel-portal/internal/service"
	"github.com/soycar/hotel-portal/internal/session"
	"github.com/soycar/hotel-portal/internal/sse"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	if cfg.RunMigrations {
		if err := database.Migrate(cfg.DatabaseURL, database.MigrateUp); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	db, err := database.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	hotelRepo := repository.NewHotelRepository(db.DB)
	bookingRepo := repository.NewBookingRepository(db.DB)
	sessionRepo := repository.NewSessionRepository(db.DB)

	var sessions session.Store
	switch cfg.SessionBackend {
	case config.SessionBackendPostgres:
		sessions = session.NewPostgresStore(sessionRepo, cfg.SessionSecret, cfg.SessionTTL())
	default:
		sessions = session.NewRedisStore(redisClient.Client, cfg.SessionSecret, cfg.SessionTTL())
	}
	log.Info().
		Str("backend", cfg.SessionBackend).
		Dur("ttl", cfg.SessionTTL()).
		Msg("session store ready")

	broker := sse.NewBroker(redisClient)
	defer broker.Close()

	hasher := password.NewHasher(cfg.BcryptCost)
	authService := service.NewAuthService(hotelRepo, sessions, hasher)
	profileService := service.NewProfileService(hotelRepo, authService, hasher)
	bookingService := service.NewBookingService(bookingRepo, broker)
	loginLimiter := service.NewLoginLimiter(redisClient.Client, cfg.LoginRateLimit, config.LoginRateLimitWindow)

	sessionMiddleware := middleware.NewHotelSessionMiddleware(authService)
	loginLimitMiddleware := middleware.NewIPRateLimitMiddleware(loginLimiter)
	csrfMiddleware := middleware.NewCSRFMiddleware(isProduction)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)
	portalHeaders := middleware.NewSecurityHeadersMiddleware(isProduction, middleware.PortalCSP)
	siteHeaders := middleware.NewSecurityHeadersMiddleware(isProduction, middleware.SiteCSP)

	eventsHandler := handler.NewEventsHandler(broker)
	portalHandler := handler.NewPortalHandler(authService, profileService, bookingService, handler.PortalOptions{
		SessionTTL:     cfg.SessionTTL(),
		IsProduction:   isProduction,
		RequireSession: sessionMiddleware.Require,
		LoginLimit:     loginLimitMiddleware.Handler,
	})

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/health", healthHandler(db, redisClient))

	r.Route("/portal", func(r chi.Router) {
		r.Use(portalHeaders.Handler)
		r.Use(csrfMiddleware.Handler)
		r.Use(sessionMiddleware.Load)
		// The SSE stream outlives the request timeout.
		r.With(sessionMiddleware.Require).Get("/api/events", eventsHandler.ServeHTTP)
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
			r.Mount("/", portalHandler.Routes())
		})
		r.NotFound(handler.StaticFileServer("static/portal", "/portal").ServeHTTP)
	})

	r.NotFound(siteHeaders.Handler(handler.NewSPAHandler(cfg.StaticDir, "")).ServeHTTP)

	// Redis expires its own keys; only postgres rows need sweeping.
	if cfg.SessionBackend == config.SessionBackendPostgres {
		cleanupJob := jobs.NewCleanupJob(config.CleanupJobInterval,
			jobs.Task{Name: "expired hotel sessions", Run: sessionRepo.DeleteExpired},
		)
		cleanupJob.Start()
		defer cleanupJob.Stop()
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

// healthHandler reports 503 when postgres or redis stops answering.
func healthHandler(db *database.DB, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"database": "ok", "redis": "ok"}
		status := http.StatusOK

		ctx, cancel := context.WithTimeout(r.Context(), config.DBPingTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			checks["database"] = "unavailable"
			status = http.StatusServiceUnavailable
		}
		if err := redisClient.Healthy(ctx); err != nil {
			checks["redis"] = "unavailable"
			status = http.StatusServiceUnavailable
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		httputil.WriteJSON(w, status, map[string]any{
			"status":    state,
			"checks":    checks,
			"timestamp": time.Now().UnixMilli(),
		})
	}
}
