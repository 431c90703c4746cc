package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jobfinder/dashboard-go/internal/config"
	"github.com/jobfinder/dashboard-go/internal/handler"
	"github.com/jobfinder/dashboard-go/internal/middleware"
	"github.com/jobfinder/dashboard-go/internal/redis"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	var limiter middleware.Limiter = middleware.NewRateLimiter()
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("redis connected")
		limiter = middleware.NewRedisRateLimiter(redisClient.Client)
	}

	isProduction := cfg.IsProduction()
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(config.MaxRequestBodySize)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction, cfg.APIOrigin())
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(limiter, cfg.RateLimitPerMin)
	edgeGuard := middleware.NewEdgeGuard(cfg.JWTCookieName)

	publicHandler := handler.NewPublicHandler(cfg)
	pages := edgeGuard.Handler(handler.NewSPAHandler(cfg.StaticDir, ""))

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)
	r.Use(securityHeadersMiddleware.Handler)
	r.Use(rateLimitMiddleware.Handler)

	r.Mount("/", publicHandler.Routes(pages))

	server := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     r,
		ReadTimeout: config.ServerReadTimeout,
		IdleTimeout: config.ServerIdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", cfg.Addr()).
			Str("api", cfg.BaseURL()).
			Str("static", cfg.StaticDir).
			Msg("starting dashboard server")
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
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
