package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/planit/api/internal/config"
	"github.com/planit/api/internal/database"
	"github.com/planit/api/internal/handler"
	"github.com/planit/api/internal/middleware"
	"github.com/planit/api/internal/model"
	"github.com/planit/api/internal/repository"
	"github.com/planit/api/internal/service"
	"github.com/planit/api/pkg/jwt"
)

func main() {
	// Local development reads a .env file; absence is fine
	_ = godotenv.Load()

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Apply unique indexes so storage enforces what services pre-check
	if err := repository.ApplySchema(ctx, db); err != nil {
		slog.Error("failed to apply schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load the category catalog bundled with the binary
	catalog, err := model.LoadCategoryCatalog()
	if err != nil {
		slog.Error("failed to load category catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	pollRepo := repository.NewPollRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:   userRepo,
		JWTService: jwtService,
	})
	eventService := service.NewEventService(service.EventServiceConfig{
		EventRepo: eventRepo,
		Catalog:   catalog,
	})
	roleService := service.NewRoleService(eventRepo)
	pollService := service.NewPollService(service.PollServiceConfig{
		PollRepo:  pollRepo,
		EventRepo: eventRepo,
	})
	chatService := service.NewChatService(chatRepo, eventRepo)
	userService := service.NewUserService(userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	eventHandler := handler.NewEventHandler(eventService)
	roleHandler := handler.NewRoleHandler(roleService)
	pollHandler := handler.NewPollHandler(pollService)
	chatHandler := handler.NewChatHandler(chatService)
	userHandler := handler.NewUserHandler(userService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)

	authMiddleware := middleware.Auth(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	// Event endpoints. Search only surfaces public events, so it accepts
	// anonymous callers too.
	mux.Handle("POST /v1/events", authMiddleware(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("GET /v1/events", optionalAuth(http.HandlerFunc(eventHandler.Search)))
	mux.Handle("POST /v1/events/join", authMiddleware(http.HandlerFunc(eventHandler.JoinByCode)))
	mux.Handle("GET /v1/events/{eventId}", authMiddleware(http.HandlerFunc(eventHandler.Get)))
	mux.Handle("PUT /v1/events/{eventId}", authMiddleware(http.HandlerFunc(eventHandler.Update)))
	mux.Handle("DELETE /v1/events/{eventId}", authMiddleware(http.HandlerFunc(eventHandler.Delete)))
	mux.Handle("POST /v1/events/{eventId}/join", authMiddleware(http.HandlerFunc(eventHandler.Join)))
	mux.Handle("POST /v1/events/{eventId}/leave", authMiddleware(http.HandlerFunc(eventHandler.Leave)))
	mux.Handle("GET /v1/events/{eventId}/participants", authMiddleware(http.HandlerFunc(eventHandler.GetParticipants)))

	// Role endpoints
	mux.Handle("POST /v1/events/{eventId}/roles", authMiddleware(http.HandlerFunc(roleHandler.Assign)))
	mux.Handle("DELETE /v1/events/{eventId}/roles/{userId}", authMiddleware(http.HandlerFunc(roleHandler.Remove)))

	// Poll endpoints
	mux.Handle("POST /v1/events/{eventId}/polls", authMiddleware(http.HandlerFunc(pollHandler.Create)))
	mux.Handle("GET /v1/events/{eventId}/polls", authMiddleware(http.HandlerFunc(pollHandler.ListByEvent)))
	mux.Handle("GET /v1/polls/{pollId}", authMiddleware(http.HandlerFunc(pollHandler.Get)))
	mux.Handle("DELETE /v1/polls/{pollId}", authMiddleware(http.HandlerFunc(pollHandler.Delete)))
	mux.Handle("POST /v1/polls/{pollId}/vote", authMiddleware(http.HandlerFunc(pollHandler.Vote)))

	// Chat endpoints
	mux.Handle("POST /v1/events/{eventId}/chat", authMiddleware(http.HandlerFunc(chatHandler.Send)))
	mux.Handle("GET /v1/events/{eventId}/chat", authMiddleware(http.HandlerFunc(chatHandler.List)))

	// User endpoints
	mux.Handle("GET /v1/users/me", authMiddleware(http.HandlerFunc(userHandler.Me)))
	mux.Handle("PUT /v1/users/me/interests", authMiddleware(http.HandlerFunc(userHandler.SetInterests)))
	mux.Handle("POST /v1/feedback", authMiddleware(http.HandlerFunc(userHandler.SubmitFeedback)))

	// Apply global middleware
	chain := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
	}
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			Rate:   cfg.RateLimit.Rate,
			Window: cfg.RateLimit.Window,
			Burst:  cfg.RateLimit.Burst,
		})
		defer rateLimiter.Stop()
		chain = append(chain, middleware.RateLimit(rateLimiter))
	}
	chain = append(chain, middleware.Compress)
	wrapped := middleware.Chain(mux, chain...)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
