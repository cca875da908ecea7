// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventiq/eventiq/internal/assistant"
	"github.com/eventiq/eventiq/internal/config"
	"github.com/eventiq/eventiq/internal/database"
	"github.com/eventiq/eventiq/internal/handler"
	"github.com/eventiq/eventiq/internal/logger"
	"github.com/eventiq/eventiq/internal/repository"
	"github.com/eventiq/eventiq/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// ── 1. Connect to PostgreSQL and Redis ────────────────────────────────
	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		zl.Fatal("database", zap.Error(err))
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		zl.Fatal("migrate", zap.Error(err))
	}
	zl.Info("connected to postgres", zap.String("db", cfg.Database.DBName))

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(ctx).Err(); err != nil {
		zl.Fatal("redis", zap.Error(err))
	}
	zl.Info("connected to redis", zap.String("addr", cfg.Redis.Addr()))

	// ── 2. Wire up layers ────────────────────────────────────────────────
	eventRepo := repository.NewEventRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	expenseRepo := repository.NewExpenseRepository(pool)

	eventSvc := service.NewEventService(eventRepo)
	bookingSvc := service.NewBookingService(bookingRepo, cfg.Booking)
	paymentSvc := service.NewPaymentService(bookingRepo)
	ticketSvc := service.NewTicketService(bookingRepo)
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	expenseSvc := service.NewExpenseService(expenseRepo)

	sessions := assistant.NewRedisSessionStore(rdb, cfg.Booking.SessionTTL)
	registry := assistant.NewRegistry(eventSvc, sessions)

	eventHandler := handler.NewEventHandler(eventSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc, paymentSvc, ticketSvc)
	authHandler := handler.NewAuthHandler(authSvc, bookingSvc)
	expenseHandler := handler.NewExpenseHandler(expenseSvc)
	assistantHandler := handler.NewAssistantHandler(registry)
	authn := handler.NewAuthenticator(authSvc)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handler.AccessLog(zl))
	r.Use(handler.CORS)

	r.Get("/health", handler.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.With(authn.Admin).Post("/", eventHandler.CreateEvent)
			r.Get("/", eventHandler.ListEvents)
			r.Get("/{id}", eventHandler.GetEvent)
		})

		r.With(authn.Optional).Post("/bookings", bookingHandler.CreateBooking)
		r.Get("/payments/{ticketID}", bookingHandler.GetPayment)
		r.Post("/payments/{ticketID}", bookingHandler.SubmitPayment)
		r.Get("/tickets/{ticketID}", bookingHandler.GetTicket)
		r.Get("/verify/{code}", bookingHandler.VerifyTicket)

		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/signin", authHandler.Signin)
		r.With(authn.Required).Get("/me", authHandler.Me)
		r.With(authn.Required).Get("/me/bookings", authHandler.MyBookings)

		r.Route("/expenses", func(r chi.Router) {
			r.Use(authn.Required)
			r.Post("/", expenseHandler.AddExpense)
			r.Get("/", expenseHandler.ListExpenses)
			r.Get("/summary", expenseHandler.ExpenseSummary)
		})

		r.Post("/assistant/tools/{name}", assistantHandler.InvokeTool)
		r.Get("/assistant/sessions/{sessionID}", assistantHandler.SessionHistory)
	})

	// Static HTML – serve the web/ directory at the root.
	webFS := http.Dir("./web")
	r.Handle("/*", http.FileServer(webFS))

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zl.Info("server listening", zap.String("addr", cfg.Server.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Fatal("graceful shutdown failed", zap.Error(err))
	}
	zl.Info("server stopped")
}
