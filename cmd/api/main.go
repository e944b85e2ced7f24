package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cimillas/eventdesk/internal/app"
	"github.com/cimillas/eventdesk/internal/clock"
	"github.com/cimillas/eventdesk/internal/config"
	"github.com/cimillas/eventdesk/internal/payment"
	"github.com/cimillas/eventdesk/internal/storage/postgres"
	transporthttp "github.com/cimillas/eventdesk/internal/transport/http"
	"github.com/cimillas/eventdesk/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	var payments app.PaymentConfirmer = payment.AutoApprove{}
	if cfg.StripeAPIKey != "" {
		payments = payment.NewStripeConfirmer(cfg.StripeAPIKey)
	} else {
		logger.Printf("WARN: STRIPE_API_KEY not set, auto-approving paid bookings")
	}

	eventRepo := postgres.NewEventRepository(pool)
	eventSvc := app.NewEventService(eventRepo, clock.NewSystem())
	catalogSvc := app.NewCatalogService(eventRepo)
	bookingRepo := postgres.NewBookingRepository(pool)
	bookingSvc := app.NewBookingService(bookingRepo, payments, clock.NewSystem())
	feedbackRepo := postgres.NewFeedbackRepository(pool)
	feedbackSvc := app.NewFeedbackService(feedbackRepo, clock.NewSystem())
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	dashboardSvc := app.NewDashboardService(snapshotRepo, clock.NewSystem())

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/events", transporthttp.HandleEvents(eventSvc))
	mux.Handle("/events/", transporthttp.HandleEventTree(eventSvc, feedbackSvc))
	mux.Handle("/locations", transporthttp.HandleLocations(catalogSvc))
	mux.Handle("/locations/", transporthttp.HandleLocationTree(catalogSvc))
	mux.Handle("/categories", transporthttp.HandleCategories(catalogSvc))
	mux.Handle("/bookings", transporthttp.HandleBookings(bookingSvc))
	mux.Handle("/bookings/", transporthttp.HandleBookings(bookingSvc))
	mux.Handle("/dashboard", transporthttp.HandleDashboard(dashboardSvc))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
