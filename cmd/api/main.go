package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/Lovrevar/Landmark-sub006/internal/config"
	"github.com/Lovrevar/Landmark-sub006/internal/handler"
	"github.com/Lovrevar/Landmark-sub006/internal/integrations/ecb"
	"github.com/Lovrevar/Landmark-sub006/internal/middleware"
	"github.com/Lovrevar/Landmark-sub006/internal/repository"
	"github.com/Lovrevar/Landmark-sub006/internal/service"
	"github.com/Lovrevar/Landmark-sub006/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	var mailer service.Mailer
	if cfg.SMTPHost != "" {
		mailer = email.NewSender(cfg, logger)
	}
	svc := service.NewService(repo, logger, cfg, mailer)
	h := handler.NewHandler(svc)
	ecbClient := ecb.NewClient(cfg, logger)

	// Periodic overdue sweep
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.SweepSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := svc.SweepOverdue(ctx); err != nil {
			logger.Errorf("Overdue sweep failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule overdue sweep: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// ECB reference rate endpoint
	r.HandleFunc("/reference-rate", func(w http.ResponseWriter, r *http.Request) {
		currency := r.URL.Query().Get("currency")
		if currency == "" {
			currency = "USD"
		}
		rate, err := ecbClient.GetReferenceRate(currency)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get reference rate: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]float64{"rate": rate})
	}).Methods("GET")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/projects/{id}/funding", h.ProjectFunding).Methods("GET")
	authRouter.HandleFunc("/funding", h.AllFunding).Methods("GET")
	authRouter.HandleFunc("/notifications", h.Notifications).Methods("GET")
	authRouter.HandleFunc("/notifications/stats", h.NotificationStats).Methods("GET")
	authRouter.HandleFunc("/notifications/bank/{id}/dismiss", h.Dismiss).Methods("POST")
	authRouter.HandleFunc("/notifications/{source}/{id}/complete", h.Complete).Methods("POST")
	authRouter.HandleFunc("/notifications/bank/{id}/payment", h.RecordBankPayment).Methods("POST")
	authRouter.HandleFunc("/notifications/subcontractor/{id}/payment", h.RecordSubcontractorPayment).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
