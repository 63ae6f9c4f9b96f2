package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Sekine53629/household-finance/internal/config"
	"github.com/Sekine53629/household-finance/internal/handler"
	"github.com/Sekine53629/household-finance/internal/middleware"
	"github.com/Sekine53629/household-finance/internal/notify"
	"github.com/Sekine53629/household-finance/internal/repository"
	"github.com/Sekine53629/household-finance/internal/service"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
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
	sqlDB, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer sqlDB.Close()
	if err := sqlDB.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Fatalf("Failed to open gorm connection: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	svc := service.NewService(repo, logger, cfg)
	sender := notify.NewSender(cfg, logger)
	if sender.Configured() {
		svc.SetAlertSender(sender)
		logger.Info("Risk alert mail enabled")
	}
	h := handler.NewHandler(svc)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	// Public routes
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	r.HandleFunc("/api/dashboard", h.DashboardJSON).Methods("GET")
	r.HandleFunc("/months/{month}/schedule", h.GetSchedule).Methods("GET")
	r.HandleFunc("/months/{month}/cashflow", h.GetCashFlow).Methods("GET")
	r.HandleFunc("/months/{month}/balance-sheet", h.GetBalanceSheet).Methods("GET")
	r.HandleFunc("/months/{month}/report.xml", h.GetReport).Methods("GET")
	r.HandleFunc("/salaries/{month}", h.GetSalary).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/months/{month}/recompute", h.RecomputeMonth).Methods("POST")
	authRouter.HandleFunc("/salaries", h.UpsertSalary).Methods("POST")
	authRouter.HandleFunc("/assets", h.CreateAsset).Methods("POST")
	authRouter.HandleFunc("/liabilities", h.CreateLiability).Methods("POST")
	authRouter.HandleFunc("/fixed-expenses", h.CreateFixedExpense).Methods("POST")
	authRouter.HandleFunc("/incomes", h.CreateIncome).Methods("POST")
	authRouter.HandleFunc("/variable-expenses", h.CreateVariableExpense).Methods("POST")
	authRouter.HandleFunc("/credit-cards", h.CreateCreditCard).Methods("POST")
	authRouter.HandleFunc("/credit-usages", h.CreateCreditUsage).Methods("POST")
	authRouter.HandleFunc("/loans", h.CreateShortTermLoan).Methods("POST")

	// Monthly batch: roll short-term loans forward and refresh the
	// new month's snapshots on the morning of the 1st.
	c := cron.New()
	if _, err := c.AddFunc("0 9 1 * *", func() {
		if err := svc.RunMonthlyBatch(time.Now()); err != nil {
			logger.Errorf("Monthly batch failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule monthly batch: %v", err)
	}
	c.Start()
	defer c.Stop()

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
