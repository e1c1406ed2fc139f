package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	financeapp "github.com/lotbook/backend/internal/application/finance"
	purchaseapp "github.com/lotbook/backend/internal/application/purchase"
	tradeapp "github.com/lotbook/backend/internal/application/trade"
	"github.com/lotbook/backend/internal/infrastructure/config"
	"github.com/lotbook/backend/internal/infrastructure/logger"
	"github.com/lotbook/backend/internal/infrastructure/persistence"
	"github.com/lotbook/backend/internal/interfaces/http/handler"
	"github.com/lotbook/backend/internal/interfaces/http/middleware"
	"github.com/lotbook/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting lotbook backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	houseID := cfg.HouseParty()
	if houseID == uuid.Nil {
		log.Fatal("ledger.house_party_id must be configured")
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories and the unit of work
	scope := persistence.NewGormTransactionScope(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	entryRepo := persistence.NewGormEntryRepository(db.DB)
	registry := persistence.NewGormPartyRegistry(db.DB)

	// Application services
	transactionService := tradeapp.NewTransactionService(scope, transactionRepo, entryRepo, registry, houseID, log)
	purchaseService := purchaseapp.NewPurchaseService(scope, registry, houseID, log)
	balanceService := financeapp.NewBalanceService(entryRepo, registry, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine)
	r.Register(handler.NewTransactionHandler(transactionService))
	r.Register(handler.NewPurchaseHandler(purchaseService))
	r.Register(handler.NewBalanceHandler(balanceService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

// healthHandler reports liveness including database connectivity
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
