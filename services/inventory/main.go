package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/auth"
	"github.com/ayababa270/ecommerce-Baba-Charaf/common/database"
	apperrors "github.com/ayababa270/ecommerce-Baba-Charaf/common/errors"
	"github.com/ayababa270/ecommerce-Baba-Charaf/common/logger"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/inventory/controllers"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/inventory/models"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/inventory/repository"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/inventory/routes"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		zap.NewExample().Fatal("Failed to load config", zap.Error(err))
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	db, err := database.ConnectPostgres(logger.Log, &models.Good{})
	if err != nil {
		logger.Log.Fatal("Database connection failed", zap.Error(err))
	}
	defer database.Close(db)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(apperrors.ErrorMiddleware())
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	inventoryController := controllers.NewInventoryController(repository.NewGormGoodRepository(db))
	routes.RegisterInventoryRoutes(r, inventoryController, auth.AdminOnly("catalog:write"))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("Inventory service started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Log.Info("Server exited cleanly")
}
