package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"usersvc/internal/config"
	"usersvc/internal/db"
	"usersvc/internal/handler"
	"usersvc/internal/httpserver"
	"usersvc/internal/repository"
	"usersvc/internal/service/user"
	"usersvc/pkg/logger"
)

func main() {
	// Load config
	cfg, err := config.Load("config.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(cfg.Env)
	defer log.Sync()

	log.Info("settings loaded",
		zap.String("env", cfg.Env),
		zap.String("database_url", cfg.DatabaseURL),
		zap.String("port", cfg.Server.Port),
	)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Init DB
	dbConn, err := db.NewPool(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.EnsureSchema(ctx, dbConn); err != nil {
		log.Fatal("schema bootstrap failed", zap.Error(err))
	}

	// Init Repository, Service, Handler
	userRepo := repository.NewUserRepository(dbConn)
	userService := user.NewService(userRepo, log)
	userHandler := handler.NewUserHandler(userService)

	// Router
	router := httpserver.NewRouter(userHandler, dbConn)

	// Start API server
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("server start failed", zap.Error(err))
	}
}
