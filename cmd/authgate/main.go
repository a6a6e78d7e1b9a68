package main

import (
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dhwani-ris/authgate/internal/pkg/config"
	"github.com/dhwani-ris/authgate/internal/pkg/database"
	"github.com/dhwani-ris/authgate/internal/pkg/health"
	"github.com/dhwani-ris/authgate/internal/pkg/logger"
	"github.com/dhwani-ris/authgate/internal/pkg/middleware"
	"github.com/dhwani-ris/authgate/internal/pkg/ratelimit"
	"github.com/dhwani-ris/authgate/internal/pkg/server"
	"github.com/dhwani-ris/authgate/internal/pkg/token"
	"github.com/dhwani-ris/authgate/services/auth/gateway"
	"github.com/dhwani-ris/authgate/services/auth/handler"
	httpHandler "github.com/dhwani-ris/authgate/services/auth/handler/http"
	"github.com/dhwani-ris/authgate/services/auth/repository"
	"github.com/dhwani-ris/authgate/services/auth/usecase"
)

func main() {
	appName := "authgate"
	configPath := os.Getenv("CONFIG_PATH")
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.NewZapLogger(configs.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Token codec carries the process-wide encryption secret
	codec := token.NewCodec(configs.Token)

	// Repositories and collaborators
	userRepo := repository.NewUserRepo(configs, postgresClient.GetDB())
	challengeRepo := repository.NewChallengeRepo(redisClient)
	smsGW := gateway.NewSMSGW(configs.SMS)
	limiter := ratelimit.NewLimiter(redisClient)

	// Use case and handlers
	authUC := usecase.NewAuthUC(configs, userRepo, challengeRepo, smsGW, limiter, codec)
	authHandler := httpHandler.NewAuthHandler(authUC)
	routeHandler := handler.NewHandler(authHandler, userRepo, configs)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	// Middleware chain; token translation runs before routing so downstream
	// handlers only ever see the credential-pair scheme.
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.EchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecovery())
	e.Pre(middleware.TokenAuth(codec))

	// Register health endpoints
	health.RegisterHealthEndpoints(e, appName, configs.App.Version)

	// Register service routes
	routeHandler.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server exited with error", logger.Err(err))
	}
}
