package main

import (
	"fmt"
	"os"

	"academy-platform/config"
	"academy-platform/db"
	"academy-platform/domain/auth"
	"academy-platform/domain/content"
	"academy-platform/pkg/apperrors"
	"academy-platform/pkg/logger"
	"academy-platform/routes"
	"academy-platform/scripts"
	appmiddleware "academy-platform/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pressly/goose/v3"
	"github.com/spf13/viper"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/main.go [server|migrate|rollover|cleanup_tokens|seed]")
		os.Exit(1)
	}

	config.InitConfig()

	logger.Init(logger.Config{
		Level:       logger.Level(viper.GetString("LOG_LEVEL")),
		Environment: viper.GetString("ENVIRONMENT"),
		ServiceName: "academy-sessions",
		Version:     viper.GetString("SERVICE_VERSION"),
	})
	log := logger.Get().WithComponent("main")

	config.InitDB()
	defer config.CloseDB()

	switch os.Args[1] {
	case "server":
		config.InitRedis()
		startServer(log)
	case "migrate":
		runMigrations(log)
	case "rollover":
		if err := content.RunBucketRollover(); err != nil {
			log.Fatal("Bucket rollover failed", err)
		}
	case "cleanup_tokens":
		if err := auth.CleanupExpiredTokens(); err != nil {
			log.Fatal("Token cleanup failed", err)
		}
	case "seed":
		if err := scripts.Seed(); err != nil {
			log.Fatal("Seeding failed", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func startServer(log logger.Logger) {
	e := echo.New()
	e.HideBanner = true

	e.Validator = appmiddleware.NewRequestValidator()
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(log)

	e.Use(logger.RequestLoggerMiddleware(log))
	e.Use(logger.RecoveryMiddleware(log))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{viper.GetString("ADMIN_ORIGIN")},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentLength, echo.HeaderContentDisposition},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	routes.RegisterRoutes(e)

	addr := viper.GetString("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Info("Starting server", logger.String("addr", addr))
	if err := e.Start(addr); err != nil {
		log.Fatal("Server stopped", err)
	}
}

func runMigrations(log logger.Logger) {
	goose.SetBaseFS(db.Migrations)

	if err := goose.SetDialect("mysql"); err != nil {
		log.Fatal("Failed to set migration dialect", err)
	}

	if err := goose.Up(config.DB.DB, "migrations"); err != nil {
		log.Fatal("Migrations failed", err)
	}

	log.Info("Migrations applied")
}
