package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Rasaku-Space/be-culinary-platform/config"
	"github.com/Rasaku-Space/be-culinary-platform/domain/content"
	"github.com/Rasaku-Space/be-culinary-platform/domain/engagement"
	"github.com/Rasaku-Space/be-culinary-platform/migrations"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/apperrors"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/logger"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/media"
	"github.com/Rasaku-Space/be-culinary-platform/routes"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/main.go [server|migrate]")
		os.Exit(1)
	}

	config.InitConfig()
	config.InitDB()

	switch os.Args[1] {
	case "server":
		startServer()
	case "migrate":
		if err := migrations.Run(config.DB.DB); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Migrations applied")
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func startServer() {
	logger.Init(logger.Config{
		Level:       logger.Level(viper.GetString("LOG_LEVEL")),
		Environment: viper.GetString("ENVIRONMENT"),
		ServiceName: "culinary-platform",
		Version:     viper.GetString("VERSION"),
	})
	log := logger.Get()

	config.InitRedis()

	mediaStore, err := media.NewStore(context.Background())
	if err != nil {
		log.Fatal("Failed to initialize media store", err)
	}

	contentRepo := content.NewSQLRepository(config.DB)
	engagementSvc := engagement.NewService(engagement.NewSQLStore(config.DB), log)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(log)

	e.Use(logger.RequestLoggerMiddleware(log))
	e.Use(logger.RecoveryMiddleware(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{viper.GetString("FRONTEND_ORIGIN")},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentLength},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	routes.RegisterRoutes(e, routes.Deps{
		Content:    contentRepo,
		Engagement: engagementSvc,
		Media:      mediaStore,
		Log:        log,
	})

	addr := viper.GetString("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	e.Logger.Fatal(e.Start(addr))
}
