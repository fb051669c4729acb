package routes

import (
	"time"

	"github.com/Rasaku-Space/be-culinary-platform/config"
	"github.com/Rasaku-Space/be-culinary-platform/domain/content"
	"github.com/Rasaku-Space/be-culinary-platform/domain/engagement"
	"github.com/Rasaku-Space/be-culinary-platform/domain/feed"
	"github.com/Rasaku-Space/be-culinary-platform/domain/health"
	"github.com/Rasaku-Space/be-culinary-platform/domain/presence"
	"github.com/Rasaku-Space/be-culinary-platform/domain/user"
	"github.com/Rasaku-Space/be-culinary-platform/middleware"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/logger"
	"github.com/labstack/echo/v4"
)

// Deps carries the constructed services the routes need. Core services
// are injected so tests can substitute fakes.
type Deps struct {
	Content    content.Repository
	Engagement *engagement.Service
	Media      content.MediaDeleter
	Log        logger.Logger
}

func RegisterRoutes(e *echo.Echo, d Deps) {
	contentHandler := content.NewHandler(d.Content, d.Media, d.Log)
	engagementHandler := engagement.NewHandler(d.Engagement, d.Content, d.Log)
	feedHandler := feed.NewHandler(d.Content, d.Engagement, d.Log)

	// Feed routes (guests welcome; identity enriches the response)
	feedGroup := e.Group("/feed", middleware.OptionalJWTMiddleware)
	feedGroup.GET("", feedHandler.ListHandler)
	feedGroup.GET("/:kind/:id", feedHandler.DetailHandler)

	// Engagement routes
	rateLimited := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		MaxRequests:   120,
		Window:        time.Minute,
		BlockDuration: 10 * time.Minute,
		DB:            config.DB.DB,
	})
	engagementGroup := e.Group("/engagement", rateLimited)
	engagementGroup.POST("/:kind/:id/view", engagementHandler.ViewHandler, middleware.OptionalJWTMiddleware)
	engagementGroup.POST("/:kind/:id/like", engagementHandler.LikeHandler, middleware.JWTMiddleware)
	e.GET("/likes", engagementHandler.ListLikesHandler, middleware.JWTMiddleware)

	// Content authoring routes (sellers only)
	contentGroup := e.Group("/content", middleware.JWTMiddleware, middleware.RoleMiddleware("seller"))
	contentGroup.POST("", contentHandler.CreateHandler)
	contentGroup.GET("/:kind", contentHandler.ListMineHandler)
	contentGroup.PUT("/:kind/:id", contentHandler.UpdateHandler)
	contentGroup.DELETE("/:kind/:id", contentHandler.DeleteHandler)

	// Profile routes
	userGroup := e.Group("/users", middleware.JWTMiddleware)
	userGroup.GET("/me", user.GetMeHandler)
	userGroup.PUT("/me", user.UpdateMeHandler)

	// Presence
	e.POST("/presence/heartbeat", presence.HeartbeatHandler, middleware.JWTMiddleware)
	e.GET("/users/:id/presence", presence.GetPresenceHandler)

	// Health
	e.GET("/health/live", health.LivenessHandler)
	e.GET("/health/ready", health.ReadinessHandler)
	e.GET("/health/stats", health.StatsHandler)
}
