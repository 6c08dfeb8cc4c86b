package routes

import (
	"time"

	"academy-platform/config"
	"academy-platform/domain/auth"
	"academy-platform/domain/content"
	"academy-platform/domain/faq"
	"academy-platform/domain/health"
	"academy-platform/domain/locale"
	"academy-platform/domain/notification"
	"academy-platform/domain/pricing"
	"academy-platform/domain/survey"
	"academy-platform/domain/user"
	"academy-platform/middleware"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires every handler into the echo instance. Auth endpoints
// carry a tight per-IP rate limit; everything under the authenticated groups
// requires a valid access token.
func RegisterRoutes(e *echo.Echo) {
	loginLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		MaxRequests:   20,
		Window:        time.Minute,
		BlockDuration: 5 * time.Minute,
		DB:            config.DB,
	})

	// Health endpoints (unauthenticated, for probes)
	e.GET("/health", health.HealthHandler)
	e.GET("/health/live", health.LivenessHandler)
	e.GET("/health/ready", health.ReadinessHandler)
	e.GET("/health/stats", health.StatsHandler, middleware.JWTMiddleware, middleware.RoleMiddleware("superadmin"))

	// Auth
	e.POST("/auth/login", auth.LoginHandler, loginLimiter)
	e.POST("/auth/refresh", auth.RefreshTokenHandler, loginLimiter)
	e.POST("/auth/logout", auth.LogoutHandler, middleware.JWTMiddleware)

	// Admin accounts (superadmin only, except password change)
	e.POST("/users", user.CreateUserHandler, middleware.JWTMiddleware, middleware.RoleMiddleware("superadmin"))
	e.GET("/users", user.ListUsersHandler, middleware.JWTMiddleware, middleware.RoleMiddleware("superadmin"))
	e.DELETE("/users/:id", user.DeleteUserHandler, middleware.JWTMiddleware, middleware.RoleMiddleware("superadmin"))
	e.PUT("/users/change_password", user.ChangePasswordHandler, middleware.JWTMiddleware)

	// Locale catalog
	localeGroup := e.Group("/locales", middleware.JWTMiddleware)
	localeGroup.GET("", locale.ListLocalesHandler)
	localeGroup.GET("/release_preview", locale.ReleasePreviewHandler)

	// Content catalog
	contentGroup := e.Group("/content", middleware.JWTMiddleware, middleware.RoleMiddleware("editor"))
	contentGroup.GET("", content.ListContentHandler)
	contentGroup.GET("/export", content.ExportContentCSVHandler)
	contentGroup.GET("/:id", content.GetContentHandler)
	contentGroup.POST("", content.CreateContentHandler)
	contentGroup.PUT("/:id", content.UpdateContentHandler)
	contentGroup.DELETE("/:id", content.DeleteContentHandler)

	// Weekly surveys
	surveyGroup := e.Group("/surveys", middleware.JWTMiddleware, middleware.RoleMiddleware("editor"))
	surveyGroup.GET("", survey.ListSurveysHandler)
	surveyGroup.GET("/variant", survey.GetSurveyHandler)
	surveyGroup.GET("/export", survey.ExportSurveysCSVHandler)
	surveyGroup.POST("", survey.UpsertSurveyHandler)
	surveyGroup.POST("/:id/responses", survey.RecordResponseHandler)
	surveyGroup.DELETE("/:id", survey.DeleteSurveyHandler)

	// FAQ
	faqGroup := e.Group("/faq", middleware.JWTMiddleware, middleware.RoleMiddleware("editor"))
	faqGroup.GET("", faq.ListFAQHandler)
	faqGroup.POST("", faq.CreateFAQHandler)
	faqGroup.PUT("/:id", faq.UpdateFAQHandler)
	faqGroup.DELETE("/:id", faq.DeleteFAQHandler)

	// Pricing tiers
	pricingGroup := e.Group("/pricing", middleware.JWTMiddleware, middleware.RoleMiddleware("editor"))
	pricingGroup.GET("", pricing.ListTiersHandler)
	pricingGroup.POST("", pricing.CreateTierHandler)
	pricingGroup.PUT("/:id", pricing.UpdateTierHandler)
	pricingGroup.DELETE("/:id", pricing.DeleteTierHandler)

	// Notification settings
	notifyGroup := e.Group("/notifications", middleware.JWTMiddleware, middleware.RoleMiddleware("editor"))
	notifyGroup.GET("/settings", notification.GetSettingsHandler)
	notifyGroup.PUT("/settings", notification.UpsertSettingsHandler)
	notifyGroup.POST("/test", notification.SendTestHandler)
}
