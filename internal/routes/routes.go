package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"billpilot_backend/internal/handlers"
	"billpilot_backend/internal/middleware"
	"billpilot_backend/internal/models"
)

// Register mounts the full API surface under /api/v1
func Register(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	customerHandler *handlers.CustomerHandler,
	documentHandler *handlers.DocumentHandler,
) {
	loginLimiter := middleware.NewRateLimiter(time.Minute, 10)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.GET("/verify/:emailToken/:userId", authHandler.VerifyEmail)
		auth.POST("/login", loginLimiter.Middleware(), authHandler.Login)
		auth.GET("/new_access_token", authHandler.RefreshToken)
		auth.GET("/logout", authHandler.Logout)
		auth.POST("/resend_email_token", authHandler.ResendVerification)
		auth.POST("/reset_password_request", authHandler.RequestPasswordReset)
		auth.POST("/reset_password", authHandler.ResetPassword)
	}

	user := v1.Group("/user", middleware.AuthMiddleware())
	{
		user.GET("/profile", userHandler.GetProfile)
		user.PATCH("/profile", userHandler.UpdateProfile)
		user.DELETE("/profile", userHandler.DeleteAccount)

		admin := user.Group("", middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/all", userHandler.ListUsers)
			admin.DELETE("/:id", userHandler.DeleteUser)
			admin.DELETE("/:id/deactivate", userHandler.DeactivateUser)
		}
	}

	customer := v1.Group("/customer", middleware.AuthMiddleware())
	{
		customer.POST("/create", customerHandler.Create)
		customer.GET("/all", customerHandler.List)
		customer.GET("/:id", customerHandler.Get)
		customer.PATCH("/:id", customerHandler.Update)
		customer.DELETE("/:id", customerHandler.Delete)
	}

	document := v1.Group("/document", middleware.AuthMiddleware())
	{
		document.POST("/create", documentHandler.Create)
		document.GET("/all", documentHandler.List)
		document.GET("/:id", documentHandler.Get)
		document.PATCH("/:id", documentHandler.Update)
		document.DELETE("/:id", documentHandler.Delete)
	}
}
