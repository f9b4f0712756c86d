package routes

import (
	"lightpath/internal/controllers"
	"lightpath/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	authed := r.Group("/auth")
	authed.Use(middleware.RequireAuth())
	{
		authed.POST("/refresh", controllers.RefreshToken)
		authed.GET("/profile", controllers.GetProfile)
		authed.PATCH("/profile", controllers.UpdateProfile)
	}
}
