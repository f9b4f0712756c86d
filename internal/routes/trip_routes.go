package routes

import (
	"lightpath/internal/controllers"
	"lightpath/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TripRoutes(r *gin.Engine) {
	trips := r.Group("/trips")
	trips.Use(middleware.RequireAuth())
	{
		trips.GET("", controllers.ListTrips)
		trips.POST("", controllers.CreateTrip)
		trips.GET("/:id", controllers.GetTrip)
		trips.PATCH("/:id", controllers.UpdateTrip)
		trips.DELETE("/:id", controllers.DeleteTrip)
	}
}
