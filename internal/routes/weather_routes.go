package routes

import (
	"lightpath/internal/controllers"
	"lightpath/internal/middleware"

	"github.com/gin-gonic/gin"
)

func WeatherRoutes(r *gin.Engine) {
	weather := r.Group("/weather")
	weather.Use(middleware.RequireAuth())
	{
		weather.GET("/current", controllers.CurrentWeather)
	}
}
