package routes

import (
	"lightpath/internal/controllers"
	"lightpath/internal/middleware"

	"github.com/gin-gonic/gin"
)

// FleetRoutes exposes buses, routes, conductors and roles. Reads are
// open to any authenticated caller; the access guard rejects non-admin
// writes inside the services.
func FleetRoutes(r *gin.Engine) {
	buses := r.Group("/buses")
	buses.Use(middleware.RequireAuth())
	{
		buses.GET("", controllers.ListBuses)
		buses.POST("", controllers.CreateBus)
		buses.GET("/:id", controllers.GetBus)
		buses.PATCH("/:id", controllers.UpdateBus)
		buses.DELETE("/:id", controllers.DeleteBus)
	}

	routes := r.Group("/routes")
	routes.Use(middleware.RequireAuth())
	{
		routes.GET("", controllers.ListRoutes)
		routes.POST("", controllers.CreateRoute)
		routes.GET("/:id", controllers.GetRoute)
		routes.PATCH("/:id", controllers.UpdateRoute)
		routes.DELETE("/:id", controllers.DeleteRoute)
	}

	conductors := r.Group("/conductors")
	conductors.Use(middleware.RequireAuth())
	{
		conductors.GET("", controllers.ListConductors)
		conductors.POST("", controllers.CreateConductor)
		conductors.GET("/:id", controllers.GetConductor)
		conductors.PATCH("/:id", controllers.UpdateConductor)
		conductors.DELETE("/:id", controllers.DeleteConductor)
	}

	roles := r.Group("/roles")
	roles.Use(middleware.RequireAuth())
	{
		roles.GET("", controllers.ListRoles)
		roles.POST("", controllers.CreateRole)
		roles.GET("/:id", controllers.GetRole)
		roles.PATCH("/:id", controllers.UpdateRole)
		roles.DELETE("/:id", controllers.DeleteRole)
	}
}
