package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lightpath/internal/config"
	"lightpath/internal/services"
	"lightpath/internal/weather"
)

// weatherClient is set at startup; nil disables trip snapshots.
var weatherClient *weather.Client

// SetWeatherClient wires the optional weather collaborator.
func SetWeatherClient(client *weather.Client) {
	weatherClient = client
}

func tripService() services.TripService {
	return services.TripService{DB: config.DB, Weather: weatherClient}
}

func CreateTrip(c *gin.Context) {
	caller, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input services.TripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trip, err := tripService().Create(caller, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

func ListTrips(c *gin.Context) {
	caller, ok := currentIdentity(c)
	if !ok {
		return
	}
	var filter services.TripFilter
	if filter.BusID, ok = queryID(c, "bus_id"); !ok {
		return
	}
	if filter.RouteID, ok = queryID(c, "route_id"); !ok {
		return
	}
	if filter.ConductorID, ok = queryID(c, "conductor_id"); !ok {
		return
	}
	trips, err := tripService().List(caller, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": trips})
}

func GetTrip(c *gin.Context) {
	caller, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	trip, err := tripService().Get(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

func UpdateTrip(c *gin.Context) {
	caller, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch services.TripPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trip, err := tripService().Update(caller, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

func DeleteTrip(c *gin.Context) {
	caller, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := tripService().Delete(caller, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip deleted"})
}
