package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lightpath/internal/config"
	"lightpath/internal/services"
)

func fleetService() services.FleetService {
	return services.FleetService{DB: config.DB}
}

func CreateBus(c *gin.Context) {
	caller, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input services.BusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bus, err := fleetService().CreateBus(caller, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bus": bus})
}

func ListBuses(c *gin.Context) {
	caller, ok := currentIdentity(c)
	if !ok {
		return
	}
	buses, err := fleetService().ListBuses(caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": buses})
}

func GetBus(c *gin.Context) {
	caller, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	bus, err := fleetService().GetBus(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

func UpdateBus(c *gin.Context) {
	caller, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch services.BusPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bus, err := fleetService().UpdateBus(caller, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

func DeleteBus(c *gin.Context) {
	caller, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := fleetService().DeleteBus(caller, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus deleted"})
}
