package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lightpath/internal/services"
)

func CreateConductor(c *gin.Context) {
	caller, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input services.ConductorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	conductor, err := fleetService().CreateConductor(caller, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"conductor": conductor})
}

func ListConductors(c *gin.Context) {
	caller, ok := currentIdentity(c)
	if !ok {
		return
	}
	conductors, err := fleetService().ListConductors(caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": conductors})
}

func GetConductor(c *gin.Context) {
	caller, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	conductor, err := fleetService().GetConductor(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conductor": conductor})
}

func UpdateConductor(c *gin.Context) {
	caller, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch services.ConductorPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	conductor, err := fleetService().UpdateConductor(caller, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conductor": conductor})
}

func DeleteConductor(c *gin.Context) {
	caller, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := fleetService().DeleteConductor(caller, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conductor deleted"})
}
