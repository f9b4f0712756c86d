package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lightpath/internal/config"
	"lightpath/internal/domain"
)

// CurrentWeather proxies a live conditions lookup for a city.
func CurrentWeather(c *gin.Context) {
	if weatherClient == nil {
		respondError(c, domain.UpstreamError{Service: "weather"})
		return
	}
	city := c.DefaultQuery("city", config.GetEnv("DEFAULT_CITY", "Accra"))
	snap, err := weatherClient.Current(c.Request.Context(), city)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weather": snap})
}
