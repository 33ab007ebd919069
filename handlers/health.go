package handlers

import (
	"net/http"

	"github.com/bcs230015/Meeting-Mangagement-chatbot/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the latest stored health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
