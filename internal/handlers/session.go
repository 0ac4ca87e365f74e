package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateDeviceSession mints a device id for a fresh guest. The client keeps
// it for the lifetime of the browser profile and sends it as X-Device-ID.
func (h *Handler) CreateDeviceSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"deviceId": uuid.NewString()})
}
