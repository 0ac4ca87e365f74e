package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetProduct proxies one normalized product, variants included, so the UI
// can render a product page or a variant picker.
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.catalog.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("❌ Product lookup failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "product unavailable, please retry"})
		return
	}

	c.JSON(http.StatusOK, product)
}
