package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"velora_storefront/internal/middleware"
)

// GetCheckout returns the hosted-checkout URL for the device's checkout cart.
func (h *Handler) GetCheckout(c *gin.Context) {
	sess := middleware.Session(c)

	url, err := h.cart.CheckoutURL(c.Request.Context(), sess)
	if err != nil {
		log.Printf("❌ Checkout URL read failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not resolve checkout, please retry"})
		return
	}
	if url == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "nothing in the cart yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkoutUrl": url})
}

// GetCheckoutQR renders the checkout URL as a QR code so a session started on
// one device can be paid on another.
func (h *Handler) GetCheckoutQR(c *gin.Context) {
	sess := middleware.Session(c)

	url, err := h.cart.CheckoutURL(c.Request.Context(), sess)
	if err != nil || url == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "nothing in the cart yet"})
		return
	}

	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		log.Printf("❌ QR encode failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
