package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_storefront/internal/middleware"
	"velora_storefront/internal/variant"
	"velora_storefront/internal/wishlist"
)

// AddWishlistItem resolves a variant and saves it. Same selection round-trip
// as the cart add; duplicates are rejected, not merged.
func (h *Handler) AddWishlistItem(c *gin.Context) {
	sess := middleware.Session(c)

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		VariantID string `json:"variantId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	ctx := c.Request.Context()
	product, err := h.catalog.Product(ctx, input.ProductID)
	if err != nil {
		log.Printf("❌ Product lookup failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "product unavailable, please retry"})
		return
	}

	sel, err := variant.Resolve(ctx, product, variant.Explicit(input.VariantID))
	if errors.Is(err, variant.ErrNoVariants) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "product has no purchasable variants"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if sel.Cancelled {
		c.JSON(http.StatusConflict, gin.H{
			"error":    "variant selection required",
			"variants": variantChoices(product),
		})
		return
	}

	entry, err := h.wishlist.Add(ctx, sess, product, sel.Variant)
	if errors.Is(err, wishlist.ErrAlreadyInWishlist) {
		c.JSON(http.StatusConflict, gin.H{"error": "already in wishlist"})
		return
	}
	if err != nil {
		log.Printf("❌ Add to wishlist failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not update wishlist, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": entry})
}

// RemoveWishlistItem removes one entry by its wishlist id.
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	sess := middleware.Session(c)
	entryID := c.Param("id")

	items, err := h.wishlist.Remove(c.Request.Context(), sess, entryID)
	if err != nil {
		log.Printf("❌ Remove from wishlist failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not update wishlist, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetWishlist returns the current wishlist.
func (h *Handler) GetWishlist(c *gin.Context) {
	sess := middleware.Session(c)

	items, err := h.wishlist.Items(c.Request.Context(), sess)
	if err != nil {
		log.Printf("❌ Wishlist read failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not read wishlist, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ShareWishlist mails the current wishlist to the given address.
func (h *Handler) ShareWishlist(c *gin.Context) {
	sess := middleware.Session(c)

	var input struct {
		To string `json:"to" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipient"})
		return
	}

	items, err := h.wishlist.Items(c.Request.Context(), sess)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not read wishlist, please retry"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wishlist is empty"})
		return
	}

	if err := h.mailer(input.To, items); err != nil {
		log.Printf("❌ Wishlist email failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not send email, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "wishlist sent"})
}
