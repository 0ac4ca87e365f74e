package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_storefront/internal/middleware"
	"velora_storefront/internal/models"
	"velora_storefront/internal/variant"
)

// variantChoice is one entry of the selection payload returned when a
// multi-variant product is added without naming a variant.
type variantChoice struct {
	ID           string                  `json:"id"`
	Title        string                  `json:"title"`
	CompactTitle string                  `json:"compactTitle"`
	Price        float64                 `json:"price"`
	Options      []models.SelectedOption `json:"selectedOptions"`
}

func variantChoices(product models.Product) []variantChoice {
	choices := make([]variantChoice, 0, len(product.Variants))
	for _, v := range product.Variants {
		choices = append(choices, variantChoice{
			ID:           v.ID,
			Title:        v.Title,
			CompactTitle: variant.CompactTitle(v.Title),
			Price:        v.Price,
			Options:      v.Options,
		})
	}
	return choices
}

// AddCartItem resolves a variant and pushes it through the cart core. When
// the product has several variants and none was named, it answers 409 with
// the choices; the client repeats the call with a variantId (its half of the
// interactive picker), or simply doesn't, which is a cancellation.
func (h *Handler) AddCartItem(c *gin.Context) {
	sess := middleware.Session(c)

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		VariantID string `json:"variantId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
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

	items, err := h.cart.AddLineItem(ctx, sess, product, sel.Variant, input.Quantity)
	if err != nil {
		log.Printf("❌ Add to cart failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not add to cart, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":         items,
		"totalQuantity": totalQuantity(items),
	})
}

// RemoveCartItem drops one line from the display-cart. The checkout cart is
// not touched here.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	sess := middleware.Session(c)
	itemID := c.Param("itemId")

	items, err := h.cart.RemoveLineItem(c.Request.Context(), sess, itemID)
	if err != nil {
		log.Printf("❌ Remove from cart failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not update cart, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":         items,
		"totalQuantity": totalQuantity(items),
	})
}

// GetCart returns the current display-cart.
func (h *Handler) GetCart(c *gin.Context) {
	sess := middleware.Session(c)

	items, err := h.cart.Items(c.Request.Context(), sess)
	if err != nil {
		log.Printf("❌ Cart read failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not read cart, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":         items,
		"totalQuantity": totalQuantity(items),
	})
}

// GetCartCount returns the badge total only.
func (h *Handler) GetCartCount(c *gin.Context) {
	sess := middleware.Session(c)

	total, err := h.cart.TotalQuantity(c.Request.Context(), sess)
	if err != nil {
		log.Printf("❌ Cart count failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not read cart, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"totalQuantity": total})
}

func totalQuantity(items []models.CartLineItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
