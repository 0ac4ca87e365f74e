package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WishlistItem is one saved entry. ID identifies the entry itself; VariantID is
// what membership is deduplicated on.
type WishlistItem struct {
	ID              string           `json:"id" firestore:"id"`
	ProductID       string           `json:"productId" firestore:"productId"`
	VariantID       string           `json:"variantId" firestore:"variantId"`
	Name            string           `json:"name" firestore:"name"`
	VariantTitle    string           `json:"variantTitle" firestore:"variantTitle"`
	Price           float64          `json:"price" firestore:"price"`
	Image           string           `json:"image" firestore:"image"`
	SelectedOptions []SelectedOption `json:"selectedOptions" firestore:"selectedOptions"`
	AddedAt         time.Time        `json:"addedAt" firestore:"addedAt"`
}

// NewWishlistItem denormalizes a resolved variant into a wishlist entry with a
// freshly generated entry id (timestamp plus a random component).
func NewWishlistItem(product Product, variant Variant) WishlistItem {
	image := variant.Image
	if image == "" {
		image = product.Image
	}
	return WishlistItem{
		ID:              fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8]),
		ProductID:       product.ID,
		VariantID:       variant.ID,
		Name:            product.Title,
		VariantTitle:    variant.Title,
		Price:           variant.Price,
		Image:           image,
		SelectedOptions: variant.Options,
		AddedAt:         time.Now(),
	}
}
