package handlers

import (
	"context"

	"velora_storefront/internal/cart"
	"velora_storefront/internal/models"
	"velora_storefront/internal/wishlist"
)

// Catalog is the slice of the commerce backend the handlers read from.
type Catalog interface {
	Product(ctx context.Context, id string) (models.Product, error)
}

// Mailer sends the wishlist-share email.
type Mailer func(to string, items []models.WishlistItem) error

// Handler carries the storefront's services; one instance serves all routes.
type Handler struct {
	catalog  Catalog
	cart     *cart.Service
	wishlist *wishlist.Service
	mailer   Mailer
}

func New(catalog Catalog, cartSvc *cart.Service, wishlistSvc *wishlist.Service, mailer Mailer) *Handler {
	return &Handler{
		catalog:  catalog,
		cart:     cartSvc,
		wishlist: wishlistSvc,
		mailer:   mailer,
	}
}
