package wishlist

import (
	"context"
	"errors"

	"velora_storefront/internal/models"
)

// ErrAlreadyInWishlist rejects a second add of the same variant; wishlist
// membership is boolean per variant, there is no quantity to merge.
var ErrAlreadyInWishlist = errors.New("variant already in wishlist")

// RemoteStore is the signed-in wishlist location (one document per user).
type RemoteStore interface {
	WishlistItems(ctx context.Context, userID string) ([]models.WishlistItem, error)
	SetWishlistItems(ctx context.Context, userID string, items []models.WishlistItem) error
}

// DeviceStore is the guest wishlist location.
type DeviceStore interface {
	WishlistItems(ctx context.Context, deviceID string) ([]models.WishlistItem, error)
	SetWishlistItems(ctx context.Context, deviceID string, items []models.WishlistItem) error
}

// Service has the same shape as the cart core minus the commerce backend:
// wishlist entries never reach the checkout cart, they only live in whichever
// store the session selects.
type Service struct {
	remote RemoteStore
	local  DeviceStore
}

func New(remote RemoteStore, local DeviceStore) *Service {
	return &Service{remote: remote, local: local}
}

// Items reads the wishlist from the store the session selects.
func (s *Service) Items(ctx context.Context, sess models.Session) ([]models.WishlistItem, error) {
	if sess.SignedIn() {
		return s.remote.WishlistItems(ctx, sess.UserID)
	}
	return s.local.WishlistItems(ctx, sess.DeviceID)
}

func (s *Service) setItems(ctx context.Context, sess models.Session, items []models.WishlistItem) error {
	if sess.SignedIn() {
		return s.remote.SetWishlistItems(ctx, sess.UserID, items)
	}
	return s.local.SetWishlistItems(ctx, sess.DeviceID, items)
}

// Add appends a new entry for the resolved variant, rejecting a variant that
// is already present.
func (s *Service) Add(ctx context.Context, sess models.Session, product models.Product, chosen models.Variant) (models.WishlistItem, error) {
	items, err := s.Items(ctx, sess)
	if err != nil {
		return models.WishlistItem{}, err
	}
	for _, item := range items {
		if item.VariantID == chosen.ID {
			return models.WishlistItem{}, ErrAlreadyInWishlist
		}
	}

	entry := models.NewWishlistItem(product, chosen)
	if err := s.setItems(ctx, sess, append(items, entry)); err != nil {
		return models.WishlistItem{}, err
	}
	return entry, nil
}

// Remove filters out the entry with the given wishlist id (not the variant
// id). Removing an absent id is a no-op.
func (s *Service) Remove(ctx context.Context, sess models.Session, entryID string) ([]models.WishlistItem, error) {
	items, err := s.Items(ctx, sess)
	if err != nil {
		return nil, err
	}

	kept := make([]models.WishlistItem, 0, len(items))
	for _, item := range items {
		if item.ID != entryID {
			kept = append(kept, item)
		}
	}
	if err := s.setItems(ctx, sess, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Contains reports whether the variant is already saved.
func (s *Service) Contains(ctx context.Context, sess models.Session, variantID string) (bool, error) {
	items, err := s.Items(ctx, sess)
	if err != nil {
		return false, err
	}
	for _, item := range items {
		if item.VariantID == variantID {
			return true, nil
		}
	}
	return false, nil
}
