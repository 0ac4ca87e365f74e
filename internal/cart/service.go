package cart

import (
	"context"
	"fmt"

	"velora_storefront/internal/models"
)

// Gateway is the slice of the commerce backend the cart core needs: lazily
// creating the checkout cart and pushing lines into it.
type Gateway interface {
	CreateCart(ctx context.Context) (models.CheckoutCart, error)
	AddLines(ctx context.Context, cartID, variantID string, quantity int) error
}

// RemoteStore is the signed-in display-cart location (one document per user).
type RemoteStore interface {
	CartItems(ctx context.Context, userID string) ([]models.CartLineItem, error)
	SetCartItems(ctx context.Context, userID string, items []models.CartLineItem) error
	WatchCart(ctx context.Context, userID string) <-chan []models.CartLineItem
}

// DeviceStore is the guest display-cart location plus the device-scoped
// checkout-cart identity, which survives sign-in and sign-out.
type DeviceStore interface {
	GuestCartItems(ctx context.Context, deviceID string) ([]models.CartLineItem, error)
	SetGuestCartItems(ctx context.Context, deviceID string, items []models.CartLineItem) error
	CheckoutCartID(ctx context.Context, deviceID string) (string, error)
	SetCheckoutCart(ctx context.Context, deviceID string, cart models.CheckoutCart) error
	CheckoutURL(ctx context.Context, deviceID string) (string, error)
	PublishCartUpdated(ctx context.Context, deviceID string, items []models.CartLineItem)
	SubscribeCart(ctx context.Context, deviceID string) (<-chan []models.CartLineItem, func())
}

// Service is the cart reconciliation core. Which store a call hits is decided
// per operation from the session it receives, never from cached state.
//
// Known, intentional gaps carried over from the observed behavior:
//   - signing in does not migrate guest items into the user's remote cart;
//     the guest collection is simply left behind,
//   - RemoveLineItem only touches the display-cart, not the checkout cart,
//   - concurrent read-modify-writes of one collection are last-write-wins.
type Service struct {
	gateway Gateway
	remote  RemoteStore
	local   DeviceStore
}

func New(gateway Gateway, remote RemoteStore, local DeviceStore) *Service {
	return &Service{gateway: gateway, remote: remote, local: local}
}

// ensureCheckoutCart resolves the device's checkout-cart id, creating it at
// the commerce backend on first use. The id is never re-created once present.
// An empty device id is refused outright: the id is keyed by device, and a
// blank key would silently become one cart shared across every such session.
func (s *Service) ensureCheckoutCart(ctx context.Context, sess models.Session) (string, error) {
	if sess.DeviceID == "" {
		return "", fmt.Errorf("session has no device id")
	}
	id, err := s.local.CheckoutCartID(ctx, sess.DeviceID)
	if err != nil {
		return "", fmt.Errorf("read checkout cart id: %w", err)
	}
	if id != "" {
		return id, nil
	}

	created, err := s.gateway.CreateCart(ctx)
	if err != nil {
		return "", fmt.Errorf("create checkout cart: %w", err)
	}
	if err := s.local.SetCheckoutCart(ctx, sess.DeviceID, created); err != nil {
		return "", fmt.Errorf("persist checkout cart id: %w", err)
	}
	return created.ID, nil
}

// AddLineItem pushes the variant into the checkout cart, then merges the
// denormalized line into whichever display-cart the session selects. A
// gateway failure aborts before any display write; a display write failing
// after the gateway succeeded is returned as-is, with no rollback (the two
// carts are allowed to diverge until the next add).
func (s *Service) AddLineItem(ctx context.Context, sess models.Session, product models.Product, chosen models.Variant, quantity int) ([]models.CartLineItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	cartID, err := s.ensureCheckoutCart(ctx, sess)
	if err != nil {
		return nil, err
	}
	if err := s.gateway.AddLines(ctx, cartID, chosen.ID, quantity); err != nil {
		return nil, fmt.Errorf("add lines to checkout cart: %w", err)
	}

	line := models.NewCartLineItem(product, chosen, quantity)

	items, err := s.Items(ctx, sess)
	if err != nil {
		return nil, err
	}
	items = mergeLine(items, line)
	if err := s.setItems(ctx, sess, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveLineItem filters the line out of the current display-cart. Removing
// an absent id is a no-op. The checkout cart is deliberately left alone.
func (s *Service) RemoveLineItem(ctx context.Context, sess models.Session, itemID string) ([]models.CartLineItem, error) {
	items, err := s.Items(ctx, sess)
	if err != nil {
		return nil, err
	}

	kept := make([]models.CartLineItem, 0, len(items))
	for _, item := range items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	if err := s.setItems(ctx, sess, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Items reads the display-cart from the store the session selects.
func (s *Service) Items(ctx context.Context, sess models.Session) ([]models.CartLineItem, error) {
	if sess.SignedIn() {
		return s.remote.CartItems(ctx, sess.UserID)
	}
	return s.local.GuestCartItems(ctx, sess.DeviceID)
}

func (s *Service) setItems(ctx context.Context, sess models.Session, items []models.CartLineItem) error {
	if sess.SignedIn() {
		return s.remote.SetCartItems(ctx, sess.UserID, items)
	}
	if err := s.local.SetGuestCartItems(ctx, sess.DeviceID, items); err != nil {
		return err
	}
	// Payload-less application-level signal; subscribers re-read the store.
	// The store's own guestCartUpdated broadcast carries the items.
	s.local.PublishCartUpdated(ctx, sess.DeviceID, nil)
	return nil
}

// TotalQuantity recomputes the badge total from the current store.
func (s *Service) TotalQuantity(ctx context.Context, sess models.Session) (int, error) {
	items, err := s.Items(ctx, sess)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total, nil
}

// CheckoutURL returns the hosted-checkout URL for the device, or "" when
// nothing has been added yet.
func (s *Service) CheckoutURL(ctx context.Context, sess models.Session) (string, error) {
	return s.local.CheckoutURL(ctx, sess.DeviceID)
}

// Watch subscribes to display-cart changes for the session: remote document
// snapshots while signed in, the device's cartUpdated/guestCartUpdated
// signals otherwise. The returned stop function must be called when the
// owning consumer goes away; no subscription may outlive it.
func (s *Service) Watch(ctx context.Context, sess models.Session) (<-chan []models.CartLineItem, func()) {
	if sess.SignedIn() {
		watchCtx, cancel := context.WithCancel(ctx)
		return s.remote.WatchCart(watchCtx, sess.UserID), cancel
	}
	return s.local.SubscribeCart(ctx, sess.DeviceID)
}

// mergeLine applies the dedupe rule: at most one line per variant id, adds to
// an existing line's quantity, otherwise appends.
func mergeLine(items []models.CartLineItem, line models.CartLineItem) []models.CartLineItem {
	for i := range items {
		if items[i].ID == line.ID {
			items[i].Quantity += line.Quantity
			return items
		}
	}
	return append(items, line)
}
