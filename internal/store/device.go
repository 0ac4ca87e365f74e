package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"velora_storefront/internal/models"
)

// Device-store keys, one namespace per device id. These mirror what the web
// client would keep in localStorage: guest cart, guest wishlist and the
// commerce backend's cart id, which is device-scoped and survives sign-in.
const (
	keyGuestCart     = "guestCart"
	keyWishlistItems = "wishlistItems"
	keyShopifyCartID = "shopifyCartId"
	keyCheckoutURL   = "checkoutUrl"
	guestDataTTL     = 30 * 24 * time.Hour
	chanCartUpdated  = "cartUpdated"
	chanGuestCartUpd = "guestCartUpdated"
)

// DeviceStore is the per-device key/value namespace backed by Redis. It plays
// the role a browser's local storage plays for a pure client app: shared by
// all tabs of one device, no locking, change signals broadcast on the side.
type DeviceStore struct {
	rdb *redis.Client
}

func NewDeviceStore(rdb *redis.Client) *DeviceStore {
	return &DeviceStore{rdb: rdb}
}

func deviceKey(deviceID, key string) string {
	return "device:" + deviceID + ":" + key
}

func signalChannel(channel, deviceID string) string {
	return channel + ":" + deviceID
}

// decodeItems decodes a stored JSON array. Unparseable data, JSON null and
// non-array values all degrade to an empty collection — bad stored state must
// never surface to the user as an error.
func decodeItems[T any](data []byte) []T {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("⚠️ Unparseable stored items, treating as empty: %v", err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// readItems fetches and decodes a JSON array stored under key. An absent key
// is an empty collection; only the Redis round-trip itself can error.
func readItems[T any](ctx context.Context, rdb *redis.Client, key string) ([]T, error) {
	data, err := rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeItems[T]([]byte(data)), nil
}

// GuestCartItems returns the guest display-cart for a device.
func (s *DeviceStore) GuestCartItems(ctx context.Context, deviceID string) ([]models.CartLineItem, error) {
	return readItems[models.CartLineItem](ctx, s.rdb, deviceKey(deviceID, keyGuestCart))
}

// SetGuestCartItems writes the full guest cart back and broadcasts the
// guestCartUpdated signal with the new items as payload.
func (s *DeviceStore) SetGuestCartItems(ctx context.Context, deviceID string, items []models.CartLineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, deviceKey(deviceID, keyGuestCart), data, guestDataTTL).Err(); err != nil {
		return err
	}
	s.rdb.Publish(ctx, signalChannel(chanGuestCartUpd, deviceID), data)
	return nil
}

// WishlistItems returns the guest wishlist for a device.
func (s *DeviceStore) WishlistItems(ctx context.Context, deviceID string) ([]models.WishlistItem, error) {
	return readItems[models.WishlistItem](ctx, s.rdb, deviceKey(deviceID, keyWishlistItems))
}

// SetWishlistItems writes the full guest wishlist back.
func (s *DeviceStore) SetWishlistItems(ctx context.Context, deviceID string, items []models.WishlistItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, deviceKey(deviceID, keyWishlistItems), data, guestDataTTL).Err()
}

// CheckoutCartID returns the commerce backend's cart id for this device, or
// "" when none has been created yet.
func (s *DeviceStore) CheckoutCartID(ctx context.Context, deviceID string) (string, error) {
	id, err := s.rdb.Get(ctx, deviceKey(deviceID, keyShopifyCartID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return id, err
}

// SetCheckoutCart persists the commerce backend's cart id and checkout URL.
// No TTL: the id lives for the lifetime of the device profile.
func (s *DeviceStore) SetCheckoutCart(ctx context.Context, deviceID string, cart models.CheckoutCart) error {
	if err := s.rdb.Set(ctx, deviceKey(deviceID, keyShopifyCartID), cart.ID, 0).Err(); err != nil {
		return err
	}
	return s.rdb.Set(ctx, deviceKey(deviceID, keyCheckoutURL), cart.CheckoutURL, 0).Err()
}

// CheckoutURL returns the hosted-checkout URL for this device, or "" when no
// checkout cart exists yet.
func (s *DeviceStore) CheckoutURL(ctx context.Context, deviceID string) (string, error) {
	url, err := s.rdb.Get(ctx, deviceKey(deviceID, keyCheckoutURL)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return url, err
}

// PublishCartUpdated broadcasts the application-level cartUpdated signal,
// optionally carrying the new items. A nil slice sends a payload-less signal;
// subscribers then re-read the store.
func (s *DeviceStore) PublishCartUpdated(ctx context.Context, deviceID string, items []models.CartLineItem) {
	payload := ""
	if items != nil {
		if data, err := json.Marshal(items); err == nil {
			payload = string(data)
		}
	}
	s.rdb.Publish(ctx, signalChannel(chanCartUpdated, deviceID), payload)
}

// SubscribeCart listens on both cart signals for a device and delivers the
// current guest cart after every change. Payload-bearing signals are decoded
// directly; payload-less ones fall back to re-reading the store. The stop
// function tears the subscription down; the channel closes afterwards.
func (s *DeviceStore) SubscribeCart(ctx context.Context, deviceID string) (<-chan []models.CartLineItem, func()) {
	pubsub := s.rdb.Subscribe(ctx,
		signalChannel(chanCartUpdated, deviceID),
		signalChannel(chanGuestCartUpd, deviceID),
	)
	out := make(chan []models.CartLineItem, 1)

	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var items []models.CartLineItem
			if msg.Payload == "" || json.Unmarshal([]byte(msg.Payload), &items) != nil {
				var err error
				items, err = s.GuestCartItems(ctx, deviceID)
				if err != nil {
					log.Printf("⚠️ Re-read after cart signal failed: %v", err)
					continue
				}
			}
			select {
			case out <- items:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, func() { _ = pubsub.Close() }
}
