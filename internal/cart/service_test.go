package cart

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_storefront/internal/models"
)

type mockGateway struct {
	createCalls int
	addCalls    []string
	createErr   error
	addErr      error
}

func (m *mockGateway) CreateCart(context.Context) (models.CheckoutCart, error) {
	m.createCalls++
	if m.createErr != nil {
		return models.CheckoutCart{}, m.createErr
	}
	return models.CheckoutCart{
		ID:          fmt.Sprintf("gid://shopify/Cart/%d", m.createCalls),
		CheckoutURL: "https://shop.example/checkout",
	}, nil
}

func (m *mockGateway) AddLines(_ context.Context, cartID, variantID string, quantity int) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.addCalls = append(m.addCalls, fmt.Sprintf("%s:%s:%d", cartID, variantID, quantity))
	return nil
}

type mockRemote struct {
	carts  map[string][]models.CartLineItem
	reads  int
	writes int
	setErr error
}

func newMockRemote() *mockRemote {
	return &mockRemote{carts: map[string][]models.CartLineItem{}}
}

func (m *mockRemote) CartItems(_ context.Context, userID string) ([]models.CartLineItem, error) {
	m.reads++
	return append([]models.CartLineItem{}, m.carts[userID]...), nil
}

func (m *mockRemote) SetCartItems(_ context.Context, userID string, items []models.CartLineItem) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.writes++
	m.carts[userID] = items
	return nil
}

func (m *mockRemote) WatchCart(context.Context, string) <-chan []models.CartLineItem {
	ch := make(chan []models.CartLineItem)
	close(ch)
	return ch
}

type mockLocal struct {
	carts       map[string][]models.CartLineItem
	checkoutIDs map[string]string
	reads       int
	writes      int
	published   [][]models.CartLineItem
	setErr      error
}

func newMockLocal() *mockLocal {
	return &mockLocal{
		carts:       map[string][]models.CartLineItem{},
		checkoutIDs: map[string]string{},
	}
}

func (m *mockLocal) GuestCartItems(_ context.Context, deviceID string) ([]models.CartLineItem, error) {
	m.reads++
	return append([]models.CartLineItem{}, m.carts[deviceID]...), nil
}

func (m *mockLocal) SetGuestCartItems(_ context.Context, deviceID string, items []models.CartLineItem) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.writes++
	m.carts[deviceID] = items
	return nil
}

func (m *mockLocal) CheckoutCartID(_ context.Context, deviceID string) (string, error) {
	return m.checkoutIDs[deviceID], nil
}

func (m *mockLocal) SetCheckoutCart(_ context.Context, deviceID string, cart models.CheckoutCart) error {
	m.checkoutIDs[deviceID] = cart.ID
	return nil
}

func (m *mockLocal) CheckoutURL(_ context.Context, deviceID string) (string, error) {
	if m.checkoutIDs[deviceID] == "" {
		return "", nil
	}
	return "https://shop.example/checkout", nil
}

func (m *mockLocal) PublishCartUpdated(_ context.Context, _ string, items []models.CartLineItem) {
	m.published = append(m.published, items)
}

func (m *mockLocal) SubscribeCart(context.Context, string) (<-chan []models.CartLineItem, func()) {
	ch := make(chan []models.CartLineItem)
	close(ch)
	return ch, func() {}
}

var (
	testProduct = models.Product{
		ID:    "gid://shopify/Product/7",
		Title: "Velora Tee",
		Image: "https://cdn.example/tee.jpg",
	}
	variantV1 = models.Variant{ID: "V1", Title: "Black / M", Price: 10.00}
	variantV2 = models.Variant{ID: "V2", Title: "Black / L", Price: 12.50}
)

func newService() (*Service, *mockGateway, *mockRemote, *mockLocal) {
	gw := &mockGateway{}
	remote := newMockRemote()
	local := newMockLocal()
	return New(gw, remote, local), gw, remote, local
}

func guest(deviceID string) models.Session {
	return models.Session{DeviceID: deviceID}
}

func signedIn(userID, deviceID string) models.Session {
	return models.Session{UserID: userID, DeviceID: deviceID}
}

func TestAddDeduplicatesByVariantID(t *testing.T) {
	svc, _, _, local := newService()
	sess := guest("dev-1")
	ctx := context.Background()

	_, err := svc.AddLineItem(ctx, sess, testProduct, variantV1, 2)
	require.NoError(t, err)
	_, err = svc.AddLineItem(ctx, sess, testProduct, variantV1, 3)
	require.NoError(t, err)
	items, err := svc.AddLineItem(ctx, sess, testProduct, variantV2, 1)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "V1", items[0].ID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "V2", items[1].ID)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, items, local.carts["dev-1"])
}

func TestGuestScenario(t *testing.T) {
	svc, _, _, _ := newService()
	sess := guest("dev-1")
	ctx := context.Background()

	items, err := svc.AddLineItem(ctx, sess, testProduct, variantV1, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "V1", items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 10.00, items[0].Price)

	total, err := svc.TotalQuantity(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	items, err = svc.AddLineItem(ctx, sess, testProduct, variantV1, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	total, err = svc.TotalQuantity(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	items, err = svc.RemoveLineItem(ctx, sess, "V1")
	require.NoError(t, err)
	assert.Empty(t, items)

	total, err = svc.TotalQuantity(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestStoreSelectionFollowsSession(t *testing.T) {
	svc, _, remote, local := newService()
	ctx := context.Background()

	// Guest adds touch only the device store.
	_, err := svc.AddLineItem(ctx, guest("dev-1"), testProduct, variantV1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, remote.writes)
	assert.Equal(t, 1, local.writes)

	// The next operation after sign-in targets only the user's remote
	// document; nothing migrates, the guest cart stays behind untouched.
	_, err = svc.AddLineItem(ctx, signedIn("user-9", "dev-1"), testProduct, variantV2, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, remote.writes)
	assert.Equal(t, 1, local.writes)

	require.Len(t, local.carts["dev-1"], 1)
	assert.Equal(t, "V1", local.carts["dev-1"][0].ID)
	require.Len(t, remote.carts["user-9"], 1)
	assert.Equal(t, "V2", remote.carts["user-9"][0].ID)
}

func TestCheckoutCartIsDeviceScoped(t *testing.T) {
	svc, gw, _, local := newService()
	ctx := context.Background()

	_, err := svc.AddLineItem(ctx, guest("dev-1"), testProduct, variantV1, 1)
	require.NoError(t, err)
	require.Equal(t, 1, gw.createCalls)
	firstID := local.checkoutIDs["dev-1"]

	// Signing in and out never re-creates the checkout cart for a device.
	_, err = svc.AddLineItem(ctx, signedIn("user-9", "dev-1"), testProduct, variantV2, 1)
	require.NoError(t, err)
	_, err = svc.AddLineItem(ctx, guest("dev-1"), testProduct, variantV2, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, gw.createCalls)
	assert.Equal(t, firstID, local.checkoutIDs["dev-1"])
	assert.Len(t, gw.addCalls, 3)
}

func TestDevicelessSessionCannotShareCheckoutCart(t *testing.T) {
	svc, gw, remote, local := newService()
	ctx := context.Background()

	// Two signed-in sessions that both lack a device id must not end up
	// funnelled into one checkout cart under a blank device key.
	_, err := svc.AddLineItem(ctx, signedIn("user-a", ""), testProduct, variantV1, 1)
	assert.Error(t, err)
	_, err = svc.AddLineItem(ctx, signedIn("user-b", ""), testProduct, variantV2, 1)
	assert.Error(t, err)

	assert.Equal(t, 0, gw.createCalls)
	assert.Empty(t, gw.addCalls)
	assert.Empty(t, local.checkoutIDs)
	assert.Equal(t, 0, remote.writes)
}

func TestGuestMutationBroadcastsCartUpdated(t *testing.T) {
	svc, _, _, local := newService()
	ctx := context.Background()

	_, err := svc.AddLineItem(ctx, guest("dev-1"), testProduct, variantV1, 1)
	require.NoError(t, err)
	_, err = svc.RemoveLineItem(ctx, guest("dev-1"), "V1")
	require.NoError(t, err)

	// Each guest mutation fires the payload-less cartUpdated signal;
	// subscribers fall back to re-reading the store.
	require.Len(t, local.published, 2)
	assert.Nil(t, local.published[0])
	assert.Nil(t, local.published[1])

	// Signed-in mutations go to the remote store and must not broadcast
	// device-level signals.
	_, err = svc.AddLineItem(ctx, signedIn("user-9", "dev-1"), testProduct, variantV2, 1)
	require.NoError(t, err)
	assert.Len(t, local.published, 2)
}

func TestRemoveIsIdempotent(t *testing.T) {
	svc, _, _, _ := newService()
	sess := guest("dev-1")
	ctx := context.Background()

	_, err := svc.AddLineItem(ctx, sess, testProduct, variantV1, 1)
	require.NoError(t, err)
	_, err = svc.AddLineItem(ctx, sess, testProduct, variantV2, 1)
	require.NoError(t, err)

	first, err := svc.RemoveLineItem(ctx, sess, "V1")
	require.NoError(t, err)
	second, err := svc.RemoveLineItem(ctx, sess, "V1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, second, 1)
	assert.Equal(t, "V2", second[0].ID)
}

func TestRemoveDoesNotTouchGateway(t *testing.T) {
	svc, gw, _, _ := newService()
	sess := guest("dev-1")
	ctx := context.Background()

	_, err := svc.AddLineItem(ctx, sess, testProduct, variantV1, 1)
	require.NoError(t, err)
	calls := len(gw.addCalls)

	_, err = svc.RemoveLineItem(ctx, sess, "V1")
	require.NoError(t, err)
	assert.Len(t, gw.addCalls, calls)
	assert.Equal(t, 1, gw.createCalls)
}

func TestGatewayFailureAbortsBeforeDisplayWrite(t *testing.T) {
	svc, gw, _, local := newService()
	gw.addErr = errors.New("network down")
	sess := guest("dev-1")

	_, err := svc.AddLineItem(context.Background(), sess, testProduct, variantV1, 1)
	assert.Error(t, err)
	assert.Equal(t, 0, local.writes)
	assert.Empty(t, local.carts["dev-1"])
}

func TestDisplayWriteFailureHasNoRollback(t *testing.T) {
	svc, gw, _, local := newService()
	local.setErr = errors.New("store unavailable")
	sess := guest("dev-1")

	_, err := svc.AddLineItem(context.Background(), sess, testProduct, variantV1, 1)
	assert.Error(t, err)
	// The gateway add already happened; the carts diverge until the next add.
	assert.Len(t, gw.addCalls, 1)
}

func TestQuantityBelowOneDefaultsToOne(t *testing.T) {
	svc, _, _, _ := newService()
	sess := guest("dev-1")

	items, err := svc.AddLineItem(context.Background(), sess, testProduct, variantV1, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCheckoutURL(t *testing.T) {
	svc, _, _, _ := newService()
	sess := guest("dev-1")
	ctx := context.Background()

	url, err := svc.CheckoutURL(ctx, sess)
	require.NoError(t, err)
	assert.Empty(t, url)

	_, err = svc.AddLineItem(ctx, sess, testProduct, variantV1, 1)
	require.NoError(t, err)

	url, err = svc.CheckoutURL(ctx, sess)
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}
