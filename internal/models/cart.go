package models

// CartLineItem is one line of the display-cart. Fields are denormalized at add
// time and are not kept in sync with later catalog changes.
type CartLineItem struct {
	ID       string  `json:"id" firestore:"id"` // variant id, unique within one cart
	Name     string  `json:"name" firestore:"name"`
	Price    float64 `json:"price" firestore:"price"`
	Image    string  `json:"image" firestore:"image"`
	Quantity int     `json:"quantity" firestore:"quantity"`
}

// CheckoutCart is the commerce backend's cart, consumed by its hosted checkout.
// Only the id and the checkout URL ever matter to us.
type CheckoutCart struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkoutUrl"`
}

// NewCartLineItem denormalizes a resolved variant into a display-cart line.
func NewCartLineItem(product Product, variant Variant, quantity int) CartLineItem {
	image := variant.Image
	if image == "" {
		image = product.Image
	}
	return CartLineItem{
		ID:       variant.ID,
		Name:     product.Title,
		Price:    variant.Price,
		Image:    image,
		Quantity: quantity,
	}
}
