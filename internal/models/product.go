package models

// SelectedOption is one name/value pair distinguishing a variant (Color=Black).
type SelectedOption struct {
	Name  string `json:"name" firestore:"name"`
	Value string `json:"value" firestore:"value"`
}

// Variant is one concrete purchasable configuration of a product.
type Variant struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Price   float64          `json:"price"`
	Image   string           `json:"image"`
	Options []SelectedOption `json:"selectedOptions"`
}

// Product is the normalized catalog shape. Everything downstream of the
// gateway client works on this struct, never on raw API responses.
type Product struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Image    string    `json:"image"`
	Variants []Variant `json:"variants"`
}

// VariantByID returns the variant with the given id, if present.
func (p Product) VariantByID(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}
