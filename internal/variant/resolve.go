package variant

import (
	"context"
	"errors"
	"fmt"

	"velora_storefront/internal/models"
)

// ErrNoVariants means the product has nothing purchasable; the caller must
// surface it and must not touch any cart or wishlist state.
var ErrNoVariants = errors.New("product has no purchasable variants")

// Picker is the interactive variant-choice step. Implementations present all
// variants and wait; ok=false means the user dismissed the choice. How the
// choice is rendered (HTTP round-trip, CLI prompt, test stub) is up to the
// implementation.
type Picker interface {
	Pick(ctx context.Context, product models.Product) (models.Variant, bool, error)
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(ctx context.Context, product models.Product) (models.Variant, bool, error)

func (f PickerFunc) Pick(ctx context.Context, product models.Product) (models.Variant, bool, error) {
	return f(ctx, product)
}

// Selection is the outcome of variant resolution. Cancelled is a normal
// result, not an error; callers short-circuit on it without any mutation.
type Selection struct {
	Variant   models.Variant
	Cancelled bool
}

// Resolve turns a product into exactly one variant. A single variant is
// selected automatically; multiple variants go through the picker.
func Resolve(ctx context.Context, product models.Product, picker Picker) (Selection, error) {
	switch len(product.Variants) {
	case 0:
		return Selection{}, ErrNoVariants
	case 1:
		return Selection{Variant: product.Variants[0]}, nil
	}

	if picker == nil {
		return Selection{Cancelled: true}, nil
	}
	chosen, ok, err := picker.Pick(ctx, product)
	if err != nil {
		return Selection{}, err
	}
	if !ok {
		return Selection{Cancelled: true}, nil
	}
	return Selection{Variant: chosen}, nil
}

// Explicit is a picker that selects the variant with the given id. An empty
// id behaves as a cancellation, an unknown id as an error.
func Explicit(variantID string) Picker {
	return PickerFunc(func(_ context.Context, product models.Product) (models.Variant, bool, error) {
		if variantID == "" {
			return models.Variant{}, false, nil
		}
		v, ok := product.VariantByID(variantID)
		if !ok {
			return models.Variant{}, false, fmt.Errorf("variant %s does not belong to product %s", variantID, product.ID)
		}
		return v, true, nil
	})
}
