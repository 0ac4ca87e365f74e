package variant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_storefront/internal/models"
)

func product(variants ...models.Variant) models.Product {
	return models.Product{ID: "gid://shopify/Product/1", Title: "Tee", Variants: variants}
}

func TestResolveNoVariants(t *testing.T) {
	_, err := Resolve(context.Background(), product(), nil)
	assert.ErrorIs(t, err, ErrNoVariants)
}

func TestResolveSingleVariantAutoSelects(t *testing.T) {
	only := models.Variant{ID: "v1", Title: "Default", Price: 10}
	picker := PickerFunc(func(context.Context, models.Product) (models.Variant, bool, error) {
		t.Fatal("picker must not run for a single variant")
		return models.Variant{}, false, nil
	})

	sel, err := Resolve(context.Background(), product(only), picker)
	require.NoError(t, err)
	assert.False(t, sel.Cancelled)
	assert.Equal(t, "v1", sel.Variant.ID)
}

func TestResolveMultipleVariantsUsesPicker(t *testing.T) {
	p := product(
		models.Variant{ID: "v1", Title: "S"},
		models.Variant{ID: "v2", Title: "M"},
	)
	picker := PickerFunc(func(_ context.Context, prod models.Product) (models.Variant, bool, error) {
		assert.Len(t, prod.Variants, 2)
		return prod.Variants[1], true, nil
	})

	sel, err := Resolve(context.Background(), p, picker)
	require.NoError(t, err)
	assert.Equal(t, "v2", sel.Variant.ID)
}

func TestResolveCancellation(t *testing.T) {
	p := product(models.Variant{ID: "v1"}, models.Variant{ID: "v2"})
	picker := PickerFunc(func(context.Context, models.Product) (models.Variant, bool, error) {
		return models.Variant{}, false, nil
	})

	sel, err := Resolve(context.Background(), p, picker)
	require.NoError(t, err)
	assert.True(t, sel.Cancelled)
}

func TestExplicitPicker(t *testing.T) {
	p := product(models.Variant{ID: "v1"}, models.Variant{ID: "v2"})

	sel, err := Resolve(context.Background(), p, Explicit("v2"))
	require.NoError(t, err)
	assert.Equal(t, "v2", sel.Variant.ID)

	sel, err = Resolve(context.Background(), p, Explicit(""))
	require.NoError(t, err)
	assert.True(t, sel.Cancelled)

	_, err = Resolve(context.Background(), p, Explicit("nope"))
	assert.Error(t, err)
}

func TestCompactTitle(t *testing.T) {
	cases := map[string]string{
		"Black / XL":        "XL",
		"xl / Black":        "xl",
		"Blue / 42":         "42",
		"Heather Grey":      "Hea",
		"Oak":               "Oak",
		"Navy / Long":       "Navy",
		"S":                 "S",
		"One Size / Cotton": "One",
		"Émeraude / Cotton": "Éme",
		" Écru":             "Écru",
	}
	for title, want := range cases {
		assert.Equal(t, want, CompactTitle(title), "title %q", title)
	}
}
