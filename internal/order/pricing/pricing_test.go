package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/domain"
)

func TestPriceIsDeterministic(t *testing.T) {
	config := domain.CakeConfiguration{
		Flavor: domain.FlavorChocolate,
		Size:   domain.Size8Inch,
		Shape:  domain.ShapeHeart,
		Layers: 2,
		Tiers:  2,
	}
	first := Price(config)
	second := Price(config)
	require.Equal(t, first, second)
}

func TestPriceBaseTable(t *testing.T) {
	tests := []struct {
		size domain.Size
		want domain.Money
	}{
		{domain.Size4Inch, 45},
		{domain.Size6Inch, 65},
		{domain.Size8Inch, 85},
		{domain.Size10Inch, 120},
	}
	for _, tt := range tests {
		t.Run(string(tt.size), func(t *testing.T) {
			got := Price(domain.CakeConfiguration{
				Flavor: domain.FlavorVanilla,
				Size:   tt.size,
				Shape:  domain.ShapeRound,
				Layers: 1,
				Tiers:  1,
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriceMultiplierComposition(t *testing.T) {
	// 65 base × 1.1 chocolate × 1.2 multi-layer = 85.8, rounds to 86.
	got := Price(domain.CakeConfiguration{
		Flavor: domain.FlavorChocolate,
		Size:   domain.Size6Inch,
		Shape:  domain.ShapeRound,
		Layers: 2,
		Tiers:  1,
	})
	assert.Equal(t, domain.Money(86), got)
}

func TestPriceMonotonicInSize(t *testing.T) {
	sizes := []domain.Size{domain.Size4Inch, domain.Size6Inch, domain.Size8Inch, domain.Size10Inch}
	var prev domain.Money
	for _, size := range sizes {
		got := Price(domain.CakeConfiguration{
			Flavor: domain.FlavorFruit,
			Size:   size,
			Shape:  domain.ShapeSquare,
			Layers: 2,
			Tiers:  2,
		})
		assert.GreaterOrEqual(t, got, prev, "price must not decrease from %s", size)
		prev = got
	}
}

func TestPriceDefaultsForMissingFields(t *testing.T) {
	// An empty configuration must never panic or error: size falls back to
	// the second tier base, flavor to ×1.0.
	got := Price(domain.CakeConfiguration{})
	assert.Equal(t, domain.Money(65), got)
	assert.Positive(t, int64(got))
}

func TestPriceUnknownFlavorDefaultsToNeutral(t *testing.T) {
	base := Price(domain.CakeConfiguration{Size: domain.Size8Inch, Flavor: domain.FlavorVanilla, Layers: 1, Tiers: 1})
	unknown := Price(domain.CakeConfiguration{Size: domain.Size8Inch, Flavor: "pistachio", Layers: 1, Tiers: 1})
	assert.Equal(t, base, unknown)
}

func TestPriceFromBaseCatalogOverride(t *testing.T) {
	got := PriceFromBase(100, domain.CakeConfiguration{
		Flavor: domain.FlavorVanilla,
		Size:   domain.Size4Inch, // ignored: base comes from the catalog
		Layers: 1,
		Tiers:  1,
	})
	assert.Equal(t, domain.Money(100), got)
}

func TestPriceTierAndLayerMultipliers(t *testing.T) {
	base := domain.CakeConfiguration{Flavor: domain.FlavorVanilla, Size: domain.Size10Inch, Layers: 1, Tiers: 1}

	layered := base
	layered.Layers = 3
	assert.Equal(t, domain.Money(144), Price(layered)) // 120 × 1.2

	tiered := base
	tiered.Tiers = 2
	assert.Equal(t, domain.Money(156), Price(tiered)) // 120 × 1.3

	both := base
	both.Layers = 2
	both.Tiers = 3
	assert.Equal(t, domain.Money(187), Price(both)) // 120 × 1.2 × 1.3 = 187.2
}

func TestApplyExtras(t *testing.T) {
	assert.Equal(t, domain.Money(85), ApplyExtras(85, nil))

	withMessage := &domain.Customization{Message: "Happy Birthday"}
	assert.Equal(t, domain.Money(105), ApplyExtras(85, withMessage))

	withBoth := &domain.Customization{
		Message:     "Congrats",
		Decorations: []string{"gold leaf", "sugar flowers"},
	}
	assert.Equal(t, domain.Money(135), ApplyExtras(85, withBoth))

	emptyCustomization := &domain.Customization{Colors: []string{"blue"}}
	assert.Equal(t, domain.Money(85), ApplyExtras(85, emptyCustomization))
}
