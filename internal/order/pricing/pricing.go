// Package pricing computes a cake price from a CakeConfiguration.
//
// The engine is total and deterministic: the same configuration always
// yields the same amount, nothing external is read, and invalid or missing
// inputs are clamped to documented defaults instead of returning errors.
// Partially-specified configurations are expected while a customer is still
// designing, so the ordering flow calls this freely on every edit.
package pricing

import (
	"math"

	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/domain"
)

// Base prices per size in whole currency units. Catalog items carry their
// own base price and use PriceFromBase instead of this table.
var basePrices = map[domain.Size]float64{
	domain.Size4Inch:  45,
	domain.Size6Inch:  65,
	domain.Size8Inch:  85,
	domain.Size10Inch: 120,
}

// defaultBase is used when the size is missing or unknown: the second size
// tier, so an incomplete design previews a mid-range figure.
const defaultBase = 65

var flavorMultipliers = map[domain.Flavor]float64{
	domain.FlavorVanilla:    1.0,
	domain.FlavorStrawberry: 1.1,
	domain.FlavorChocolate:  1.1,
	domain.FlavorChocoMint:  1.15,
	domain.FlavorMint:       1.05,
	domain.FlavorBanana:     1.05,
	domain.FlavorFruit:      1.3,
	domain.FlavorRedVelvet:  1.2,
	domain.FlavorCustom:     1.25,
}

// Surcharges applied by ApplyExtras. These are deliberately not part of
// Price: the designer preview shows the structural price and adds extras
// as a separate line.
const (
	MessageSurcharge     domain.Money = 20
	DecorationsSurcharge domain.Money = 30
)

// Price computes the structural price of a cake: size base × flavor
// multiplier × layer multiplier × tier multiplier, rounded to the nearest
// whole unit.
func Price(config domain.CakeConfiguration) domain.Money {
	base, ok := basePrices[config.Size]
	if !ok {
		base = defaultBase
	}
	return PriceFromBase(domain.Money(base), config)
}

// PriceFromBase applies the flavor/layer/tier multipliers to an explicit
// base price. The ordering flow uses it when the customer starts from a
// catalog item whose price overrides the size table.
func PriceFromBase(base domain.Money, config domain.CakeConfiguration) domain.Money {
	amount := float64(base)

	mult, ok := flavorMultipliers[config.Flavor]
	if !ok {
		mult = 1.0
	}
	amount *= mult

	if config.Layers > 1 {
		amount *= 1.2
	}
	if config.Tiers > 1 {
		amount *= 1.3
	}

	return domain.Money(math.Round(amount))
}

// ApplyExtras adds the fixed customization surcharges to a structural
// price: +20 for a written message, +30 for decorations. Callers that show
// the surcharges as separate lines apply them here, as an explicit second
// step, so Price itself stays pure over the four structural fields.
func ApplyExtras(price domain.Money, c *domain.Customization) domain.Money {
	if c == nil {
		return price
	}
	if c.Message != "" {
		price += MessageSurcharge
	}
	if len(c.Decorations) > 0 {
		price += DecorationsSurcharge
	}
	return price
}
