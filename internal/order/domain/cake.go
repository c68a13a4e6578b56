package domain

// Flavor is the sponge flavor of a cake.
type Flavor string

const (
	FlavorVanilla    Flavor = "vanilla"
	FlavorStrawberry Flavor = "strawberry"
	FlavorChocolate  Flavor = "chocolate"
	FlavorChocoMint  Flavor = "choco-mint"
	FlavorMint       Flavor = "mint"
	FlavorBanana     Flavor = "banana"
	FlavorFruit      Flavor = "fruit"
	FlavorRedVelvet  Flavor = "red-velvet"
	FlavorCustom     Flavor = "custom"
)

// Size is the cake diameter. Serving counts are attached for display.
type Size string

const (
	Size4Inch  Size = "4in"
	Size6Inch  Size = "6in"
	Size8Inch  Size = "8in"
	Size10Inch Size = "10in"
)

// Servings returns the base serving count for a size, 0 for unknown sizes.
func (s Size) Servings() int {
	switch s {
	case Size4Inch:
		return 6
	case Size6Inch:
		return 12
	case Size8Inch:
		return 24
	case Size10Inch:
		return 38
	}
	return 0
}

// Shape is the cake footprint.
type Shape string

const (
	ShapeRound  Shape = "round"
	ShapeSquare Shape = "square"
	ShapeHeart  Shape = "heart"
)

// Customization carries the optional decorative choices. Colors and
// decorations are ordered: the first color is the dominant one.
type Customization struct {
	Message     string   `json:"message,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Decorations []string `json:"decorations,omitempty"`
}

// CakeConfiguration is the customer's structural and flavor choices,
// independent of price or fulfillment. It is immutable once attached to an
// order: edits during the design flow produce a new value, never mutate a
// stored one.
type CakeConfiguration struct {
	Flavor        Flavor         `json:"flavor"`
	Size          Size           `json:"size"`
	Shape         Shape          `json:"shape"`
	Layers        int            `json:"layers"`
	Tiers         int            `json:"tiers"`
	Customization *Customization `json:"customization,omitempty"`
	Occasion      string         `json:"occasion,omitempty"`
}

// Validate checks the fields required before an order can be finalized.
// Partially-specified configurations are expected during incremental design,
// so validation runs at the order-creation boundary, not on every edit.
func (c CakeConfiguration) Validate() error {
	if c.Flavor == "" {
		return &ValidationError{Field: "flavor", Reason: "flavor is required"}
	}
	if c.Size == "" {
		return &ValidationError{Field: "size", Reason: "size is required"}
	}
	if c.Shape == "" {
		return &ValidationError{Field: "shape", Reason: "shape is required"}
	}
	if c.Layers < 1 || c.Layers > 3 {
		return &ValidationError{Field: "layers", Reason: "layers must be between 1 and 3"}
	}
	if c.Tiers < 1 || c.Tiers > 3 {
		return &ValidationError{Field: "tiers", Reason: "tiers must be between 1 and 3"}
	}
	return nil
}
