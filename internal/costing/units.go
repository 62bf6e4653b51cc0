// Package costing implements the ingredient cost allocation engine:
// unit conversion, waste-adjusted cost derivation, sub-recipe
// normalization, and final per-unit pricing.
package costing

// Unit is a purchase or usage unit of measure.
type Unit string

const (
	// UnitKilograms is a mass unit (1000 g).
	UnitKilograms Unit = "kilograms"
	// UnitGrams is the base mass unit.
	UnitGrams Unit = "grams"
	// UnitPounds is a mass unit (453.592 g).
	UnitPounds Unit = "pounds"
	// UnitOunces is a mass unit (28.3495 g).
	UnitOunces Unit = "ounces"
	// UnitLiters is a volume unit (1000 ml).
	UnitLiters Unit = "liters"
	// UnitMilliliters is the base volume unit.
	UnitMilliliters Unit = "milliliters"
	// UnitCount is the dimensionless count unit for items sold by piece.
	UnitCount Unit = "units"
)

// Dimension classifies a unit as mass, volume, or count.
type Dimension int

const (
	// DimensionUnknown marks an unrecognized unit.
	DimensionUnknown Dimension = iota
	// DimensionMass covers kilograms, grams, pounds, and ounces.
	DimensionMass
	// DimensionVolume covers liters and milliliters.
	DimensionVolume
	// DimensionCount covers the count unit.
	DimensionCount
)

// String returns a human-readable dimension name.
func (d Dimension) String() string {
	switch d {
	case DimensionMass:
		return "mass"
	case DimensionVolume:
		return "volume"
	case DimensionCount:
		return "count"
	default:
		return "unknown"
	}
}

// baseFactors maps each unit to its base-unit factor
// (grams for mass, milliliters for volume, 1 for count).
var baseFactors = map[Unit]float64{
	UnitKilograms:   1000,
	UnitGrams:       1,
	UnitPounds:      453.592,
	UnitOunces:      28.3495,
	UnitLiters:      1000,
	UnitMilliliters: 1,
	UnitCount:       1,
}

// Dimension returns the dimension the unit belongs to.
func (u Unit) Dimension() Dimension {
	switch u {
	case UnitKilograms, UnitGrams, UnitPounds, UnitOunces:
		return DimensionMass
	case UnitLiters, UnitMilliliters:
		return DimensionVolume
	case UnitCount:
		return DimensionCount
	default:
		return DimensionUnknown
	}
}

// BaseFactor returns the multiplier that converts a quantity in this unit
// to the dimension's base unit. Unknown units convert 1:1.
func (u Unit) BaseFactor() float64 {
	if f, ok := baseFactors[u]; ok {
		return f
	}
	return 1
}

// Valid reports whether the unit belongs to the supported enumeration.
func (u Unit) Valid() bool {
	_, ok := baseFactors[u]
	return ok
}

// ConvertQuantities converts purchase and usage quantities to a common base
// unit when both units share a mass or volume dimension. When either unit is
// the count unit, or the dimensions do not match, the raw quantities are
// returned unchanged and mismatched reports whether the pairing was
// dimensionally inconsistent. Mismatches never fail: operator input is
// frequently sloppy and the caller surfaces a data-quality warning instead.
func ConvertQuantities(purchaseQty float64, purchaseUnit Unit, usageQty float64, usageUnit Unit) (convPurchase, convUsage float64, mismatched bool) {
	pd := purchaseUnit.Dimension()
	ud := usageUnit.Dimension()

	if pd == DimensionCount || ud == DimensionCount {
		return purchaseQty, usageQty, false
	}

	if pd != ud || pd == DimensionUnknown {
		return purchaseQty, usageQty, true
	}

	return purchaseQty * purchaseUnit.BaseFactor(), usageQty * usageUnit.BaseFactor(), false
}
