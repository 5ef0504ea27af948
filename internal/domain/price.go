package domain

import "github.com/shopspring/decimal"

// PriceRange is a client-side price refinement with optional inclusive bounds.
// A missing Min means 0; a missing Max means unbounded.
type PriceRange struct {
	Min decimal.NullDecimal
	Max decimal.NullDecimal
}

// NewPriceRange builds a range from optional bounds
func NewPriceRange(lower, upper *decimal.Decimal) PriceRange {
	var r PriceRange
	if lower != nil {
		r.Min = decimal.NewNullDecimal(*lower)
	}
	if upper != nil {
		r.Max = decimal.NewNullDecimal(*upper)
	}
	return r
}

// IsEmpty returns true when neither bound is set
func (r PriceRange) IsEmpty() bool {
	return !r.Min.Valid && !r.Max.Valid
}

// Contains reports whether price lies within the range
func (r PriceRange) Contains(price decimal.Decimal) bool {
	lower := decimal.Zero
	if r.Min.Valid {
		lower = r.Min.Decimal
	}
	if price.LessThan(lower) {
		return false
	}
	if r.Max.Valid && price.GreaterThan(r.Max.Decimal) {
		return false
	}
	return true
}

// String renders the range for status lines, e.g. "$10.00 - $50.00" or "$10.00+"
func (r PriceRange) String() string {
	from := "$0.00"
	if r.Min.Valid {
		from = "$" + r.Min.Decimal.StringFixed(2)
	}
	if !r.Max.Valid {
		return from + "+"
	}
	return from + " - $" + r.Max.Decimal.StringFixed(2)
}
