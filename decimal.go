package rdbc

import "github.com/shopspring/decimal"

// RoundingMode selects how Decimal.Round resolves ties.
type RoundingMode int

const (
	// RoundHalfEven ("banker's rounding") is the default: ties round to
	// the nearest even digit, minimizing cumulative bias over many
	// roundings.
	RoundHalfEven RoundingMode = iota
	RoundUp
	RoundDown
)

// Decimal is an arbitrary-precision signed decimal, the domain type behind
// the Ext("Decimal", String) wire form. It supports the arithmetic laws of
// a totally ordered field: addition, subtraction, multiplication, division,
// and comparison. Add, Sub, Mul and Cmp are exact; Div rounds a quotient
// that does not terminate (see Div), and Round rounds explicitly.
type Decimal struct {
	d decimal.Decimal
}

// ParseDecimal parses s (as produced by Decimal.String, or any decimal
// literal) into a Decimal.
func ParseDecimal(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, WrapError(err, "parsing decimal")
	}
	return Decimal{d: d}, nil
}

// DecimalFromExt extracts a Decimal from a Value produced by
// NewExt("Decimal", NewString(...)).
func DecimalFromExt(v Value) (Decimal, error) {
	tag, inner, ok := v.Ext()
	if !ok || tag != "Decimal" {
		return Decimal{}, Errorf("value is not an Ext(\"Decimal\", ...)")
	}
	s, ok := inner.String()
	if !ok {
		return Decimal{}, Errorf("Decimal inner value is not a String")
	}
	return ParseDecimal(s)
}

// ToValue wraps the Decimal back into its wire form, Ext("Decimal", String).
func (d Decimal) ToValue() Value {
	return NewExt("Decimal", NewString(d.d.String()))
}

func (d Decimal) String() string { return d.d.String() }

func (d Decimal) Add(other Decimal) Decimal { return Decimal{d: d.d.Add(other.d)} }
func (d Decimal) Sub(other Decimal) Decimal { return Decimal{d: d.d.Sub(other.d)} }
func (d Decimal) Mul(other Decimal) Decimal { return Decimal{d: d.d.Mul(other.d)} }

// Div divides d by other. Division that doesn't terminate within the
// underlying library's default precision (16 decimal places) is rounded
// with ties away from zero; it does not use RoundHalfEven.
func (d Decimal) Div(other Decimal) Decimal { return Decimal{d: d.d.Div(other.d)} }

func (d Decimal) Cmp(other Decimal) int { return d.d.Cmp(other.d) }

// Round rounds d to places decimal places using mode.
func (d Decimal) Round(places int32, mode RoundingMode) Decimal {
	switch mode {
	case RoundUp:
		return Decimal{d: d.d.RoundUp(places)}
	case RoundDown:
		return Decimal{d: d.d.RoundDown(places)}
	default:
		return Decimal{d: d.d.RoundBank(places)}
	}
}
