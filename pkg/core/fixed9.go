package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"
)

// Fixed9Scale is the number of fractional digits carried by Fixed9.
const Fixed9Scale = 9

const fixed9Unit = 1_000_000_000

// Fixed9 is an exact decimal stored as a signed integer count of 10^-9 units.
// All prices and quantities on the BitMax wire use it.
type Fixed9 struct {
	raw int64
}

// FromRaw builds a Fixed9 from its scaled integer representation.
func FromRaw(raw int64) Fixed9 {
	return Fixed9{raw: raw}
}

// FromInt builds a Fixed9 holding a whole number.
func FromInt(n int64) Fixed9 {
	return Fixed9{raw: n * fixed9Unit}
}

// ParseFixed9 parses a decimal string such as "0.1", "-12.5" or "3".
// Fractions longer than nine digits are truncated.
func ParseFixed9(s string) (Fixed9, error) {
	text := s
	negative := false
	if strings.HasPrefix(text, "-") {
		negative = true
		text = text[1:]
	}

	intPart, fracPart, _ := strings.Cut(text, ".")
	if intPart == "" {
		return Fixed9{}, NewParseError(s, "missing integer part")
	}
	if !allDigits(intPart) {
		return Fixed9{}, NewParseError(s, "invalid character in integer part")
	}
	if !allDigits(fracPart) {
		return Fixed9{}, NewParseError(s, "invalid character in fractional part")
	}

	whole, err := strconv.ParseUint(intPart, 10, 64)
	if err != nil {
		return Fixed9{}, NewParseError(s, "integer part out of range")
	}

	if len(fracPart) > Fixed9Scale {
		fracPart = fracPart[:Fixed9Scale]
	}
	var frac uint64
	if fracPart != "" {
		frac, err = strconv.ParseUint(fracPart+strings.Repeat("0", Fixed9Scale-len(fracPart)), 10, 64)
		if err != nil {
			return Fixed9{}, NewParseError(s, "invalid fractional part")
		}
	}

	// the negative range reaches one unit further than the positive one
	limit := uint64(math.MaxInt64)
	if negative {
		limit++
	}
	if whole > (limit-frac)/fixed9Unit {
		return Fixed9{}, NewParseError(s, "value out of range")
	}
	raw := int64(whole*fixed9Unit + frac)
	if negative {
		raw = -raw
	}
	return Fixed9{raw: raw}, nil
}

// MustParseFixed9 is like ParseFixed9 but panics on malformed input.
func MustParseFixed9(s string) Fixed9 {
	v, err := ParseFixed9(s)
	if err != nil {
		panic(err)
	}
	return v
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Raw returns the scaled integer representation.
func (f Fixed9) Raw() int64 { return f.raw }

// Int returns the integer part, truncated toward zero.
func (f Fixed9) Int() int64 { return f.raw / fixed9Unit }

// Add returns f+o. Like int64 arithmetic, results beyond the representable
// range wrap around; the exchange never sends values near the bounds.
func (f Fixed9) Add(o Fixed9) Fixed9 { return Fixed9{raw: f.raw + o.raw} }

// Sub returns f-o. It wraps on overflow like Add.
func (f Fixed9) Sub(o Fixed9) Fixed9 { return Fixed9{raw: f.raw - o.raw} }

// Mul scales the value by an integer factor. It wraps on overflow like Add.
func (f Fixed9) Mul(n int64) Fixed9 { return Fixed9{raw: f.raw * n} }

// Neg returns -f.
func (f Fixed9) Neg() Fixed9 { return Fixed9{raw: -f.raw} }

// Abs returns the magnitude of f.
func (f Fixed9) Abs() Fixed9 {
	if f.raw < 0 {
		return f.Neg()
	}
	return f
}

// Cmp returns -1, 0 or 1 depending on whether f is less than, equal to or greater than o.
func (f Fixed9) Cmp(o Fixed9) int {
	switch {
	case f.raw < o.raw:
		return -1
	case f.raw > o.raw:
		return 1
	default:
		return 0
	}
}

// Equal reports whether f and o are the same value. "1.10" equals "1.1".
func (f Fixed9) Equal(o Fixed9) bool { return f.raw == o.raw }

// Less reports whether f < o.
func (f Fixed9) Less(o Fixed9) bool { return f.raw < o.raw }

// IsZero reports whether f is zero.
func (f Fixed9) IsZero() bool { return f.raw == 0 }

// Sign returns -1, 0 or 1.
func (f Fixed9) Sign() int { return f.Cmp(Fixed9{}) }

func (f Fixed9) parts() (neg bool, whole, frac uint64) {
	mag := uint64(f.raw)
	if f.raw < 0 {
		neg = true
		mag = uint64(-f.raw)
	}
	return neg, mag / fixed9Unit, mag % fixed9Unit
}

// String returns the canonical wire form with exactly nine fractional digits.
func (f Fixed9) String() string {
	neg, whole, frac := f.parts()
	if neg {
		return fmt.Sprintf("-%d.%09d", whole, frac)
	}
	return fmt.Sprintf("%d.%09d", whole, frac)
}

// Display returns a short form with trailing zeros removed, meant for logs.
func (f Fixed9) Display() string {
	neg, whole, frac := f.parts()
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatUint(whole, 10))
	if frac != 0 {
		b.WriteByte('.')
		b.WriteString(strings.TrimRight(fmt.Sprintf("%09d", frac), "0"))
	}
	return b.String()
}

// Decimal converts the value to an apd decimal without loss.
func (f Fixed9) Decimal() *apd.Decimal {
	return apd.New(f.raw, -Fixed9Scale)
}

// FromDecimal converts an apd decimal, truncating digits beyond the ninth fractional place.
func FromDecimal(d *apd.Decimal) (Fixed9, error) {
	if d == nil {
		return Fixed9{}, NewParseError("<nil>", "nil decimal")
	}
	if d.Form != apd.Finite {
		return Fixed9{}, NewParseError(d.String(), "decimal is not finite")
	}
	ctx := apd.Context{
		Precision:   40,
		MaxExponent: apd.MaxExponent,
		MinExponent: apd.MinExponent,
		Rounding:    apd.RoundDown,
	}
	var scaled apd.Decimal
	if _, err := ctx.Quantize(&scaled, d, -Fixed9Scale); err != nil {
		return Fixed9{}, NewParseError(d.String(), err.Error())
	}
	return ParseFixed9(scaled.Text('f'))
}

// MarshalJSON encodes the value as a quoted canonical string.
func (f Fixed9) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted decimal string.
func (f *Fixed9) UnmarshalJSON(data []byte) error {
	var s string
	if err := sonic.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("fixed9: expected string, got %s", string(data))
	}
	v, err := ParseFixed9(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// NullFixed9 is a Fixed9 the exchange may leave empty ("" or null).
type NullFixed9 struct {
	Value Fixed9
	Valid bool
}

// SomeFixed9 wraps a present value.
func SomeFixed9(v Fixed9) NullFixed9 {
	return NullFixed9{Value: v, Valid: true}
}

// String returns the canonical form, or "" when absent.
func (n NullFixed9) String() string {
	if !n.Valid {
		return ""
	}
	return n.Value.String()
}

// MarshalJSON encodes an absent value as null.
func (n NullFixed9) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Value.MarshalJSON()
}

// UnmarshalJSON treats both null and "" as absent.
func (n *NullFixed9) UnmarshalJSON(data []byte) error {
	if string(data) == "null" || string(data) == `""` {
		*n = NullFixed9{}
		return nil
	}
	if err := n.Value.UnmarshalJSON(data); err != nil {
		return err
	}
	n.Valid = true
	return nil
}
