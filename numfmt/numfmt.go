// Package numfmt turns an unsigned magnitude into the per-digit cells of a
// fixed width seven-segment display.
//
// The steps run in a fixed order: round, right shift, truncate to the
// display width, split into digits, mark the decimal point, blank leading
// zeros. Out of range parameters degrade quietly (the point is dropped, the
// value wraps to its low-order digits). Callers that would rather get an
// error use FormatStrict.
package numfmt

import (
	"math"
	"strings"
)

// NoDecimal disables the decimal point. Any position outside the display
// does the same.
const NoDecimal = -1

// MaxDigits is the widest display a Sequence can describe.
const MaxDigits = 10

// pow10 covers every exponent a uint64 can hold.
var pow10 = [...]uint64{
	1,
	10,
	100,
	1000,
	10000,
	100000,
	1000000,
	10000000,
	100000000,
	1000000000,
	10000000000,
	100000000000,
	1000000000000,
	10000000000000,
	100000000000000,
	1000000000000000,
	10000000000000000,
	100000000000000000,
	1000000000000000000,
	10000000000000000000,
}

// Params is one display update's formatting. Its zero value shows the plain
// number with leading zeros, so most callers set DecimalPos to NoDecimal.
type Params struct {
	// DecimalPos is the digit, counted from the left starting at 0, that
	// carries the decimal point.
	DecimalPos int
	// Round is how many digits, from the right, get rounded half up and then
	// zeroed.
	Round int
	// BlankLeadingZeros turns zeros ahead of the first significant digit off.
	BlankLeadingZeros bool
	// RightShift drops that many digits from the right after rounding.
	RightShift int
}

// Plain is the parameter set the demo starts from.
var Plain = Params{DecimalPos: NoDecimal}

// Cell is one digit position as the display driver sees it.
type Cell struct {
	Digit uint8
	Blank bool
	Point bool
}

// Rune is the character the cell shows, without its point.
func (c Cell) Rune() rune {
	if c.Blank {
		return ' '
	}
	return rune('0' + c.Digit)
}

// Sequence is a full display's worth of cells.
type Sequence []Cell

// String renders the cells in slice order, a point following the digit that
// carries it: " 10.5", "99.99".
func (s Sequence) String() string {
	var b strings.Builder
	for _, c := range s {
		b.WriteRune(c.Rune())
		if c.Point {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Round rounds v half up at the n-th digit from the right and zeroes the
// digits below it. The carry reaches the higher digits: 1046 rounded at 1
// digit is 1050.
func Round(v uint64, n int) uint64 {
	if n <= 0 {
		return v
	}
	if n >= len(pow10) {
		// half of 10^20 is already past what a uint64 holds
		return 0
	}
	p := pow10[n]
	q := v / p
	if v%p >= p/2 {
		q++
	}
	if q > math.MaxUint64/p {
		// carry past what a uint64 holds, only the zeroed digits are left
		return 0
	}
	return q * p
}

// Shift drops the n least significant digits of v.
func Shift(v uint64, n int) uint64 {
	if n <= 0 {
		return v
	}
	if n >= len(pow10) {
		return 0
	}
	return v / pow10[n]
}

// Truncate keeps the low-order digits of v that fit on the display.
func Truncate(v uint64, digits int) uint64 {
	if digits <= 0 {
		return 0
	}
	if digits >= len(pow10) {
		return v
	}
	return v % pow10[digits]
}

// Fits reports whether v shows on a display of the given width without
// losing digits.
func Fits(v uint64, digits int) bool {
	return Truncate(v, digits) == v
}

// FormatLogical formats value into digits cells, most significant first.
func FormatLogical(value uint32, p Params, digits int) Sequence {
	if digits <= 0 {
		return Sequence{}
	}
	if digits > MaxDigits {
		digits = MaxDigits
	}

	v := Round(uint64(value), p.Round)
	v = Shift(v, p.RightShift)
	v = Truncate(v, digits)

	seq := make(Sequence, digits)
	for i := digits - 1; i >= 0; i-- {
		seq[i].Digit = uint8(v % 10)
		v /= 10
	}

	if p.DecimalPos >= 0 && p.DecimalPos < digits {
		seq[p.DecimalPos].Point = true
	}

	if p.BlankLeadingZeros {
		// the units digit always shows, so zero reads as "0" and not nothing
		for i := 0; i < digits-1; i++ {
			if seq[i].Digit != 0 || seq[i].Point {
				break
			}
			seq[i].Blank = true
		}
	}

	return seq
}

// Format formats value for the display described by l and returns the cells
// in the order the display's grids are wired.
func Format(value uint32, p Params, l Layout) Sequence {
	return l.Arrange(FormatLogical(value, p, l.Digits()))
}

// FixedPoint scales a reading by 10^places to the integer the display
// expects, rounding to nearest. Negative readings clamp to zero.
func FixedPoint(f float64, places int) uint32 {
	if places < 0 {
		places = 0
	}
	v := math.Round(f * math.Pow10(places))
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(v)
}
