package numfmt

import (
	"fmt"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

func digitsOf(s Sequence) []uint8 {
	ds := make([]uint8, len(s))
	for i, c := range s {
		ds[i] = c.Digit
	}
	return ds
}

func pointsOf(s Sequence) []int {
	ps := []int{}
	for i, c := range s {
		if c.Point {
			ps = append(ps, i)
		}
	}
	return ps
}

func TestFormatLogical(t *testing.T) {
	type TC struct {
		name   string
		value  uint32
		params Params
		digits int
		text   string
	}

	tcs := []TC{
		{name: "integer", value: 1234, params: Plain, digits: 4, text: "1234"},
		{name: "leading zeros shown", value: 1, params: Plain, digits: 4, text: "0001"},
		{
			name:   "leading zeros blanked",
			value:  1,
			params: Params{DecimalPos: NoDecimal, BlankLeadingZeros: true},
			digits: 4,
			text:   "   1",
		},
		{
			name:   "two places",
			value:  9999,
			params: Params{DecimalPos: 1, BlankLeadingZeros: true},
			digits: 4,
			text:   "99.99",
		},
		{
			name:   "rounding carries",
			value:  1046,
			params: Params{DecimalPos: 1, Round: 1, BlankLeadingZeros: true},
			digits: 4,
			text:   "10.50",
		},
		{
			name:   "rounding then shift",
			value:  1046,
			params: Params{DecimalPos: 2, Round: 1, BlankLeadingZeros: true, RightShift: 1},
			digits: 4,
			text:   " 10.5",
		},
		{
			name:   "round two digits",
			value:  1046,
			params: Params{DecimalPos: NoDecimal, Round: 2},
			digits: 4,
			text:   "1000",
		},
		{
			name:   "round down",
			value:  1044,
			params: Params{DecimalPos: NoDecimal, Round: 1},
			digits: 4,
			text:   "1040",
		},
		{
			name:   "round half up",
			value:  1045,
			params: Params{DecimalPos: NoDecimal, Round: 1},
			digits: 4,
			text:   "1050",
		},
		{
			name:   "blanking stops at the point",
			value:  5,
			params: Params{DecimalPos: 2, BlankLeadingZeros: true},
			digits: 4,
			text:   "  0.5",
		},
		{
			name:   "zero keeps the units digit",
			value:  0,
			params: Params{DecimalPos: NoDecimal, BlankLeadingZeros: true},
			digits: 4,
			text:   "   0",
		},
		{
			name:   "inner zeros stay",
			value:  1001,
			params: Params{DecimalPos: NoDecimal, BlankLeadingZeros: true},
			digits: 4,
			text:   "1001",
		},
		{
			name:   "point off the display",
			value:  1234,
			params: Params{DecimalPos: 99},
			digits: 4,
			text:   "1234",
		},
		{
			name:   "point at the display width",
			value:  1234,
			params: Params{DecimalPos: 4},
			digits: 4,
			text:   "1234",
		},
		{
			name:   "point on the last digit",
			value:  1234,
			params: Params{DecimalPos: 3},
			digits: 4,
			text:   "1234.",
		},
		{name: "overflow wraps", value: 12345, params: Plain, digits: 4, text: "2345"},
		{
			name:   "overflow to zero blanked",
			value:  10000,
			params: Params{DecimalPos: NoDecimal, BlankLeadingZeros: true},
			digits: 4,
			text:   "   0",
		},
		{
			name:   "rounding carry overflows",
			value:  9996,
			params: Params{DecimalPos: NoDecimal, Round: 1},
			digits: 4,
			text:   "0000",
		},
		{
			name:   "round more digits than shown",
			value:  9999,
			params: Params{DecimalPos: NoDecimal, Round: 6},
			digits: 4,
			text:   "0000",
		},
		{
			name:   "shift everything out",
			value:  9999,
			params: Params{DecimalPos: NoDecimal, RightShift: 4},
			digits: 4,
			text:   "0000",
		},
		{name: "six digits", value: 123456, params: Plain, digits: 6, text: "123456"},
		{
			name:   "six digits blanked with point",
			value:  2150,
			params: Params{DecimalPos: 3, BlankLeadingZeros: true, Round: 1},
			digits: 6,
			text:   "  21.50",
		},
		{name: "max uint32", value: 4294967295, params: Plain, digits: 10, text: "4294967295"},
		{name: "no digits", value: 1, params: Plain, digits: 0, text: ""},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			seq := FormatLogical(tc.value, tc.params, tc.digits)
			require.Len(t, seq, tc.digits)
			require.Equal(t, tc.text, seq.String(), spew.Sdump(seq))
		})
	}
}

func TestFormatRoundingCells(t *testing.T) {
	seq := FormatLogical(1046, Params{DecimalPos: 1, Round: 1}, 4)
	require.Equal(t, []uint8{1, 0, 5, 0}, digitsOf(seq))
	require.Equal(t, []int{1}, pointsOf(seq))

	seq = FormatLogical(1046, Params{DecimalPos: 2, Round: 1, RightShift: 1, BlankLeadingZeros: true}, 4)
	require.Equal(t, []uint8{0, 1, 0, 5}, digitsOf(seq))
	require.Equal(t, []int{2}, pointsOf(seq))
	require.True(t, seq[0].Blank)
	require.False(t, seq[1].Blank)
}

func TestFormatDecomposition(t *testing.T) {
	for v := uint32(0); v < 10000; v += 37 {
		seq := FormatLogical(v, Plain, 4)
		require.Equal(t, []uint8{
			uint8(v / 1000),
			uint8(v / 100 % 10),
			uint8(v / 10 % 10),
			uint8(v % 10),
		}, digitsOf(seq), "value %d", v)
		require.Empty(t, pointsOf(seq))
		for _, c := range seq {
			require.False(t, c.Blank)
		}
	}
}

func TestFormatBlanking(t *testing.T) {
	shown := FormatLogical(1, Plain, 4)
	require.Equal(t, []uint8{0, 0, 0, 1}, digitsOf(shown))
	for _, c := range shown {
		require.False(t, c.Blank)
	}

	blanked := FormatLogical(1, Params{DecimalPos: NoDecimal, BlankLeadingZeros: true}, 4)
	require.Equal(t, Sequence{
		{Blank: true},
		{Blank: true},
		{Blank: true},
		{Digit: 1},
	}, blanked)
}

func TestFormatIdempotent(t *testing.T) {
	p := Params{DecimalPos: 2, Round: 1, BlankLeadingZeros: true, RightShift: 1}
	first := Format(1046, p, Standard4)
	second := Format(1046, p, Standard4)
	require.Equal(t, first, second)

	// the result is not shared between calls
	first[0].Digit = 7
	require.NotEqual(t, first, Format(1046, p, Standard4))
}

func TestFormatOverflowIsModulo(t *testing.T) {
	for _, v := range []uint32{10000, 12345, 99999, 4294967295} {
		seq := FormatLogical(v, Plain, 4)
		want := FormatLogical(v%10000, Plain, 4)
		require.Equal(t, want, seq, "value %d", v)
	}
}

func TestRoundShiftTruncate(t *testing.T) {
	type TC struct {
		name string
		got  uint64
		want uint64
	}

	tcs := []TC{
		{name: "round 0", got: Round(1046, 0), want: 1046},
		{name: "round 1", got: Round(1046, 1), want: 1050},
		{name: "round 2", got: Round(1046, 2), want: 1000},
		{name: "round 3", got: Round(1546, 3), want: 2000},
		{name: "round carry", got: Round(999, 1), want: 1000},
		{name: "round past the value", got: Round(4, 3), want: 0},
		{name: "round 19 carries", got: Round(1<<63, 19), want: 10000000000000000000},
		{name: "round 20", got: Round(1<<63, 20), want: 0},
		{name: "round max at 20", got: Round(math.MaxUint64, 20), want: 0},
		{name: "round huge", got: Round(1<<63, 40), want: 0},
		{name: "shift 0", got: Shift(1050, 0), want: 1050},
		{name: "shift 1", got: Shift(1050, 1), want: 105},
		{name: "shift huge", got: Shift(1050, 30), want: 0},
		{name: "truncate", got: Truncate(12345, 4), want: 2345},
		{name: "truncate none", got: Truncate(12345, 0), want: 0},
		{name: "truncate wide", got: Truncate(12345, 25), want: 12345},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			require.Equal(t, tc.want, tc.got)
		})
	}
}

func TestFixedPoint(t *testing.T) {
	require.Equal(t, uint32(9999), FixedPoint(99.99, 2))
	require.Equal(t, uint32(1046), FixedPoint(10.46, 2))
	require.Equal(t, uint32(21), FixedPoint(21, 0))
	require.Equal(t, uint32(0), FixedPoint(-3.5, 1))
	require.Equal(t, uint32(4294967295), FixedPoint(1e12, 2))
}
