package numfmt

import "github.com/zeebo/errs"

var (
	// ErrInvalidParameter is the class of parameter and layout errors.
	ErrInvalidParameter = errs.Class("invalid parameter")
	// ErrOverflow is returned when a value has more digits than the display.
	ErrOverflow = errs.Class("overflow")
)

// Validate checks p against a display of the given width. Format itself never
// fails; this is for callers that want bad input reported.
func Validate(p Params, digits int) error {
	switch {
	case digits < 1 || digits > MaxDigits:
		return ErrInvalidParameter.New("digit count %d out of range 1..%d", digits, MaxDigits)
	case p.Round < 0 || p.Round > digits:
		return ErrInvalidParameter.New("round %d out of range 0..%d", p.Round, digits)
	case p.RightShift < 0 || p.RightShift > digits:
		return ErrInvalidParameter.New("right shift %d out of range 0..%d", p.RightShift, digits)
	case p.DecimalPos != NoDecimal && (p.DecimalPos < 0 || p.DecimalPos >= digits):
		return ErrInvalidParameter.New("decimal position %d out of range 0..%d", p.DecimalPos, digits-1)
	}
	return nil
}

// FormatStrict is Format with validation: bad parameters and values that
// would wrap are errors.
func FormatStrict(value uint32, p Params, l Layout) (Sequence, error) {
	digits := l.Digits()
	if err := Validate(p, digits); err != nil {
		return nil, err
	}
	v := Shift(Round(uint64(value), p.Round), p.RightShift)
	if !Fits(v, digits) {
		return nil, ErrOverflow.New("%d does not fit in %d digits", v, digits)
	}
	return Format(value, p, l), nil
}
