package numfmt

import (
	"sort"
	"strings"
)

// Layout maps logical digit positions (left to right as the number reads) to
// the grids the display module wires them to. Order[physical] is the logical
// digit shown on that grid.
type Layout struct {
	Name  string
	Order []int
}

// Standard4 is the common four digit module, grids 0..3 from the left.
var Standard4 = Layout{Name: "4dig1to4", Order: []int{0, 1, 2, 3}}

// Standard6 is a six digit module, grids 0..5 from the left.
var Standard6 = Layout{Name: "6dig1to6", Order: []int{0, 1, 2, 3, 4, 5}}

// Board321654 is the six digit board that wires its grids in a 2..0 5..3
// pattern. The table comes from the board's documentation and should be
// checked against the hardware in hand; NewLayout builds a corrected one.
var Board321654 = Layout{Name: "6dig321654", Order: []int{2, 1, 0, 5, 4, 3}}

var layouts = map[string]Layout{
	Standard4.Name:   Standard4,
	Standard6.Name:   Standard6,
	Board321654.Name: Board321654,
}

// NewLayout checks that order is a permutation of 0..len(order)-1.
func NewLayout(name string, order []int) (Layout, error) {
	if len(order) == 0 || len(order) > MaxDigits {
		return Layout{}, ErrInvalidParameter.New("layout %q: %d digits", name, len(order))
	}
	seen := make([]bool, len(order))
	for phys, logical := range order {
		if logical < 0 || logical >= len(order) || seen[logical] {
			return Layout{}, ErrInvalidParameter.New("layout %q: grid %d maps to digit %d", name, phys, logical)
		}
		seen[logical] = true
	}
	o := make([]int, len(order))
	copy(o, order)
	return Layout{Name: name, Order: o}, nil
}

// LayoutByName returns one of the built in layouts.
func LayoutByName(name string) (Layout, error) {
	l, ok := layouts[strings.ToLower(name)]
	if !ok {
		return Layout{}, ErrInvalidParameter.New("unknown layout %q (known: %s)", name, strings.Join(LayoutNames(), ", "))
	}
	return l, nil
}

// LayoutNames lists the built in layouts.
func LayoutNames() []string {
	names := make([]string, 0, len(layouts))
	for k := range layouts {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Digits is the display width.
func (l Layout) Digits() int {
	return len(l.Order)
}

// Arrange reorders a logical sequence into grid order. Grids with no
// matching logical digit come out blank.
func (l Layout) Arrange(s Sequence) Sequence {
	out := make(Sequence, len(l.Order))
	for phys, logical := range l.Order {
		if logical < len(s) {
			out[phys] = s[logical]
		} else {
			out[phys] = Cell{Blank: true}
		}
	}
	return out
}

// Restore undoes Arrange.
func (l Layout) Restore(s Sequence) Sequence {
	out := make(Sequence, len(l.Order))
	for i := range out {
		out[i] = Cell{Blank: true}
	}
	for phys, logical := range l.Order {
		if phys < len(s) && logical < len(out) {
			out[logical] = s[phys]
		}
	}
	return out
}
