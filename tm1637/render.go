package tm1637

// Render draws segment bytes as five rows of ASCII, six columns per digit:
//
//	  -     -
//	 | |   | |
//	  -     -
//	 | |   | |
//	  -  .  -
func Render(segs []byte) []string {
	rows := make([]string, 5)
	on := func(b byte, seg uint) bool { return b&(1<<seg) != 0 }
	pick := func(cond bool, yes, no string) string {
		if cond {
			return yes
		}
		return no
	}

	for _, b := range segs {
		rows[0] += pick(on(b, SegA), "  -   ", "      ")
		rows[1] += pick(on(b, SegF), " |", "  ") + pick(on(b, SegB), " |  ", "    ")
		rows[2] += pick(on(b, SegG), "  -   ", "      ")
		rows[3] += pick(on(b, SegE), " |", "  ") + pick(on(b, SegC), " |  ", "    ")
		rows[4] += pick(on(b, SegD), "  -  ", "     ") + pick(on(b, SegDP), ".", " ")
	}
	return rows
}
