package tm1637

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	rows := Render([]byte{0x7f | PointMask, 0x06})
	require.Equal(t, []string{
		"  -         ",
		" | |     |  ",
		"  -         ",
		" | |     |  ",
		"  -  .      ",
	}, rows)
}

func TestRenderEmpty(t *testing.T) {
	rows := Render(nil)
	require.Len(t, rows, 5)
	for _, r := range rows {
		require.Empty(t, r)
	}
}
