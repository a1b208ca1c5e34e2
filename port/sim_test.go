package port

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimLatchSurvivesDirection(t *testing.T) {
	s := NewSim()

	require.NoError(t, s.WriteLatch(4, High))
	require.Equal(t, Input, s.Direction(4))

	// inputs read the idle level, not the latch
	lvl, err := s.ReadPin(4)
	require.NoError(t, err)
	require.Equal(t, Low, lvl)

	require.NoError(t, s.SetDirection(4, Output))
	lvl, err = s.ReadPin(4)
	require.NoError(t, err)
	require.Equal(t, High, lvl)

	require.NoError(t, s.SetDirection(4, Input))
	require.Equal(t, High, s.Latched(4))

	s.SetIdle(4, High)
	lvl, err = s.ReadPin(4)
	require.NoError(t, err)
	require.Equal(t, High, lvl)
}

func TestSimAudit(t *testing.T) {
	s := NewSim()
	require.NoError(t, s.SetDirection(0, Output))
	require.NoError(t, s.WriteLatch(0, High))
	require.NoError(t, s.Close())

	require.Equal(t, []string{"dir 0 out", "lat 0 high", "close"}, s.Audit())

	require.Error(t, s.WriteLatch(0, Low))
	require.True(t, Error.Has(s.SetDirection(0, Input)))
	_, err := s.ReadPin(0)
	require.Error(t, err)
}

func TestOpen(t *testing.T) {
	p, err := Open("sim", false)
	require.NoError(t, err)
	require.IsType(t, &Sim{}, p)

	p, err = Open("", true)
	require.NoError(t, err)
	require.IsType(t, &Sim{}, p)

	_, err = Open("spi", false)
	require.Error(t, err)
	require.True(t, Error.Has(err))
}
