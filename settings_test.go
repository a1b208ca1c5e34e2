package main

import (
	"testing"
	"time"

	"gotest.tools/assert"

	"dscheirer.com/segdemo/numfmt"
)

func TestSettingsFromFile(t *testing.T) {
	s := testSettings

	assert.Equal(t, s.GetString(sBackend), "sim")
	assert.Equal(t, s.GetString(sDisplay), displayLog)
	assert.Equal(t, s.GetInt(sClkPin), 23)
	assert.Equal(t, s.GetInt(sDioPin), 24)
	// hex strings work for bytes
	assert.Equal(t, s.GetByte(sBrightness), byte(3))
	// and strings for bools
	assert.Equal(t, s.GetBool(sDebug), false)
	assert.Equal(t, s.GetDuration(sStartupDelay), 100*time.Millisecond)
	assert.Equal(t, s.GetDuration(sBitDelay), time.Duration(0))
	assert.Equal(t, s.GetString(sHTTPUser), "tester")

	// untouched keys keep their defaults
	assert.Equal(t, s.GetString(sHTTPAddr), "")
	assert.Equal(t, s.GetInt(sLedPin), 18)

	l, err := s.layout()
	assert.NilError(t, err)
	assert.Equal(t, l.Name, numfmt.Standard4.Name)
	assert.Equal(t, len(s.demoScript()), len(defaultScript()))
}

func TestSettingsErrors(t *testing.T) {
	for _, bad := range []string{
		`{"clkPin": "twenty"}`,
		`{"brightness": 300}`,
		`{"brightness": "bright"}`,
		`{"loop": "maybe"}`,
		`{"startupDelay": "later"}`,
		`{"startupDelay": 100}`,
		`{"layoutOrder": ["a", "b"]}`,
		`{"script": [{"value": "x"}]}`,
	} {
		s := defaultSettings()
		assert.Assert(t, s.settingsFromJSON([]byte(bad)) != nil, bad)
	}

	_, err := loadSettings("./test/missing.conf")
	assert.ErrorContains(t, err, "could not load conf file")
}

func TestSettingsDefaults(t *testing.T) {
	s, err := loadSettings("")
	assert.NilError(t, err)
	assert.Equal(t, s.GetString(sDisplay), displayTM1637)
	assert.Equal(t, s.GetByte(sBrightness), byte(2))
	assert.Equal(t, s.GetDuration(sStartupDelay), 100*time.Millisecond)
	assert.Equal(t, s.GetDuration("noSuchKey"), time.Duration(-1))
	assert.Equal(t, s.GetInt(sBrightness), 2)
}

func TestSettingsLayout(t *testing.T) {
	s := defaultSettings()
	assert.NilError(t, s.settingsFromJSON([]byte(`{"layout": "6DIG321654"}`)))
	l, err := s.layout()
	assert.NilError(t, err)
	assert.DeepEqual(t, l.Order, []int{2, 1, 0, 5, 4, 3})

	// an explicit table wins
	s = defaultSettings()
	assert.NilError(t, s.settingsFromJSON([]byte(`{"layout": "6dig1to6", "layoutOrder": [1, 0, 3, 2]}`)))
	l, err = s.layout()
	assert.NilError(t, err)
	assert.Equal(t, l.Digits(), 4)

	// which must be a permutation
	s = defaultSettings()
	assert.NilError(t, s.settingsFromJSON([]byte(`{"layoutOrder": [0, 0, 1, 2]}`)))
	_, err = s.layout()
	assert.Assert(t, numfmt.ErrInvalidParameter.Has(err))

	s = defaultSettings()
	assert.NilError(t, s.settingsFromJSON([]byte(`{"layout": "8dig"}`)))
	_, err = s.layout()
	assert.Assert(t, err != nil)
}
