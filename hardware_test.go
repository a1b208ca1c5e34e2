package main

import (
	"fmt"
	"testing"
	"time"

	"gotest.tools/assert"

	"dscheirer.com/segdemo/port"
)

func TestInitializeHardware(t *testing.T) {
	rt, clock, _ := testRuntime()
	rt.port = nil

	errc := make(chan error, 1)
	go func() {
		errc <- initializeHardware(&rt)
	}()

	// nothing happens until the power-up delay is over
	clock.BlockUntil(1)
	clock.Advance(100 * time.Millisecond)
	assert.NilError(t, <-errc)

	sim, ok := rt.port.(*port.Sim)
	assert.Assert(t, ok, "sim backend expected, got %T", rt.port)
	assert.DeepEqual(t, sim.Audit(), []string{
		"dir 23 in",
		"dir 24 in",
		"lat 18 low",
		"dir 18 out",
	})
	assert.Equal(t, sim.Direction(18), port.Output)
	assert.Equal(t, sim.Latched(18), port.Low)
}

func TestInitializeHardwareBadBackend(t *testing.T) {
	settings := testSettingsFrom(t, cfgTestFile)
	settings.Set(sBackend, "spi")
	settings.Set(sStartupDelay, time.Duration(0))

	rt := initTestRuntime(settings)
	rt.port = nil
	err := initializeHardware(&rt)
	assert.ErrorContains(t, err, "unknown backend")
	assert.Assert(t, rt.port == nil)
}

func TestNewDisplay(t *testing.T) {
	for name, want := range map[string]display{
		"":            &tmDisplay{},
		displayTM1637: &tmDisplay{},
		displayLog:    &logDisplay{},
		displayTerm:   &termDisplay{},
	} {
		d, err := newDisplay(name)
		assert.NilError(t, err)
		assert.Equal(t, fmt.Sprintf("%T", d), fmt.Sprintf("%T", want), name)
	}

	_, err := newDisplay("lcd")
	assert.ErrorContains(t, err, "unknown display")
}

func TestPortLed(t *testing.T) {
	rt, _, _ := testRuntime()
	sim := rt.port.(*port.Sim)

	pl := &portLed{}
	assert.NilError(t, pl.init(rt))
	pl.on(18)
	assert.Equal(t, sim.Direction(18), port.Output)
	assert.Equal(t, sim.Latched(18), port.High)
	pl.off(18)
	assert.Equal(t, sim.Latched(18), port.Low)

	// errors are logged, not fatal
	sim.Close()
	pl.on(18)
	assert.Equal(t, sim.Latched(18), port.Low)
}

func TestCloseDevices(t *testing.T) {
	rt, _, _ := testRuntime()
	sim := rt.port.(*port.Sim)
	assert.NilError(t, closeDevices(rt))
	assert.DeepEqual(t, sim.Audit(), []string{"close"})

	// nothing opened yet
	assert.NilError(t, closeDevices(runtimeConfig{}))
}
