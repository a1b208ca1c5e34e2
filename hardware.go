package main

import (
	"fmt"

	"github.com/zeebo/errs"

	"dscheirer.com/segdemo/port"
)

// initializeHardware waits out the module's power-up time and opens the port.
// CLK and DIO start released, the status LED starts as a low output.
func initializeHardware(rt *runtimeConfig) error {
	rt.clock.Sleep(rt.settings.GetDuration(sStartupDelay))

	p, err := port.Open(rt.settings.GetString(sBackend), rt.settings.GetBool(sTrace))
	if err != nil {
		return fmt.Errorf("open port: %w", err)
	}

	clk := rt.settings.GetInt(sClkPin)
	dio := rt.settings.GetInt(sDioPin)
	ledPin := rt.settings.GetInt(sLedPin)

	var group errs.Group
	group.Add(
		p.SetDirection(clk, port.Input),
		p.SetDirection(dio, port.Input),
		p.WriteLatch(ledPin, port.Low),
		p.SetDirection(ledPin, port.Output),
	)
	if err := group.Err(); err != nil {
		p.Close()
		return fmt.Errorf("initialize pins: %w", err)
	}

	rt.port = p
	return nil
}

// newDisplay picks the display backend named by the display setting.
func newDisplay(name string) (display, error) {
	switch name {
	case displayTM1637, "":
		return &tmDisplay{}, nil
	case displayLog:
		return &logDisplay{}, nil
	case displayTerm:
		return &termDisplay{}, nil
	default:
		return nil, fmt.Errorf("unknown display %q", name)
	}
}

// openDevices brings up the port, the display and the LEDs.
func openDevices(rt *runtimeConfig) error {
	if err := initializeHardware(rt); err != nil {
		return err
	}

	d, err := newDisplay(rt.settings.GetString(sDisplay))
	if err != nil {
		return err
	}
	if err := d.OpenDisplay(*rt); err != nil {
		return err
	}
	rt.display = d

	rt.led = &portLed{}
	return rt.led.init(*rt)
}

// closeDevices undoes openDevices, whatever part of it happened.
func closeDevices(rt runtimeConfig) error {
	var group errs.Group
	if rt.display != nil {
		group.Add(rt.display.Close())
	}
	if rt.port != nil {
		group.Add(rt.port.Close())
	}
	return group.Err()
}
