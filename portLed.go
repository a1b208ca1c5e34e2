package main

import (
	"dscheirer.com/segdemo/port"
)

// portLed drives LEDs as push-pull outputs on the display's port.
type portLed struct {
	port   port.Port
	logger flogger
}

func (pl *portLed) init(rt runtimeConfig) error {
	pl.port = rt.port
	pl.logger = &ThreadLogger{name: "LEDs"}
	return nil
}

func (pl *portLed) set(pinNum int, on bool) {
	level := port.Low
	if on {
		level = port.High
	}
	// latch first so the pin never glitches to the old level
	if err := pl.port.WriteLatch(pinNum, level); err != nil {
		pl.logger.Printf("LED %d: %v", pinNum, err)
		return
	}
	if err := pl.port.SetDirection(pinNum, port.Output); err != nil {
		pl.logger.Printf("LED %d: %v", pinNum, err)
	}
}

func (pl *portLed) on(pin int) {
	pl.set(pin, true)
}

func (pl *portLed) off(pin int) {
	pl.set(pin, false)
}
