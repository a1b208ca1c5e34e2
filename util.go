// utility functions
package main

import (
	"sync"

	"github.com/jonboulle/clockwork"

	"dscheirer.com/segdemo/numfmt"
	"dscheirer.com/segdemo/port"
)

var wg sync.WaitGroup

type commChannels struct {
	quit     chan struct{}
	quitOnce *sync.Once
	leds     chan ledEffect
}

type runtimeConfig struct {
	settings configSettings
	clock    clockwork.Clock
	comms    commChannels
	layout   numfmt.Layout
	port     port.Port
	display  display
	led      led
	service  configService
	logger   flogger
}

func initCommChannels() commChannels {
	return commChannels{
		quit:     make(chan struct{}),
		quitOnce: &sync.Once{},
		leds:     make(chan ledEffect, 8),
	}
}

func initRuntime(settings configSettings, clock clockwork.Clock) (runtimeConfig, error) {
	layout, err := settings.layout()
	if err != nil {
		return runtimeConfig{}, err
	}
	return runtimeConfig{
		settings: settings,
		clock:    clock,
		comms:    initCommChannels(),
		layout:   layout,
		service:  &httpConfigService{},
		logger:   &ThreadLogger{name: "Main"},
	}, nil
}

// sendLED queues an LED change. A full queue drops the message, the
// controller only cares about the latest state anyway.
func sendLED(rt runtimeConfig, msg ledEffect) {
	select {
	case rt.comms.leds <- msg:
	default:
		rt.logger.Printf("LED queue full, dropped %v", msg)
	}
}

func startDemo(rt runtimeConfig, steps []demoStep) {
	wg.Add(1)
	go runDemo(rt, steps)
}

func startLEDController(rt runtimeConfig) {
	wg.Add(1)
	go runLEDController(rt)
}

func startConfigService(rt runtimeConfig) {
	wg.Add(1)
	go runConfigService(rt)
}

// quit tells every goroutine to finish. Any number of callers may race to
// it, the channel closes once.
func quit(rt runtimeConfig) {
	rt.comms.quitOnce.Do(func() {
		close(rt.comms.quit)
	})
}
