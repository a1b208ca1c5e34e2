package main

import (
	"fmt"
	"sync"
)

// logLed keeps LED state in memory for sim runs and tests.
type logLed struct {
	mu         sync.Mutex
	leds       []bool
	audit      []string
	disableLog bool
	logger     flogger
}

func (ll *logLed) init(rt runtimeConfig) error {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.leds = make([]bool, 64)
	ll.audit = make([]string, 0)
	ll.logger = &ThreadLogger{name: "LEDs"}
	return nil
}

func (ll *logLed) set(pinNum int, on bool) {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.leds[pinNum] = on
	if !ll.disableLog {
		ll.logger.Printf("Set LED %v to %v", pinNum, on)
	}
	ll.audit = append(ll.audit, fmt.Sprintf("Set LED %v to %v", pinNum, on))
}

func (ll *logLed) on(pinNum int) {
	ll.set(pinNum, true)
}

func (ll *logLed) off(pinNum int) {
	ll.set(pinNum, false)
}

func (ll *logLed) isOn(pinNum int) bool {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return ll.leds[pinNum]
}

func (ll *logLed) auditLen() int {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return len(ll.audit)
}

func (ll *logLed) quiet(on bool) {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.disableLog = on
}
