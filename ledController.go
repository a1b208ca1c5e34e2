package main

import (
	"time"
)

const (
	modeOff = iota
	modeOn
	modeBlink10 // 10% off/sec
	modeBlink25 // 25% off/sec
	modeBlink50 // 50% cycle/sec
	modeBlink75 // 75% off/sec
	modeBlink90 // 90% off/sec
	modeUnset   // undetermined state
)

type ledEffect struct {
	pin        int
	mode       int
	duration   time.Duration
	force      bool      // ignore current state, just do it
	curMode    int       // rt setting, on or off
	lastUpdate time.Time // rt setting, last time we changed the state
	startTime  time.Time // rt setting, when we initiated
}

// dLEDSleep is the controller's resolution.
const dLEDSleep = 10 * time.Millisecond

func ledMessage(pin int, mode int, duration time.Duration) ledEffect {
	return ledEffect{pin: pin, mode: mode, duration: duration, startTime: time.Time{}, force: false}
}

func ledMessageForce(pin int, mode int, duration time.Duration) ledEffect {
	return ledEffect{pin: pin, mode: mode, duration: duration, startTime: time.Time{}, force: true}
}

func ledOn(pin int) ledEffect {
	return ledMessage(pin, modeOn, 0)
}

func ledOff(pin int) ledEffect {
	return ledMessage(pin, modeOff, 0)
}

func diffLEDEffect(effect1 ledEffect, effect2 ledEffect) bool {
	return effect1.mode != effect2.mode || (effect1.duration != effect2.duration && effect1.duration > 0 && effect2.duration > 0) ||
		effect1.pin != effect2.pin || (effect1.startTime != effect2.startTime && effect1.duration > 0 && effect2.duration > 0)
}

func setLEDEffect(effect ledEffect) ledEffect {
	// clear the rt info
	effect.curMode = modeUnset
	effect.lastUpdate = time.Time{}
	effect.force = false // this is not part of the rt, just an indicator in the message
	return effect
}

func runLEDController(rt runtimeConfig) {
	defer wg.Done()
	logger := &ThreadLogger{name: "LEDs"}
	defer func() {
		logger.Println("Exiting runLEDController")
	}()

	comms := rt.comms
	leds := make(map[int]ledEffect)

	for {
		// read all incoming messages at once
		keepReading := true
		for keepReading {
			select {
			case <-comms.quit:
				logger.Println("Got a quit signal in runLEDController")
				// leave the status LED dark
				for pin, v := range leds {
					if v.curMode == modeOn {
						rt.led.off(pin)
					}
				}
				return
			case msg := <-comms.leds:
				// find in leds, determine if we need to change the state
				if val, ok := leds[msg.pin]; ok {
					// if the state is changed, set the new effect state
					if msg.force || diffLEDEffect(val, msg) {
						logger.Printf("Received led message: %v", msg)
						leds[msg.pin] = setLEDEffect(msg)
					}
				} else {
					// it's new, add to the leds map?
					// if it's "turn off" assume that we already did that unless it's "force"
					if msg.mode != modeOff || msg.force {
						logger.Printf("Received led message: %v", msg)
						leds[msg.pin] = setLEDEffect(msg)
					}
				}
			default:
				keepReading = false
			}
		}
		now := rt.clock.Now()
		for pin, v := range leds {
			leds[pin] = stepLED(rt, v, now)
		}

		rt.clock.Sleep(dLEDSleep)
	}
}

// onTime is how long each mode keeps the LED lit per second.
var onTime = map[int]time.Duration{
	modeOn:      time.Second,
	modeBlink10: 900 * time.Millisecond,
	modeBlink25: 750 * time.Millisecond,
	modeBlink50: 500 * time.Millisecond,
	modeBlink75: 250 * time.Millisecond,
	modeBlink90: 100 * time.Millisecond,
}

// stepLED starts, toggles or expires one LED effect.
func stepLED(rt runtimeConfig, v ledEffect, now time.Time) ledEffect {
	// negative duration is "ignore"
	if v.duration < 0 {
		return v
	}

	if v.curMode == modeUnset {
		if v.mode == modeOff {
			rt.led.off(v.pin)
			v.curMode = modeOff
			// plain off never needs another look
			v.duration = -1
		} else {
			rt.led.on(v.pin)
			v.curMode = modeOn
		}
		v.lastUpdate = now
		v.startTime = now
		return v
	}

	// duration expired means turn it off
	if v.duration > 0 && now.Sub(v.startTime) >= v.duration {
		if v.curMode != modeOff {
			rt.led.off(v.pin)
		}
		v.duration = -1
		v.curMode = modeOff
		v.lastUpdate = time.Time{}
		v.startTime = time.Time{}
		return v
	}

	up, ok := onTime[v.mode]
	if !ok {
		return v
	}
	down := time.Second - up
	timeInState := now.Sub(v.lastUpdate)

	switch {
	case v.curMode == modeOff && timeInState >= down:
		rt.led.on(v.pin)
		v.curMode = modeOn
		v.lastUpdate = now
	case v.curMode == modeOn && up < time.Second && timeInState >= up:
		rt.led.off(v.pin)
		v.curMode = modeOff
		v.lastUpdate = now
	}
	return v
}
