package main

import (
	"fmt"
	"math"
	"time"

	"github.com/buger/jsonparser"

	"dscheirer.com/segdemo/numfmt"
)

// demoStep is one update of the display and how long it stays up.
type demoStep struct {
	value  uint32
	params numfmt.Params
	hold   time.Duration
}

const dDefaultHold = time.Second

// defaultScript walks through what the formatter can do. The parameters carry
// over from one step to the next.
func defaultScript() []demoStep {
	p := numfmt.Plain
	var steps []demoStep
	add := func(v uint32, hold time.Duration) {
		steps = append(steps, demoStep{value: v, params: p, hold: hold})
	}

	// a plain 4 digit integer
	add(1234, time.Second)
	// 1 with its leading zeros
	add(1, time.Second)
	// and without
	p.BlankLeadingZeros = true
	add(1, time.Second)
	// two decimal places, the point is after digit 1
	p.DecimalPos = 1
	add(numfmt.FixedPoint(99.99, 2), time.Second)
	// 10.46 rounded at one digit shows 10.50
	p.Round = 1
	add(numfmt.FixedPoint(10.46, 2), 2*time.Second)
	// drop the trailing zero, move the point, 10.5 right justified
	p.RightShift = 1
	p.DecimalPos = 2
	add(numfmt.FixedPoint(10.46, 2), 2*time.Second)

	return steps
}

// parseScript reads the "script" array. Each entry is an object:
//
//	{"value": 10.46, "places": 2, "decimal": 1, "round": 1, "blank": true, "shift": 0, "hold": "2s"}
//
// Only value is required. Anything left out keeps its value from the step
// before.
func parseScript(data []byte) ([]demoStep, error) {
	var steps []demoStep
	var perr error
	p := numfmt.Plain
	places := 0

	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if perr != nil {
			return
		}
		if dataType != jsonparser.Object {
			perr = fmt.Errorf("step %d is not an object", len(steps))
			return
		}
		step, err := parseStep(value, &p, &places)
		if err != nil {
			perr = fmt.Errorf("step %d: %w", len(steps), err)
			return
		}
		steps = append(steps, step)
	}, sScript)

	if err == jsonparser.KeyPathNotFoundError {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sScript, err)
	}
	if perr != nil {
		return nil, fmt.Errorf("%s: %w", sScript, perr)
	}
	return steps, nil
}

func parseStep(data []byte, p *numfmt.Params, places *int) (demoStep, error) {
	getInt := func(key string, dst *int) error {
		v, err := jsonparser.GetInt(data, key)
		if err == jsonparser.KeyPathNotFoundError {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = int(v)
		return nil
	}

	for key, dst := range map[string]*int{
		"places":  places,
		"decimal": &p.DecimalPos,
		"round":   &p.Round,
		"shift":   &p.RightShift,
	} {
		if err := getInt(key, dst); err != nil {
			return demoStep{}, err
		}
	}

	blank, err := jsonparser.GetBoolean(data, "blank")
	switch {
	case err == nil:
		p.BlankLeadingZeros = blank
	case err != jsonparser.KeyPathNotFoundError:
		return demoStep{}, fmt.Errorf("blank: %w", err)
	}

	f, err := jsonparser.GetFloat(data, "value")
	if err != nil {
		return demoStep{}, fmt.Errorf("value: %w", err)
	}
	if f < 0 || math.Round(f*math.Pow10(*places)) > math.MaxUint32 {
		return demoStep{}, fmt.Errorf("value %v out of range", f)
	}

	hold := dDefaultHold
	h, err := jsonparser.GetString(data, "hold")
	switch {
	case err == nil:
		if hold, err = time.ParseDuration(h); err != nil {
			return demoStep{}, fmt.Errorf("hold: %w", err)
		}
	case err != jsonparser.KeyPathNotFoundError:
		return demoStep{}, fmt.Errorf("hold: %w", err)
	}

	return demoStep{value: numfmt.FixedPoint(f, *places), params: *p, hold: hold}, nil
}

// showValue formats value for the configured layout and puts it on the
// display.
func showValue(rt runtimeConfig, value uint32, p numfmt.Params) error {
	seq := numfmt.Format(value, p, rt.layout)
	return rt.display.Show(seq)
}

// runDemo plays the script on the display, then holds the last frame until
// quit. With the loop setting it starts over instead.
func runDemo(rt runtimeConfig, steps []demoStep) {
	defer wg.Done()
	logger := &ThreadLogger{name: "Demo"}
	defer func() {
		logger.Println("Exiting runDemo")
	}()

	ledPin := rt.settings.GetInt(sLedPin)
	loop := rt.settings.GetBool(sLoop)
	for {
		sendLED(rt, ledMessageForce(ledPin, modeBlink50, 0))

		for i, step := range steps {
			if err := showValue(rt, step.value, step.params); err != nil {
				logger.Printf("step %d (%d): %v", i, step.value, err)
				sendLED(rt, ledMessageForce(ledPin, modeBlink90, 0))
			}

			select {
			case <-rt.comms.quit:
				logger.Println("quit during the script")
				return
			case <-rt.clock.After(step.hold):
			}
		}

		if !loop || len(steps) == 0 {
			break
		}
	}

	// halted, the last frame stays up
	sendLED(rt, ledMessageForce(ledPin, modeOn, 0))
	logger.Printf("script done, showing %q", rt.display.Text())
	<-rt.comms.quit
}
