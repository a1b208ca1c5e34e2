package port

import (
	"github.com/stianeikeland/go-rpio/v4"
)

// Rpio drives Raspberry Pi pins by BCM number through /dev/gpiomem.
type Rpio struct {
	latches
}

// OpenRpio maps the GPIO registers. Run as a user that can open /dev/gpiomem.
func OpenRpio() (*Rpio, error) {
	if err := rpio.Open(); err != nil {
		return nil, Error.New("rpio: %v", err)
	}
	return &Rpio{latches: newLatches()}, nil
}

func (r *Rpio) SetDirection(pin int, dir Direction) error {
	level := r.setDir(pin, dir)
	p := rpio.Pin(pin)
	if dir == Input {
		p.Input()
		p.PullUp()
		return nil
	}
	p.Output()
	p.Write(toState(level))
	return nil
}

func (r *Rpio) ReadPin(pin int) (Level, error) {
	return rpio.Pin(pin).Read() == rpio.High, nil
}

func (r *Rpio) WriteLatch(pin int, level Level) error {
	if r.setLevel(pin, level) {
		rpio.Pin(pin).Write(toState(level))
	}
	return nil
}

// Close unmaps the registers. Pins keep their last state.
func (r *Rpio) Close() error {
	return Error.Wrap(rpio.Close())
}

func toState(l Level) rpio.State {
	if l {
		return rpio.High
	}
	return rpio.Low
}
