package port

import (
	"fmt"
	"sync"

	"github.com/zeebo/errs"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Periph drives pins through periph.io, which covers boards beyond the
// Raspberry Pi. Pin n is looked up as "GPIO<n>".
type Periph struct {
	latches
	mu   sync.Mutex
	pins map[int]gpio.PinIO
}

// OpenPeriph loads the periph host drivers.
func OpenPeriph() (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, Error.New("periph: %v", err)
	}
	return &Periph{latches: newLatches(), pins: make(map[int]gpio.PinIO)}, nil
}

func (p *Periph) pin(n int) (gpio.PinIO, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pin, ok := p.pins[n]; ok {
		return pin, nil
	}
	name := fmt.Sprintf("GPIO%d", n)
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, Error.New("periph: no pin %s", name)
	}
	p.pins[n] = pin
	return pin, nil
}

func (p *Periph) SetDirection(n int, dir Direction) error {
	pin, err := p.pin(n)
	if err != nil {
		return err
	}
	level := p.setDir(n, dir)
	if dir == Input {
		return Error.Wrap(pin.In(gpio.PullUp, gpio.NoEdge))
	}
	return Error.Wrap(pin.Out(gpio.Level(level)))
}

func (p *Periph) ReadPin(n int) (Level, error) {
	pin, err := p.pin(n)
	if err != nil {
		return Low, err
	}
	return Level(pin.Read()), nil
}

func (p *Periph) WriteLatch(n int, level Level) error {
	pin, err := p.pin(n)
	if err != nil {
		return err
	}
	if p.setLevel(n, level) {
		return Error.Wrap(pin.Out(gpio.Level(level)))
	}
	return nil
}

// Close releases the pins back to inputs.
func (p *Periph) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var group errs.Group
	for _, pin := range p.pins {
		group.Add(pin.In(gpio.PullNoChange, gpio.NoEdge))
	}
	return Error.Wrap(group.Err())
}
