// Package port is the GPIO capability the display driver talks through:
// pin direction, pin reads and output latches, the way a microcontroller
// exposes its TRIS, PORT and LAT registers.
package port

import (
	"strings"
	"sync"

	"github.com/zeebo/errs"
)

// Error is the class of port errors.
var Error = errs.Class("port")

// Level is a pin level.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// Direction is a pin's data direction.
type Direction uint8

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "out"
	}
	return "in"
}

// Port is a set of GPIO pins addressed by number. A latched level survives
// direction changes and is driven again when the pin goes back to output.
type Port interface {
	SetDirection(pin int, dir Direction) error
	ReadPin(pin int) (Level, error)
	WriteLatch(pin int, level Level) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSim    = "sim"
	BackendRpio   = "rpio"
	BackendPeriph = "periph"
)

// Open opens the named backend. trace logs every pin operation on the
// simulated port.
func Open(backend string, trace bool) (Port, error) {
	switch strings.ToLower(backend) {
	case BackendSim, "":
		s := NewSim()
		s.Trace(trace)
		return s, nil
	case BackendRpio:
		return OpenRpio()
	case BackendPeriph:
		return OpenPeriph()
	default:
		return nil, Error.New("unknown backend %q", backend)
	}
}

// latches keeps the direction and latch state every backend needs.
type latches struct {
	mu    sync.Mutex
	dirs  map[int]Direction
	level map[int]Level
}

func newLatches() latches {
	return latches{dirs: make(map[int]Direction), level: make(map[int]Level)}
}

// setDir records dir and reports the latched level to drive if the pin is
// now an output.
func (l *latches) setDir(pin int, dir Direction) Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dirs[pin] = dir
	return l.level[pin]
}

// setLevel latches level and reports whether the pin is an output.
func (l *latches) setLevel(pin int, level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level[pin] = level
	return l.dirs[pin] == Output
}

func (l *latches) dir(pin int) Direction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirs[pin]
}

func (l *latches) latched(pin int) Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level[pin]
}
