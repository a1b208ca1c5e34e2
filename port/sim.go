package port

import (
	"fmt"
	"log"
	"sync"
)

// Sim is an in-memory port. Output pins read back their latch, input pins
// read the idle level, which is Low by default so a TM1637 acknowledge
// always arrives.
type Sim struct {
	latches
	mu     sync.Mutex
	idle   map[int]Level
	trace  bool
	closed bool
	audit  []string
}

// NewSim returns a simulated port with every pin an input.
func NewSim() *Sim {
	return &Sim{latches: newLatches(), idle: make(map[int]Level)}
}

// Trace turns on logging of every pin operation.
func (s *Sim) Trace(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace = on
}

// SetIdle sets the level an input pin reads.
func (s *Sim) SetIdle(pin int, level Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idle[pin] = level
}

func (s *Sim) record(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	s.audit = append(s.audit, msg)
	if s.trace {
		log.Println(msg)
	}
}

// Audit returns every operation so far.
func (s *Sim) Audit() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.audit))
	copy(out, s.audit)
	return out
}

// Direction reports a pin's direction.
func (s *Sim) Direction(pin int) Direction {
	return s.dir(pin)
}

// Latched reports a pin's latch.
func (s *Sim) Latched(pin int) Level {
	return s.latched(pin)
}

func (s *Sim) SetDirection(pin int, dir Direction) error {
	if s.isClosed() {
		return Error.New("sim: closed")
	}
	s.setDir(pin, dir)
	s.record("dir %d %s", pin, dir)
	return nil
}

func (s *Sim) ReadPin(pin int) (Level, error) {
	if s.isClosed() {
		return Low, Error.New("sim: closed")
	}
	if s.dir(pin) == Output {
		return s.latched(pin), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idle[pin], nil
}

func (s *Sim) WriteLatch(pin int, level Level) error {
	if s.isClosed() {
		return Error.New("sim: closed")
	}
	s.setLevel(pin, level)
	s.record("lat %d %s", pin, level)
	return nil
}

func (s *Sim) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.record("close")
	return nil
}

func (s *Sim) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
