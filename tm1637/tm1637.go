// Package tm1637 drives a TM1637 seven-segment controller over two port
// pins, CLK and DIO.
//
// The lines are driven open drain: a latch of low is written once, and a
// line goes high by turning its pin into an input so the module's pull-ups
// take over. Bytes go out LSB first and the controller acknowledges each one
// by pulling DIO low on the ninth clock.
package tm1637

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/zeebo/errs"

	"dscheirer.com/segdemo/numfmt"
	"dscheirer.com/segdemo/port"
)

// controller commands
const (
	cmdDataAutoAddr byte = 0x40 // write display registers, auto-increment address
	cmdDisplayCtrl  byte = 0x80 // display control, brightness in the low 3 bits
	displayOnBit    byte = 0x08
	cmdAddrBase     byte = 0xC0 // address of grid 0
)

const (
	MaxBrightness     byte = 7
	DefaultBrightness byte = 2
	// MaxDigits is the number of grids the controller has.
	MaxDigits = 6
	// PointMask is the decimal point segment.
	PointMask byte = 0x80
)

var (
	// Error is the class of driver errors.
	Error = errs.Class("tm1637")
	// ErrNack is returned when the controller does not acknowledge a byte.
	ErrNack = errs.Class("tm1637 nack")
)

// Segment bits, DP.G.F.E.D.C.B.A from bit 7 down to bit 0.
const (
	SegA = iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
	SegDP
)

var digitSegments = [10]byte{0x3f, 0x06, 0x5b, 0x4f, 0x66, 0x6d, 0x7d, 0x07, 0x7f, 0x6f}

// Encode returns the segment byte for one cell.
func Encode(c numfmt.Cell) byte {
	var b byte
	if !c.Blank {
		b = digitSegments[c.Digit%10]
	}
	if c.Point {
		b |= PointMask
	}
	return b
}

// Config is how the module is wired.
type Config struct {
	Clk int
	Dio int
	// Layout is the module's grid wiring; its width is the digit count.
	Layout     numfmt.Layout
	Brightness byte
	// Delay is the time between line changes.
	Delay time.Duration
}

// Dev is one TM1637 module.
type Dev struct {
	port       port.Port
	clk        int
	dio        int
	layout     numfmt.Layout
	brightness byte
	on         bool
	delay      time.Duration
	dump       bool

	mu      sync.Mutex
	err     error
	current []byte
}

// Open takes over the CLK and DIO pins, sets the brightness and clears the
// display.
func Open(p port.Port, cfg Config) (*Dev, error) {
	if cfg.Layout.Digits() == 0 {
		cfg.Layout = numfmt.Standard4
	}
	if cfg.Layout.Digits() > MaxDigits {
		return nil, Error.New("%d digits, the controller has %d grids", cfg.Layout.Digits(), MaxDigits)
	}
	if cfg.Clk == cfg.Dio {
		return nil, Error.New("clk and dio share pin %d", cfg.Clk)
	}
	if cfg.Brightness > MaxBrightness {
		cfg.Brightness = MaxBrightness
	}

	d := &Dev{
		port:       p,
		clk:        cfg.Clk,
		dio:        cfg.Dio,
		layout:     cfg.Layout,
		brightness: cfg.Brightness,
		on:         true,
		delay:      cfg.Delay,
		current:    make([]byte, cfg.Layout.Digits()),
	}

	// latch low once, the pins only ever switch direction after this
	d.setLatch(d.clk)
	d.setLatch(d.dio)
	d.release(d.clk)
	d.release(d.dio)
	if err := d.takeErr(); err != nil {
		return nil, err
	}

	if err := d.SetBrightness(cfg.Brightness); err != nil {
		return nil, err
	}
	if err := d.Clear(); err != nil {
		return nil, err
	}
	return d, nil
}

// Layout is the module's grid wiring.
func (d *Dev) Layout() numfmt.Layout {
	return d.layout
}

// Digits is the module's digit count.
func (d *Dev) Digits() int {
	return d.layout.Digits()
}

// DebugDump logs an ASCII picture of every frame sent.
func (d *Dev) DebugDump(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dump = on
}

// Current returns the segment bytes last written, in grid order.
func (d *Dev) Current() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]byte, len(d.current))
	copy(out, d.current)
	return out
}

// Brightness is the current level, 0..7.
func (d *Dev) Brightness() byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.brightness
}

// Send shows a formatted sequence. seq must already be in grid order, as
// numfmt.Format returns it for this module's layout.
func (d *Dev) Send(seq numfmt.Sequence) error {
	if len(seq) != d.layout.Digits() {
		return Error.New("sequence has %d cells, display has %d digits", len(seq), d.layout.Digits())
	}
	segs := make([]byte, len(seq))
	for i, c := range seq {
		segs[i] = Encode(c)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeSegments(segs)
}

// Clear turns every segment off.
func (d *Dev) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeSegments(make([]byte, d.layout.Digits()))
}

// SetBrightness sets the level, 0 (dimmest) to 7. Larger values clamp.
func (d *Dev) SetBrightness(level byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if level > MaxBrightness {
		level = MaxBrightness
	}
	d.brightness = level
	return d.displayControl()
}

// DisplayOn switches the display on or off without touching its contents.
func (d *Dev) DisplayOn(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.on = on
	return d.displayControl()
}

// Close turns the display off. The port stays open; it belongs to the
// caller.
func (d *Dev) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.on = false
	return d.displayControl()
}

// writeSegments sends the data command, then the start address and every
// grid byte, then the display control. Lock held.
func (d *Dev) writeSegments(segs []byte) error {
	if err := d.command(cmdDataAutoAddr); err != nil {
		return err
	}

	d.start()
	if err := d.writeByte(cmdAddrBase); err != nil {
		d.abort()
		return Error.Wrap(err)
	}
	for _, s := range segs {
		if err := d.writeByte(s); err != nil {
			d.abort()
			return Error.Wrap(err)
		}
	}
	d.stop()
	if err := d.takeErr(); err != nil {
		return err
	}

	d.current = segs
	if d.dump {
		log.Printf("tm1637:\n%s", strings.Join(Render(segs), "\n"))
	}

	return d.displayControl()
}

// displayControl re-sends brightness and on/off. Lock held.
func (d *Dev) displayControl() error {
	cmd := cmdDisplayCtrl | d.brightness
	if d.on {
		cmd |= displayOnBit
	}
	return d.command(cmd)
}

// command sends a single byte frame.
func (d *Dev) command(cmd byte) error {
	d.start()
	if err := d.writeByte(cmd); err != nil {
		d.abort()
		return Error.Wrap(err)
	}
	d.stop()
	return d.takeErr()
}

// abort ends a frame that already failed; its first error has been reported.
func (d *Dev) abort() {
	d.stop()
	d.err = nil
}

// start pulls DIO low while CLK is high.
func (d *Dev) start() {
	d.release(d.dio)
	d.release(d.clk)
	d.wait()
	d.pull(d.dio)
	d.wait()
	d.pull(d.clk)
	d.wait()
}

// stop releases DIO while CLK is high.
func (d *Dev) stop() {
	d.pull(d.clk)
	d.pull(d.dio)
	d.wait()
	d.release(d.clk)
	d.wait()
	d.release(d.dio)
	d.wait()
}

// writeByte clocks out 8 bits, LSB first, then clocks in the acknowledge.
// A missing acknowledge is an ErrNack naming the byte.
func (d *Dev) writeByte(b byte) error {
	sent := b
	for i := 0; i < 8; i++ {
		if b&0x01 != 0 {
			d.release(d.dio)
		} else {
			d.pull(d.dio)
		}
		d.wait()
		d.release(d.clk)
		d.wait()
		d.pull(d.clk)
		d.wait()
		b >>= 1
	}

	// the controller holds DIO low through the ninth clock
	d.release(d.dio)
	d.wait()
	d.release(d.clk)
	d.wait()
	ack := d.read(d.dio)
	d.pull(d.clk)
	d.wait()

	if err := d.takeErr(); err != nil {
		return err
	}
	if ack != port.Low {
		return ErrNack.New("no acknowledge for 0x%02x", sent)
	}
	return nil
}

func (d *Dev) wait() {
	if d.delay > 0 {
		time.Sleep(d.delay)
	}
}

// The line helpers keep the first port error; takeErr hands it back once
// the transaction is done.

func (d *Dev) setLatch(pin int) {
	if d.err == nil {
		d.err = d.port.WriteLatch(pin, port.Low)
	}
}

func (d *Dev) release(pin int) {
	if d.err == nil {
		d.err = d.port.SetDirection(pin, port.Input)
	}
}

func (d *Dev) pull(pin int) {
	if d.err == nil {
		d.err = d.port.SetDirection(pin, port.Output)
	}
}

func (d *Dev) read(pin int) port.Level {
	if d.err != nil {
		return port.High
	}
	lvl, err := d.port.ReadPin(pin)
	if err != nil {
		d.err = err
		return port.High
	}
	return lvl
}

func (d *Dev) takeErr() error {
	err := d.err
	d.err = nil
	return Error.Wrap(err)
}
