package main

import (
	"fmt"
	"sync"

	// terminal rendering for sim mode
	"github.com/nsf/termbox-go"

	"dscheirer.com/segdemo/numfmt"
	"dscheirer.com/segdemo/tm1637"
)

// termDisplay draws the segments in the terminal, for running without a
// module attached. Ctrl-C, Esc or q quits.
type termDisplay struct {
	mu         sync.Mutex
	layout     numfmt.Layout
	segs       []byte
	text       string
	brightness uint8
	debugDump  bool
	closed     bool
}

// the upper half of the brightness range draws bold
var termBrightness = [8]termbox.Attribute{
	termbox.ColorRed, termbox.ColorRed, termbox.ColorRed, termbox.ColorRed,
	termbox.ColorRed | termbox.AttrBold, termbox.ColorRed | termbox.AttrBold,
	termbox.ColorRed | termbox.AttrBold, termbox.ColorRed | termbox.AttrBold,
}

func (tdp *termDisplay) OpenDisplay(rt runtimeConfig) error {
	err := termbox.Init()
	if err != nil {
		return fmt.Errorf("termbox: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)

	tdp.layout = rt.layout
	tdp.segs = make([]byte, rt.layout.Digits())
	tdp.brightness = rt.settings.GetByte(sBrightness)
	tdp.debugDump = rt.settings.GetBool(sDebug)

	go tdp.watchKeys(rt)
	return tdp.draw()
}

func (tdp *termDisplay) watchKeys(rt runtimeConfig) {
	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventKey:
			if ev.Key == termbox.KeyCtrlC || ev.Key == termbox.KeyEsc || ev.Ch == 'q' {
				quit(rt)
				return
			}
		case termbox.EventInterrupt, termbox.EventError:
			return
		}
	}
}

// draw repaints everything. Lock held by the caller or not yet shared.
func (tdp *termDisplay) draw() error {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	// the picture follows the grids; text is the logical reading
	fg := termBrightness[tdp.brightness&7]
	for y, row := range tm1637.Render(tdp.segs) {
		for x, ch := range row {
			termbox.SetCell(x, y, ch, fg, termbox.ColorDefault)
		}
	}

	status := fmt.Sprintf("[%s] %s  brightness %d  (q to quit)", tdp.text, tdp.layout.Name, tdp.brightness)
	if tdp.debugDump {
		status += fmt.Sprintf("  % x", tdp.segs)
	}
	for x, ch := range status {
		termbox.SetCell(x, 6, ch, termbox.ColorDefault, termbox.ColorDefault)
	}
	return termbox.Flush()
}

func (tdp *termDisplay) DebugDump(on bool) {
	tdp.mu.Lock()
	defer tdp.mu.Unlock()
	tdp.debugDump = on
}

func (tdp *termDisplay) SetBrightness(b uint8) error {
	tdp.mu.Lock()
	defer tdp.mu.Unlock()
	if b > tm1637.MaxBrightness {
		b = tm1637.MaxBrightness
	}
	tdp.brightness = b
	return tdp.draw()
}

func (tdp *termDisplay) Brightness() uint8 {
	tdp.mu.Lock()
	defer tdp.mu.Unlock()
	return tdp.brightness
}

func (tdp *termDisplay) Show(seq numfmt.Sequence) error {
	if len(seq) != tdp.layout.Digits() {
		return fmt.Errorf("sequence has %d cells, display has %d digits", len(seq), tdp.layout.Digits())
	}
	tdp.mu.Lock()
	defer tdp.mu.Unlock()
	for i, c := range seq {
		tdp.segs[i] = tm1637.Encode(c)
	}
	tdp.text = tdp.layout.Restore(seq).String()
	return tdp.draw()
}

func (tdp *termDisplay) Clear() error {
	tdp.mu.Lock()
	defer tdp.mu.Unlock()
	tdp.segs = make([]byte, tdp.layout.Digits())
	tdp.text = ""
	return tdp.draw()
}

func (tdp *termDisplay) Text() string {
	tdp.mu.Lock()
	defer tdp.mu.Unlock()
	return tdp.text
}

func (tdp *termDisplay) Close() error {
	tdp.mu.Lock()
	defer tdp.mu.Unlock()
	if !tdp.closed {
		tdp.closed = true
		termbox.Interrupt()
		termbox.Close()
	}
	return nil
}
