package main

import (
	"fmt"
	"sync"

	"dscheirer.com/segdemo/numfmt"
	"dscheirer.com/segdemo/tm1637"
)

type tmDisplay struct {
	dev    *tm1637.Dev
	layout numfmt.Layout

	mu   sync.Mutex
	text string
}

func (td *tmDisplay) OpenDisplay(rt runtimeConfig) error {
	if rt.port == nil {
		return fmt.Errorf("tm1637 display needs a port")
	}
	dev, err := tm1637.Open(rt.port, tm1637.Config{
		Clk:        rt.settings.GetInt(sClkPin),
		Dio:        rt.settings.GetInt(sDioPin),
		Layout:     rt.layout,
		Brightness: rt.settings.GetByte(sBrightness),
		Delay:      rt.settings.GetDuration(sBitDelay),
	})
	if err != nil {
		return fmt.Errorf("open tm1637: %w", err)
	}
	dev.DebugDump(rt.settings.GetBool(sDebug))
	td.dev = dev
	td.layout = rt.layout
	return nil
}

func (td *tmDisplay) DebugDump(on bool) {
	td.dev.DebugDump(on)
}

func (td *tmDisplay) SetBrightness(b uint8) error {
	return td.dev.SetBrightness(b)
}

func (td *tmDisplay) Brightness() uint8 {
	return td.dev.Brightness()
}

func (td *tmDisplay) Show(seq numfmt.Sequence) error {
	if err := td.dev.Send(seq); err != nil {
		return err
	}
	td.mu.Lock()
	td.text = td.layout.Restore(seq).String()
	td.mu.Unlock()
	return nil
}

func (td *tmDisplay) Clear() error {
	if err := td.dev.Clear(); err != nil {
		return err
	}
	td.mu.Lock()
	td.text = ""
	td.mu.Unlock()
	return nil
}

func (td *tmDisplay) Text() string {
	td.mu.Lock()
	defer td.mu.Unlock()
	return td.text
}

func (td *tmDisplay) Close() error {
	return td.dev.Close()
}
