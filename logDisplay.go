package main

import (
	"log"
	"sync"

	"dscheirer.com/segdemo/numfmt"
)

// logDisplay only logs; tests read curDisplay and audit back.
type logDisplay struct {
	mu         sync.Mutex
	layout     numfmt.Layout
	curDisplay string
	debugDump  bool
	brightness uint8
	displayOn  bool
	audit      []string
}

func (ld *logDisplay) OpenDisplay(rt runtimeConfig) error {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	ld.layout = rt.layout
	ld.curDisplay = ""
	ld.debugDump = rt.settings.GetBool(sDebug)
	ld.brightness = rt.settings.GetByte(sBrightness)
	ld.displayOn = true
	ld.audit = []string{}
	return nil
}

func (ld *logDisplay) DebugDump(on bool) {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	ld.debugDump = on
}

func (ld *logDisplay) SetBrightness(b uint8) error {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	if b > 7 {
		b = 7
	}
	ld.brightness = b
	return nil
}

func (ld *logDisplay) Brightness() uint8 {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	return ld.brightness
}

func (ld *logDisplay) Show(seq numfmt.Sequence) error {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	e := ld.layout.Restore(seq).String()
	if e != ld.curDisplay {
		if ld.debugDump {
			log.Printf("display [%s] grids [%s]", e, seq)
		} else {
			log.Println(e)
		}
		ld.audit = append(ld.audit, e)
	}
	ld.curDisplay = e
	return nil
}

func (ld *logDisplay) Clear() error {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	ld.curDisplay = ""
	return nil
}

func (ld *logDisplay) Text() string {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	return ld.curDisplay
}

func (ld *logDisplay) Close() error {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	ld.displayOn = false
	return nil
}

// auditLog copies the audit trail.
func (ld *logDisplay) auditLog() []string {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	return append([]string(nil), ld.audit...)
}
