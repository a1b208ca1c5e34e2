package main

import (
	"dscheirer.com/segdemo/numfmt"
)

// display takes sequences already in grid order for rt.layout.
type display interface {
	OpenDisplay(rt runtimeConfig) error
	DebugDump(on bool)
	SetBrightness(b uint8) error
	Brightness() uint8
	Show(seq numfmt.Sequence) error
	Clear() error
	// Text is what the display shows, left to right.
	Text() string
	Close() error
}

type led interface {
	init(rt runtimeConfig) error
	set(pin int, on bool)
	on(pin int)
	off(pin int)
}

type configService interface {
	launch(handler *apiHandler, addr string) error
	stop()
}
