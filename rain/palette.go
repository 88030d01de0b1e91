package rain

import "time"

// A drop lands every TickInterval and stays lit for LightDuration.
const (
	DefaultTickInterval  = 50 * time.Millisecond
	DefaultLightDuration = 500 * time.Millisecond
)

// The Launchkey 25 MK2 exposes its sixteen RGB pads as MIDI notes
// 36 (C1) through 51 (D#2).
const (
	FirstPad = 36
	PadCount = 16
)

// Pad colors are NoteOn velocities; the device maps each velocity to an
// entry in its built-in palette. Velocity 0 switches a pad off and is
// never part of the lit palette.
const (
	ColorOff    uint8 = 0
	ColorRed    uint8 = 5
	ColorOrange uint8 = 13
	ColorYellow uint8 = 21
	ColorGreen  uint8 = 56
	ColorCyan   uint8 = 60
	ColorBlue   uint8 = 64
	ColorPurple uint8 = 80
	ColorWhite  uint8 = 127
)

// DefaultPads returns the full sixteen-pad note range.
func DefaultPads() []uint8 {
	pads := make([]uint8, PadCount)
	for i := range pads {
		pads[i] = FirstPad + uint8(i)
	}
	return pads
}

// DefaultPalette returns the lit colors a drop may take.
func DefaultPalette() []uint8 {
	return []uint8{
		ColorRed, ColorOrange, ColorYellow, ColorGreen,
		ColorCyan, ColorBlue, ColorPurple, ColorWhite,
	}
}
