// Package midi opens the pad controller's MIDI output and sends the NoteOn
// messages that set pad colors.
package midi

import (
	"fmt"
	"log/slog"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Pad messages go out on MIDI channel 1 (wire value 0).
const channel uint8 = 0

// -------------------- Driver --------------------

// Driver owns the rtmidi handle used to enumerate and open output ports.
// Call Close when done; open Ports must be closed first.
type Driver struct {
	drv    *rtmididrv.Driver
	logger *slog.Logger
}

// NewDriver initialises the underlying rtmidi driver.
func NewDriver(logger *slog.Logger) (*Driver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	return &Driver{drv: drv, logger: logger}, nil
}

// OutputNames enumerates the names of the connected MIDI output ports.
func (d *Driver) OutputNames() ([]string, error) {
	outs, err := d.drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("list outputs: %w", err)
	}
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names, nil
}

// OpenOutput opens the output port whose name matches exactly.
func (d *Driver) OpenOutput(name string) (*Port, error) {
	outs, err := d.drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("list outputs: %w", err)
	}
	var found drivers.Out
	for _, out := range outs {
		if out.String() == name {
			found = out
			break
		}
	}
	if found == nil {
		return nil, fmt.Errorf("output %q not found", name)
	}
	if err := found.Open(); err != nil {
		return nil, fmt.Errorf("open %q: %w", name, err)
	}
	send, err := gomidi.SendTo(found)
	if err != nil {
		_ = found.Close()
		return nil, fmt.Errorf("sender for %q: %w", name, err)
	}
	d.logger.Info("midi: output opened", "device", name)
	return &Port{name: name, out: found, send: send, logger: d.logger}, nil
}

// Close shuts down the rtmidi driver.
func (d *Driver) Close() {
	d.drv.Close()
}

// -------------------- Port --------------------

// Port is an open MIDI output. One NoteOn per Send; the velocity selects
// the pad color, velocity 0 clears it.
type Port struct {
	name   string
	out    drivers.Out
	send   func(gomidi.Message) error
	logger *slog.Logger
	closed bool
}

// Name returns the port name the output was opened under.
func (p *Port) Name() string { return p.name }

// Send emits one NoteOn for note with velocity as the color code.
func (p *Port) Send(note, velocity uint8) error {
	if p.closed {
		return fmt.Errorf("output %q is closed", p.name)
	}
	if err := p.send(gomidi.NoteOn(channel, note, velocity)); err != nil {
		return fmt.Errorf("send to %q: %w", p.name, err)
	}
	return nil
}

// Close closes the underlying port. Safe to call more than once.
func (p *Port) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.logger.Info("midi: closing output", "device", p.name)
	if err := p.out.Close(); err != nil {
		p.logger.Warn("midi: close failed", "device", p.name, "err", err)
	}
}
