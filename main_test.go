package main

import (
	"errors"
	"log/slog"
	"testing"

	"launchkey-rain/config"
)

func TestResolvePortName(t *testing.T) {
	logger = slog.New(slog.DiscardHandler)

	ports := func(names ...string) func() ([]string, error) {
		return func() ([]string, error) { return names, nil }
	}

	tests := []struct {
		name     string
		flagName string
		cfg      config.Config
		outputs  func() ([]string, error)
		want     string
	}{
		{
			name:     "flag beats config and detection",
			flagName: "Flag Port MIDI 1",
			cfg:      config.Config{PortName: "Config Port MIDI 1"},
			outputs:  ports("Launchkey 25 MK2 MIDI 2"),
			want:     "Flag Port MIDI 1",
		},
		{
			name:    "config beats detection",
			cfg:     config.Config{PortName: "Config Port MIDI 1"},
			outputs: ports("Launchkey 25 MK2 MIDI 2"),
			want:    "Config Port MIDI 1",
		},
		{
			name:    "detection fills flag and config silence",
			outputs: ports("Midi Through Port-0", "Launchkey 25 MK2 MIDI 2"),
			want:    "Launchkey 25 MK2 MIDI 2",
		},
		{
			name:    "default when detection finds nothing",
			outputs: ports("Synth A MIDI 1", "Synth B MIDI 1"),
			want:    config.DefaultPort,
		},
		{
			name:    "default when enumeration fails",
			outputs: func() ([]string, error) { return nil, errors.New("no backend") },
			want:    config.DefaultPort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolvePortName(tt.flagName, &tt.cfg, tt.outputs)
			if got == "" {
				t.Fatal("resolvePortName returned an empty name")
			}
			if got != tt.want {
				t.Errorf("resolvePortName(%q, ...) = %q, want %q", tt.flagName, got, tt.want)
			}
		})
	}
}
