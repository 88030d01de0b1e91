package midi

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		ports []string
		want  string
		ok    bool
	}{
		{
			name:  "launchkey preferred over others",
			ports: []string{"Midi Through Port-0", "USB Synth MIDI 1", "Launchkey 25 MK2 MIDI 2"},
			want:  "Launchkey 25 MK2 MIDI 2",
			ok:    true,
		},
		{
			name:  "launchkey beats novation regardless of order",
			ports: []string{"Novation SL MkIII", "Launchkey 25 MK2 MIDI 2"},
			want:  "Launchkey 25 MK2 MIDI 2",
			ok:    true,
		},
		{
			name:  "novation fallback",
			ports: []string{"USB Synth MIDI 1", "Novation SL MkIII"},
			want:  "Novation SL MkIII",
			ok:    true,
		},
		{
			name:  "case insensitive match",
			ports: []string{"LAUNCHKEY mini mk3 MIDI 1"},
			want:  "LAUNCHKEY mini mk3 MIDI 1",
			ok:    true,
		},
		{
			name:  "single candidate wins without a pattern match",
			ports: []string{"Midi Through Port-0", "Some Synth MIDI 1"},
			want:  "Some Synth MIDI 1",
			ok:    true,
		},
		{
			name:  "virtual ports never picked even when alone",
			ports: []string{"Midi Through Port-0"},
			ok:    false,
		},
		{
			name:  "excluded launchkey dummy stays excluded",
			ports: []string{"Launchkey Dummy Port"},
			ok:    false,
		},
		{
			name:  "ambiguous candidates",
			ports: []string{"Synth A MIDI 1", "Synth B MIDI 1"},
			ok:    false,
		},
		{
			name: "no ports",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Detect(tt.ports)
			if ok != tt.ok {
				t.Fatalf("Detect(%v) ok = %v, want %v", tt.ports, ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("Detect(%v) = %q, want %q", tt.ports, got, tt.want)
			}
		})
	}
}
