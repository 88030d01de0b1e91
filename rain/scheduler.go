// Package rain runs a random pad-lighting pattern on a grid of RGB pads.
// Every tick one random pad lights up in a random color and stays lit for a
// fixed duration before it is cleared.
package rain

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// Output is the downstream pad surface. Send delivers one NoteOn for the
// given note with velocity as the color code; velocity 0 clears the pad.
type Output interface {
	Send(note, velocity uint8) error
}

// Config carries the scheduler knobs. Zero values fall back to the
// defaults in New.
type Config struct {
	TickInterval  time.Duration // time between drops
	LightDuration time.Duration // how long a drop stays lit
	Pads          []uint8       // pad notes eligible for drops
	Palette       []uint8       // lit colors a drop may take
	Rand          *rand.Rand    // randomness source, time-seeded if nil
	Logger        *slog.Logger
}

// Scheduler owns the rain state machine. All state belongs to the single
// goroutine that calls Run; a Scheduler must not be shared.
type Scheduler struct {
	out      Output
	interval time.Duration
	duration time.Duration
	pads     []uint8
	palette  []uint8
	rng      *rand.Rand
	logger   *slog.Logger

	// active maps a lit pad to the instant its light expires. A pad appears
	// at most once; re-lighting overwrites the expiry.
	active map[uint8]time.Time
}

// New builds a Scheduler over out, filling unset Config fields with the
// package defaults.
func New(out Output, cfg Config) *Scheduler {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.LightDuration <= 0 {
		cfg.LightDuration = DefaultLightDuration
	}
	if len(cfg.Pads) == 0 {
		cfg.Pads = DefaultPads()
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = DefaultPalette()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Scheduler{
		out:      out,
		interval: cfg.TickInterval,
		duration: cfg.LightDuration,
		pads:     cfg.Pads,
		palette:  cfg.Palette,
		rng:      cfg.Rand,
		logger:   cfg.Logger,
		active:   make(map[uint8]time.Time),
	}
}

// Run drives the show until ctx is cancelled or a send fails. Every pad in
// the range is cleared before Run returns, whatever the exit path. The
// returned error is ctx.Err() on cancellation and the wrapped send error on
// transport failure.
func (s *Scheduler) Run(ctx context.Context) error {
	defer s.drain()

	s.logger.Info("rain: starting",
		"pads", len(s.pads),
		"colors", len(s.palette),
		"tick_ms", s.interval.Milliseconds(),
		"light_ms", s.duration.Milliseconds(),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.tick(time.Now()); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// tick retires expired lights, then lands one new drop. A single timestamp
// is used for both the expiry scan and the new drop's deadline.
func (s *Scheduler) tick(now time.Time) error {
	if err := s.expire(now); err != nil {
		return err
	}
	return s.drop(now)
}

// expire clears every pad whose light has run out, exactly once each.
func (s *Scheduler) expire(now time.Time) error {
	for note, expiry := range s.active {
		if expiry.After(now) {
			continue
		}
		if err := s.out.Send(note, ColorOff); err != nil {
			return fmt.Errorf("clear pad %d: %w", note, err)
		}
		delete(s.active, note)
		s.logger.Debug("rain: pad expired", "pad", note)
	}
	return nil
}

// drop lights one uniformly random pad in one uniformly random color.
func (s *Scheduler) drop(now time.Time) error {
	note := s.pads[s.rng.Intn(len(s.pads))]
	color := s.palette[s.rng.Intn(len(s.palette))]
	return s.light(now, note, color)
}

// light sends the on-event and records the new expiry. Lighting an already
// lit pad replaces its deadline; the earlier timer is subsumed and produces
// no off-event of its own.
func (s *Scheduler) light(now time.Time, note, color uint8) error {
	if err := s.out.Send(note, color); err != nil {
		return fmt.Errorf("light pad %d: %w", note, err)
	}
	s.active[note] = now.Add(s.duration)
	s.logger.Debug("rain: drop", "pad", note, "color", color, "active", len(s.active))
	return nil
}

// drain force-clears every pad in the range, tracked or not, and resets the
// active set. Send failures are logged, not returned.
func (s *Scheduler) drain() {
	s.logger.Info("rain: clearing all pads")
	for _, note := range s.pads {
		if err := s.out.Send(note, ColorOff); err != nil {
			s.logger.Warn("rain: clear failed", "pad", note, "err", err)
		}
	}
	s.active = make(map[uint8]time.Time)
}
