package application

import (
	"context"
	"errors"
	"time"
)

// DefaultCadence is the delay between revealed characters.
const DefaultCadence = 16 * time.Millisecond

// ErrRevealCancelled means a reveal stopped before the full text was shown.
// Callers treat it as a silent stop, not a failure.
var ErrRevealCancelled = errors.New("reveal cancelled")

type Streamer struct {
	Cadence time.Duration
}

// Reveal calls step with every rune prefix of fullText, one per cadence tick,
// ending with fullText itself. It returns the number of prefixes applied.
// Empty text produces a single empty step. Reveal stops with
// ErrRevealCancelled when ctx is done or step returns false.
func (s Streamer) Reveal(ctx context.Context, fullText string, step func(prefix string) bool) (int, error) {
	runes := []rune(fullText)
	if len(runes) == 0 {
		if ctx.Err() != nil || !step("") {
			return 0, ErrRevealCancelled
		}
		return 1, nil
	}

	var timer *time.Timer
	if s.Cadence > 0 {
		timer = time.NewTimer(s.Cadence)
		defer timer.Stop()
	}

	applied := 0
	for i := range runes {
		if timer != nil {
			if i > 0 {
				timer.Reset(s.Cadence)
			}
			select {
			case <-ctx.Done():
				return applied, ErrRevealCancelled
			case <-timer.C:
			}
		} else if ctx.Err() != nil {
			return applied, ErrRevealCancelled
		}

		if !step(string(runes[:i+1])) {
			return applied, ErrRevealCancelled
		}
		applied++
	}

	return applied, nil
}
