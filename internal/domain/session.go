package domain

import (
	"math"
	"strings"
)

// PlaceholderUsername is what older clients stored before a name was chosen.
const PlaceholderUsername = "anonymous"

type State string

const (
	StateAwaitingUsername State = "awaiting_username"
	StateIdle             State = "idle"
	StateAwaitingResponse State = "awaiting_response"
	StateGameOver         State = "game_over"
)

type Session struct {
	Username       string
	UsernameLocked bool
	Score          int
	GameOver       bool
	Result         Result
	Transcript     Transcript
}

func NewSession() Session {
	return Session{Result: ResultNone, Transcript: Transcript{}}
}

func (s Session) Clone() Session {
	s.Transcript = s.Transcript.Clone()
	return s
}

// Lock sets and locks the username. A locked username cannot change until reset.
func (s *Session) Lock(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyUsername
	}
	if s.UsernameLocked {
		return ErrUsernameLocked
	}
	s.Username = trimmed
	s.UsernameLocked = true
	return nil
}

// ApplyDelta adds a score delta and, if a threshold is crossed, ends the game.
func (s *Session) ApplyDelta(delta int, thresholds Thresholds) Result {
	s.Score = addSaturating(s.Score, delta)
	result := thresholds.Evaluate(s.Score)
	if result != ResultNone {
		s.GameOver = true
		s.Result = result
	}
	return result
}

func addSaturating(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

// IsUsableUsername reports whether a stored username should be restored.
func IsUsableUsername(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed != "" && trimmed != PlaceholderUsername
}
