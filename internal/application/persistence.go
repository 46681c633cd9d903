package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/bnema/world-saver-cli/internal/domain"
	"github.com/bnema/world-saver-cli/internal/ports"
)

const (
	KeyUsername   = "world_saver_username_v1"
	KeyTranscript = "world_saver_chat_context_v1"
	KeyProgress   = "world_saver_progress_v1"
)

// PersistedKeys lists every key a reset must clear.
var PersistedKeys = []string{KeyUsername, KeyTranscript, KeyProgress}

// BestEffortStore wraps a KeyValueStore so that storage failures never reach
// the game. Failures are logged at debug level and otherwise ignored.
type BestEffortStore struct {
	store  ports.KeyValueStore
	logger *slog.Logger
}

func NewBestEffortStore(store ports.KeyValueStore, logger *slog.Logger) *BestEffortStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &BestEffortStore{store: store, logger: logger}
}

func (s *BestEffortStore) Get(ctx context.Context, key string) (string, bool) {
	if s == nil || s.store == nil {
		return "", false
	}

	value, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			s.logger.Debug("storage read failed", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}

func (s *BestEffortStore) Set(ctx context.Context, key string, value string) {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Put(context.WithoutCancel(ctx), key, value); err != nil {
		s.logger.Debug("storage write failed", "key", key, "error", err)
	}
}

func (s *BestEffortStore) Remove(ctx context.Context, key string) {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Delete(context.WithoutCancel(ctx), key); err != nil && !errors.Is(err, ports.ErrKeyNotFound) {
		s.logger.Debug("storage delete failed", "key", key, "error", err)
	}
}

type progress struct {
	Score    int           `json:"score"`
	GameOver bool          `json:"gameOver"`
	Result   domain.Result `json:"result"`
}

func (s *BestEffortStore) loadTranscript(ctx context.Context) (domain.Transcript, bool) {
	raw, ok := s.Get(ctx, KeyTranscript)
	if !ok {
		return nil, false
	}

	var transcript domain.Transcript
	if err := json.Unmarshal([]byte(raw), &transcript); err != nil {
		s.logger.Debug("stored transcript is unreadable", "error", err)
		return nil, false
	}
	if len(transcript) == 0 {
		return nil, false
	}
	return transcript.Settle(), true
}

func (s *BestEffortStore) saveTranscript(ctx context.Context, transcript domain.Transcript, window int) {
	data, err := json.Marshal(domain.WindowOf(transcript, window))
	if err != nil {
		s.logger.Debug("encode transcript", "error", err)
		return
	}
	s.Set(ctx, KeyTranscript, string(data))
}

func (s *BestEffortStore) loadProgress(ctx context.Context) (progress, bool) {
	raw, ok := s.Get(ctx, KeyProgress)
	if !ok {
		return progress{}, false
	}

	var p progress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Debug("stored progress is unreadable", "error", err)
		return progress{}, false
	}
	if p.Result == "" {
		p.Result = domain.ResultNone
	}
	return p, true
}

func (s *BestEffortStore) saveProgress(ctx context.Context, session domain.Session) {
	data, err := json.Marshal(progress{Score: session.Score, GameOver: session.GameOver, Result: session.Result})
	if err != nil {
		s.logger.Debug("encode progress", "error", err)
		return
	}
	s.Set(ctx, KeyProgress, string(data))
}

func (s *BestEffortStore) clear(ctx context.Context) {
	for _, key := range PersistedKeys {
		s.Remove(ctx, key)
	}
}
