package application

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/world-saver-cli/internal/domain"
	"github.com/bnema/world-saver-cli/internal/ports"
)

const (
	DefaultOpeningMessage = "🌍 The world is crumbling... Tell me how you'll help save it!"
	DefaultContextWindow  = 999
	DefaultClosingDelay   = 350 * time.Millisecond
)

type GameConfig struct {
	Thresholds    domain.Thresholds
	ContextWindow int
	Cadence       time.Duration
	ClosingDelay  time.Duration
	Logger        *slog.Logger
}

func DefaultGameConfig() GameConfig {
	return GameConfig{
		Thresholds:    domain.DefaultThresholds(),
		ContextWindow: DefaultContextWindow,
		Cadence:       DefaultCadence,
		ClosingDelay:  DefaultClosingDelay,
	}
}

// Snapshot is a deep copy of the game for presentation.
type Snapshot struct {
	State   domain.State
	Session domain.Session
}

// Game owns the session and sequences every turn. Methods are safe to call
// from multiple goroutines; at most one turn runs at a time.
type Game struct {
	narrator ports.Narrator
	store    *BestEffortStore
	records  ports.GameRecordRepository
	clock    ports.Clock
	logger   *slog.Logger
	cfg      GameConfig
	streamer Streamer
	newID    func() string

	mu               sync.Mutex
	session          domain.Session
	state            domain.State
	openingRequested bool
	generation       uint64
	live             context.Context
	cancelLive       context.CancelFunc
	subscribers      []func(Snapshot)
}

// NewGame builds a game in the AwaitingUsername state. records and clock may be nil.
func NewGame(narrator ports.Narrator, store ports.KeyValueStore, records ports.GameRecordRepository, clock ports.Clock, cfg GameConfig) *Game {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = DefaultContextWindow
	}
	if cfg.Thresholds == (domain.Thresholds{}) {
		cfg.Thresholds = domain.DefaultThresholds()
	}

	live, cancel := context.WithCancel(context.Background())
	return &Game{
		narrator:   narrator,
		store:      NewBestEffortStore(store, logger),
		records:    records,
		clock:      clock,
		logger:     logger,
		cfg:        cfg,
		streamer:   Streamer{Cadence: cfg.Cadence},
		newID:      func() string { return uuid.NewString() },
		session:    domain.NewSession(),
		state:      domain.StateAwaitingUsername,
		live:       live,
		cancelLive: cancel,
	}
}

// Subscribe registers fn to receive a snapshot after every change, including
// each streamed character. fn runs on the goroutine that made the change and
// must not call back into the game synchronously.
func (g *Game) Subscribe(fn func(Snapshot)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subscribers = append(g.subscribers, fn)
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Game) snapshotLocked() Snapshot {
	return Snapshot{State: g.state, Session: g.session.Clone()}
}

// Hydrate restores the session from the store. A username is restored only
// when usable, a transcript only when non-empty.
func (g *Game) Hydrate(ctx context.Context) {
	g.mu.Lock()

	session := domain.NewSession()
	if name, ok := g.store.Get(ctx, KeyUsername); ok && domain.IsUsableUsername(name) {
		_ = session.Lock(name)
	}
	if transcript, ok := g.store.loadTranscript(ctx); ok {
		session.Transcript = transcript
	}
	if p, ok := g.store.loadProgress(ctx); ok {
		session.Score = p.Score
		session.GameOver = p.GameOver
		session.Result = p.Result
	}

	g.session = session
	g.openingRequested = false
	switch {
	case !session.UsernameLocked:
		g.state = domain.StateAwaitingUsername
	case session.GameOver:
		g.state = domain.StateGameOver
	default:
		g.state = domain.StateIdle
	}

	g.publishAndUnlock()
}

// Start fetches the opening narration once for a fresh session with a locked
// username. It is a no-op otherwise.
func (g *Game) Start(ctx context.Context) error {
	g.mu.Lock()
	if g.state != domain.StateIdle || !g.needsOpeningLocked() {
		g.mu.Unlock()
		return nil
	}
	turn := g.beginOpeningLocked()
	g.publishAndUnlock()

	g.runOpening(ctx, turn)
	return nil
}

// SetUsername locks the username and, for an empty transcript, fetches the opening.
func (g *Game) SetUsername(ctx context.Context, name string) error {
	g.mu.Lock()
	if g.state != domain.StateAwaitingUsername {
		g.mu.Unlock()
		return domain.ErrUsernameLocked
	}
	if err := g.session.Lock(name); err != nil {
		g.mu.Unlock()
		return err
	}
	g.store.Set(ctx, KeyUsername, g.session.Username)
	g.state = domain.StateIdle
	if g.session.GameOver {
		g.state = domain.StateGameOver
	}

	if g.state != domain.StateIdle || !g.needsOpeningLocked() {
		g.publishAndUnlock()
		return nil
	}
	turn := g.beginOpeningLocked()
	g.publishAndUnlock()

	g.runOpening(ctx, turn)
	return nil
}

// Submit plays one turn. Validation failures return a domain error without
// side effects. A narrator failure is recorded in the transcript as a bot
// message and returned wrapped in domain.ErrNarratorUnavailable. A turn
// cancelled by ctx or by Reset returns nil.
func (g *Game) Submit(ctx context.Context, text string) error {
	action := strings.TrimSpace(text)
	if action == "" {
		return domain.ErrEmptyAction
	}

	g.mu.Lock()
	switch {
	case !g.session.UsernameLocked:
		g.mu.Unlock()
		return domain.ErrUsernameRequired
	case g.state == domain.StateAwaitingResponse:
		g.mu.Unlock()
		return domain.ErrTurnInFlight
	case g.session.GameOver || g.state == domain.StateGameOver:
		g.mu.Unlock()
		return domain.ErrGameOver
	}

	g.session.Transcript.Append(domain.UserMessage(action))
	g.persistTranscriptLocked(ctx)
	g.state = domain.StateAwaitingResponse

	window := domain.WindowOf(g.session.Transcript, g.cfg.ContextWindow)
	req := ports.ActionRequest{
		Username:        g.session.Username,
		PreviousContext: domain.ToConversation(window),
		Action:          action,
		Score:           g.session.Score,
	}
	turn := g.turnLocked()
	g.publishAndUnlock()

	turnCtx, done := turn.context(ctx)
	defer done()

	outcome, err := g.narrator.SubmitAction(turnCtx, req)
	if err != nil {
		if turnCtx.Err() != nil {
			g.settle(ctx, turn)
			return nil
		}
		g.update(turn, func() {
			g.session.Transcript.Append(domain.BotMessage("(error) Could not reach the narrator: "+err.Error(), nil))
			g.persistTranscriptLocked(ctx)
			g.state = domain.StateIdle
		})
		return fmt.Errorf("%w: %w", domain.ErrNarratorUnavailable, err)
	}

	var (
		result domain.Result
		score  int
	)
	applied := g.update(turn, func() {
		result = g.session.ApplyDelta(outcome.ScoreDelta, g.cfg.Thresholds)
		score = g.session.Score
		g.store.saveProgress(ctx, g.session)
		g.session.Transcript.BeginStream(outcome.Sentiment)
	})
	if !applied {
		return nil
	}

	story := outcome.Story
	if result != domain.ResultNone {
		story = g.closingStory(turnCtx, req, outcome.Story, result, score)
	}

	if err := g.stream(turnCtx, turn, story); err != nil {
		g.settle(ctx, turn)
		return nil
	}
	if !g.settle(ctx, turn) || result == domain.ResultNone {
		return nil
	}

	g.pause(turnCtx, g.cfg.ClosingDelay)

	efficacy := domain.Efficacy(score, len(window))
	var record domain.GameRecord
	announced := g.update(turn, func() {
		g.session.Transcript.Append(domain.BotMessage(domain.Announcement(result, score, efficacy), nil))
		g.persistTranscriptLocked(ctx)
		record = domain.GameRecord{
			ID:         g.newID(),
			Username:   g.session.Username,
			FinalScore: score,
			Turns:      countTurns(g.session.Transcript),
			Efficacy:   efficacy,
			Result:     result,
			PlayedAt:   g.clock.Now().UTC(),
		}
	})
	if announced {
		g.saveRecord(ctx, record)
	}

	return nil
}

// closingStory asks for a closing narration and falls back to the turn's own story.
func (g *Game) closingStory(ctx context.Context, req ports.ActionRequest, primary string, result domain.Result, score int) string {
	closingReq := ports.ClosingRequest{ActionRequest: req, Outcome: result}
	closingReq.Score = score
	closingReq.PreviousContext = append(slices.Clone(req.PreviousContext), domain.ConversationTurn{
		Role:    domain.RoleAssistant,
		Content: primary,
	})

	closing, err := g.narrator.Closing(ctx, closingReq)
	if err != nil {
		if ctx.Err() == nil {
			g.logger.Debug("closing narration failed, reusing turn story", "error", err)
		}
		return primary
	}
	if strings.TrimSpace(closing.Story) == "" {
		return primary
	}
	return closing.Story
}

func (g *Game) runOpening(ctx context.Context, turn turn) {
	turnCtx, done := turn.context(ctx)
	defer done()

	opening, err := g.narrator.Opening(turnCtx, turn.username)
	if err != nil {
		if turnCtx.Err() != nil {
			g.settle(ctx, turn)
			return
		}
		g.logger.Debug("opening narration failed, using fallback", "error", err)
		g.update(turn, func() {
			g.session.Transcript.Append(domain.BotMessage(DefaultOpeningMessage, domain.Sentiment(0)))
			g.persistTranscriptLocked(ctx)
			g.state = domain.StateIdle
		})
		return
	}

	if !g.update(turn, func() { g.session.Transcript.BeginStream(domain.Sentiment(opening.Sentiment)) }) {
		return
	}
	_ = g.stream(turnCtx, turn, opening.Story)
	g.settle(ctx, turn)
}

func (g *Game) stream(ctx context.Context, turn turn, text string) error {
	_, err := g.streamer.Reveal(ctx, text, func(prefix string) bool {
		written := false
		g.update(turn, func() { written = g.session.Transcript.SetStreamText(prefix) })
		return written
	})
	return err
}

// settle closes any open stream, persists the transcript and leaves the
// AwaitingResponse state. It reports false when the turn was discarded by a reset.
func (g *Game) settle(ctx context.Context, turn turn) bool {
	return g.update(turn, func() {
		g.session.Transcript.FinishStream()
		g.persistTranscriptLocked(ctx)
		if g.session.GameOver {
			g.state = domain.StateGameOver
		} else {
			g.state = domain.StateIdle
		}
	})
}

func (g *Game) pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (g *Game) saveRecord(ctx context.Context, record domain.GameRecord) {
	if g.records == nil {
		return
	}
	if err := g.records.Save(context.WithoutCancel(ctx), record); err != nil {
		g.logger.Warn("save game record", "error", err)
	}
}

func (g *Game) needsOpeningLocked() bool {
	return g.session.UsernameLocked && len(g.session.Transcript) == 0 && !g.openingRequested
}

func (g *Game) beginOpeningLocked() turn {
	g.openingRequested = true
	g.state = domain.StateAwaitingResponse
	return g.turnLocked()
}

func (g *Game) persistTranscriptLocked(ctx context.Context) {
	g.store.saveTranscript(ctx, g.session.Transcript, g.cfg.ContextWindow)
}

// turn ties in-flight work to the session generation it started in.
type turn struct {
	generation uint64
	live       context.Context
	username   string
}

func (g *Game) turnLocked() turn {
	return turn{generation: g.generation, live: g.live, username: g.session.Username}
}

// context derives a context that is cancelled with ctx or when the session is reset.
func (t turn) context(ctx context.Context) (context.Context, context.CancelFunc) {
	turnCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(t.live, cancel)
	return turnCtx, func() {
		stop()
		cancel()
	}
}

// update applies fn if the turn still belongs to the current session and
// notifies subscribers. It reports whether fn ran.
func (g *Game) update(t turn, fn func()) bool {
	g.mu.Lock()
	if t.generation != g.generation {
		g.mu.Unlock()
		return false
	}
	fn()
	g.publishAndUnlock()
	return true
}

// publishAndUnlock releases g.mu and then delivers a snapshot to subscribers.
func (g *Game) publishAndUnlock() {
	snapshot := g.snapshotLocked()
	subscribers := slices.Clone(g.subscribers)
	g.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}

func countTurns(t domain.Transcript) int {
	n := 0
	for _, m := range t {
		if m.Sender == domain.SenderUser {
			n++
		}
	}
	return n
}
