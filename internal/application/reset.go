package application

import (
	"context"
	"fmt"

	"github.com/bnema/world-saver-cli/internal/domain"
	"github.com/bnema/world-saver-cli/internal/ports"
)

const ResetPrompt = "Reset the app? This will clear username, chat history and UI state."

// Reset asks confirmer and, on a yes, cancels in-flight narration and
// streaming, clears every persisted key and returns the game to
// AwaitingUsername. It reports whether the reset happened.
func (g *Game) Reset(ctx context.Context, confirmer ports.Confirmer) (bool, error) {
	confirmed, err := confirmer.Confirm(ctx, ResetPrompt)
	if err != nil {
		return false, fmt.Errorf("confirm reset: %w", err)
	}
	if !confirmed {
		return false, nil
	}

	g.mu.Lock()
	g.invalidateLocked()
	g.store.clear(ctx)
	g.session = domain.NewSession()
	g.state = domain.StateAwaitingUsername
	g.openingRequested = false
	g.publishAndUnlock()

	return true, nil
}

// Close abandons in-flight work without touching persisted state.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.invalidateLocked()
}

func (g *Game) invalidateLocked() {
	g.cancelLive()
	g.generation++
	g.live, g.cancelLive = context.WithCancel(context.Background())
}
