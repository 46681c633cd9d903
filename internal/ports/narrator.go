package ports

import (
	"context"

	"github.com/bnema/world-saver-cli/internal/domain"
)

type Opening struct {
	Story     string
	Sentiment float64
}

type ActionRequest struct {
	Username        string
	PreviousContext []domain.ConversationTurn
	Action          string
	Score           int
}

type ActionOutcome struct {
	Story      string
	ScoreDelta int
	Sentiment  *float64
}

type ClosingRequest struct {
	ActionRequest
	Outcome domain.Result
}

type Closing struct {
	Story string
}

// Narrator is the remote storyteller. Implementations must honour ctx
// cancellation and return an error wrapping context.Canceled when aborted.
type Narrator interface {
	Opening(ctx context.Context, username string) (Opening, error)
	SubmitAction(ctx context.Context, req ActionRequest) (ActionOutcome, error)
	Closing(ctx context.Context, req ClosingRequest) (Closing, error)
}
