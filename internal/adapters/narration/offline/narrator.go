// Package offline is a deterministic narrator that needs no network. The same
// action always produces the same vignette and score.
package offline

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/bnema/world-saver-cli/internal/domain"
	"github.com/bnema/world-saver-cli/internal/ports"
)

var intros = [...]string{
	`Against a sky of neon ash, your choice to %q caused a surprising chain reaction:`,
	`In the last library of the city, someone read about your idea to %q, and everything changed:`,
	`The pigeons (finally) took notice when people decided to %q. The consequences:`,
	`A single streetlight blinked and, because of your idea to %q, an entire neighborhood started to hum:`,
	`Legend says that when people pledged to %q, the vending machines felt ashamed and did this:`,
}

var endings = [...]string{
	`Soon, rivers started tasting faintly of cinnamon. The world sighed and some plants learned to dance.`,
	`Within days, bicycles developed their own opinions and started lecturing commuters. It was touching.`,
	`All plastic balloons deflated politely and apologized to children. The sun looked less inconvenienced.`,
	`Traffic lights joined a choir and sang commuters through the crosswalk. People clapped awkwardly.`,
	`Giant rubber ducks formed a union and demanded better working conditions. Negotiations are ongoing.`,
}

const openingStory = "The world is crumbling, %s. Sirens hum, the oceans sulk, and everyone is looking at you. What will you do?"

// Narrator implements ports.Narrator without a remote service.
type Narrator struct{}

var _ ports.Narrator = Narrator{}

func (Narrator) Opening(ctx context.Context, username string) (ports.Opening, error) {
	if err := ctx.Err(); err != nil {
		return ports.Opening{}, err
	}
	return ports.Opening{Story: fmt.Sprintf(openingStory, username), Sentiment: -0.3}, nil
}

func (Narrator) SubmitAction(ctx context.Context, req ports.ActionRequest) (ports.ActionOutcome, error) {
	if err := ctx.Err(); err != nil {
		return ports.ActionOutcome{}, err
	}

	h := hash(req.Action)
	delta := ScoreDelta(h)
	sentiment := float64(delta) / 4
	if sentiment > 1 {
		sentiment = 1
	}

	return ports.ActionOutcome{
		Story:      Vignette(req.Action),
		ScoreDelta: delta,
		Sentiment:  &sentiment,
	}, nil
}

func (Narrator) Closing(ctx context.Context, req ports.ClosingRequest) (ports.Closing, error) {
	if err := ctx.Err(); err != nil {
		return ports.Closing{}, err
	}

	switch req.Outcome {
	case domain.ResultWin:
		return ports.Closing{Story: fmt.Sprintf("Bells ring in every city. %s, the rubber ducks have named a holiday after you.", req.Username)}, nil
	case domain.ResultLose:
		return ports.Closing{Story: fmt.Sprintf("The last vending machine powers down. Sorry, %s. The world could not be saved this time.", req.Username)}, nil
	default:
		return ports.Closing{}, nil
	}
}

// Vignette returns the story for an action.
func Vignette(action string) string {
	seed := hash(action) % uint32(len(intros))
	intro := fmt.Sprintf(intros[seed], action)
	ending := endings[(seed+2)%uint32(len(endings))]
	return intro + " " + ending
}

// ScoreDelta maps a hash to a delta in [-2, 4].
func ScoreDelta(h uint32) int {
	return int(h%7) - 2
}

func hash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
