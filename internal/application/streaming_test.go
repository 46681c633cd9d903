package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealEmitsEveryPrefixInOrder(t *testing.T) {
	t.Parallel()

	var prefixes []string
	applied, err := Streamer{}.Reveal(context.Background(), "héllo", func(prefix string) bool {
		prefixes = append(prefixes, prefix)
		return true
	})

	require.NoError(t, err)
	assert.Equal(t, 5, applied)
	assert.Equal(t, []string{"h", "hé", "hél", "héll", "héllo"}, prefixes)
}

func TestRevealIsDeterministic(t *testing.T) {
	t.Parallel()

	collect := func() []string {
		var out []string
		_, err := Streamer{}.Reveal(context.Background(), "save it", func(prefix string) bool {
			out = append(out, prefix)
			return true
		})
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, collect(), collect())
}

func TestRevealEmptyTextEmitsSingleEmptyStep(t *testing.T) {
	t.Parallel()

	var prefixes []string
	applied, err := Streamer{Cadence: time.Millisecond}.Reveal(context.Background(), "", func(prefix string) bool {
		prefixes = append(prefixes, prefix)
		return true
	})

	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.Equal(t, []string{""}, prefixes)
}

func TestRevealStopsWhenStepDeclines(t *testing.T) {
	t.Parallel()

	var last string
	applied, err := Streamer{}.Reveal(context.Background(), "abcdef", func(prefix string) bool {
		if len(prefix) > 2 {
			return false
		}
		last = prefix
		return true
	})

	require.ErrorIs(t, err, ErrRevealCancelled)
	assert.Equal(t, 2, applied)
	assert.Equal(t, "ab", last)
}

func TestRevealStopsWhenContextDone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cadence time.Duration
	}{
		{name: "paced", cadence: time.Millisecond},
		{name: "unpaced", cadence: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			called := false
			applied, err := Streamer{Cadence: tc.cadence}.Reveal(ctx, "abc", func(string) bool {
				called = true
				return true
			})

			require.ErrorIs(t, err, ErrRevealCancelled)
			assert.Zero(t, applied)
			assert.False(t, called)
		})
	}
}

func TestRevealCancelledMidwayKeepsPartialText(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var last string
	applied, err := Streamer{Cadence: time.Millisecond}.Reveal(ctx, "the world is saved", func(prefix string) bool {
		last = prefix
		if len(prefix) == 3 {
			cancel()
		}
		return true
	})

	require.ErrorIs(t, err, ErrRevealCancelled)
	assert.Equal(t, 3, applied)
	assert.Equal(t, "the", last)
}
