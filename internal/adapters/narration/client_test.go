package narration

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/world-saver-cli/internal/domain"
	"github.com/bnema/world-saver-cli/internal/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return Client{API: DefaultAPI(server.URL), HTTPClient: server.Client()}
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	data, err := io.ReadAll(r.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

func TestOpeningPostsUsernameAndReadsStory(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/initial-message", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, map[string]any{"username": "Ada"}, decodeBody(t, r))

		_, _ = w.Write([]byte(`{"story":"The seas rise.","sentiment":-0.4}`))
	})

	opening, err := client.Opening(context.Background(), "Ada")
	require.NoError(t, err)
	assert.Equal(t, "The seas rise.", opening.Story)
	assert.InDelta(t, -0.4, opening.Sentiment, 1e-9)
}

func TestOpeningFieldFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		body          string
		wantStory     string
		wantSentiment float64
	}{
		{name: "text and score", body: `{"text":"Smoke everywhere.","score":0.5}`, wantStory: "Smoke everywhere.", wantSentiment: 0.5},
		{name: "story wins over text", body: `{"story":"A","text":"B"}`, wantStory: "A"},
		{name: "empty object", body: `{}`},
		{name: "sentiment as string", body: `{"story":"x","sentiment":"0.25"}`, wantStory: "x", wantSentiment: 0.25},
		{name: "garbage sentiment", body: `{"story":"x","sentiment":"calm"}`, wantStory: "x"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})

			opening, err := client.Opening(context.Background(), "Ada")
			require.NoError(t, err)
			assert.Equal(t, tc.wantStory, opening.Story)
			assert.InDelta(t, tc.wantSentiment, opening.Sentiment, 1e-9)
		})
	}
}

func TestSubmitActionSendsConversationAndScore(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/submit-action", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "Ada", body["username"])
		assert.Equal(t, "plant trees", body["action"])
		assert.EqualValues(t, 12, body["score"])
		assert.Equal(t, []any{
			map[string]any{"role": "assistant", "content": "Hello"},
			map[string]any{"role": "user", "content": "plant trees"},
		}, body["previouscontext"])

		_, _ = w.Write([]byte(`{"story":"Forests return.","scoreDelta":3.6,"sentiment":0.8}`))
	})

	outcome, err := client.SubmitAction(context.Background(), ports.ActionRequest{
		Username: "Ada",
		PreviousContext: []domain.ConversationTurn{
			{Role: domain.RoleAssistant, Content: "Hello"},
			{Role: domain.RoleUser, Content: "plant trees"},
		},
		Action: "plant trees",
		Score:  12,
	})
	require.NoError(t, err)
	assert.Equal(t, "Forests return.", outcome.Story)
	assert.Equal(t, 4, outcome.ScoreDelta)
	require.NotNil(t, outcome.Sentiment)
	assert.InDelta(t, 0.8, *outcome.Sentiment, 1e-9)
}

func TestSubmitActionDefaultsWhenFieldsMissing(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		assert.Equal(t, []any{}, body["previouscontext"])
		_, _ = w.Write([]byte(`{"unrelated":true}`))
	})

	outcome, err := client.SubmitAction(context.Background(), ports.ActionRequest{Username: "Ada", Action: "wait"})
	require.NoError(t, err)
	assert.Empty(t, outcome.Story)
	assert.Zero(t, outcome.ScoreDelta)
	assert.Nil(t, outcome.Sentiment)
}

func TestSubmitActionReadsOutputField(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"output":"Quiet.","scoreDelta":-2}`))
	})

	outcome, err := client.SubmitAction(context.Background(), ports.ActionRequest{Username: "Ada", Action: "wait"})
	require.NoError(t, err)
	assert.Equal(t, "Quiet.", outcome.Story)
	assert.Equal(t, -2, outcome.ScoreDelta)
}

func TestSubmitActionClampsOutOfRangeScoreDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "huge positive", body: `{"story":"x","scoreDelta":1e20}`, want: math.MaxInt32},
		{name: "huge negative", body: `{"story":"x","scoreDelta":-1e20}`, want: -math.MaxInt32},
		{name: "huge numeric string", body: `{"story":"x","scoreDelta":"9e18"}`, want: math.MaxInt32},
		{name: "beyond float64", body: `{"story":"x","scoreDelta":1e400}`, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})

			outcome, err := client.SubmitAction(context.Background(), ports.ActionRequest{Username: "Ada", Action: "x"})
			require.NoError(t, err)
			assert.Equal(t, tc.want, outcome.ScoreDelta)
			assert.Equal(t, "x", outcome.Story)
		})
	}
}

func TestClosingSendsOutcome(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/win-lose-description", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "win", body["outcome"])
		assert.Equal(t, "Ada", body["username"])
		assert.EqualValues(t, 16, body["score"])
		_, _ = w.Write([]byte(`{"text":"The planet breathes again."}`))
	})

	closing, err := client.Closing(context.Background(), ports.ClosingRequest{
		ActionRequest: ports.ActionRequest{Username: "Ada", Action: "plant trees", Score: 16},
		Outcome:       domain.ResultWin,
	})
	require.NoError(t, err)
	assert.Equal(t, "The planet breathes again.", closing.Story)
}

func TestClientReturnsStatusErrorOnNon2xx(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down\n"))
	})

	_, err := client.SubmitAction(context.Background(), ports.ActionRequest{Username: "Ada", Action: "x"})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream down", statusErr.Body)
	assert.Contains(t, err.Error(), "submit action")
}

func TestClientRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"story":`))
	})

	_, err := client.Opening(context.Background(), "Ada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClientCancellationSatisfiesContextCanceled(t *testing.T) {
	t.Parallel()

	received := make(chan struct{})
	release := make(chan struct{})
	client := newTestClient(t, func(_ http.ResponseWriter, r *http.Request) {
		_, _ = io.ReadAll(r.Body)
		close(received)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-received
		cancel()
	}()

	_, err := client.SubmitAction(ctx, ports.ActionRequest{Username: "Ada", Action: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientTimesOutWithoutCallerDeadline(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	client := Client{API: DefaultAPI(server.URL), HTTPClient: server.Client(), RequestTimeout: 20 * time.Millisecond}

	_, err := client.Opening(context.Background(), "Ada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request opening")
}

func TestBuildAPIURLValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		base    string
		path    string
		want    string
		wantErr string
	}{
		{name: "joins path", base: "http://localhost:5000", path: "/api/submit-action", want: "http://localhost:5000/api/submit-action"},
		{name: "missing base", base: "", path: "/api", wantErr: "base url is required"},
		{name: "bad scheme", base: "ftp://host", path: "/api", wantErr: "http or https"},
		{name: "missing host", base: "http://", path: "/api", wantErr: "host is required"},
		{name: "missing path", base: "http://localhost", path: "", wantErr: "path is required"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := buildAPIURL(tc.base, tc.path)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
