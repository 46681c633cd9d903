package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transcriptOf(texts ...string) Transcript {
	t := Transcript{}
	for i, text := range texts {
		if i%2 == 0 {
			t = append(t, UserMessage(text))
			continue
		}
		t = append(t, BotMessage(text, nil))
	}
	return t
}

func TestWindowOfReturnsTrailingMessages(t *testing.T) {
	t.Parallel()

	transcript := transcriptOf("a", "b", "c", "d", "e")

	tests := []struct {
		name    string
		maxSize int
		want    []string
	}{
		{name: "shorter than transcript", maxSize: 2, want: []string{"d", "e"}},
		{name: "equal to transcript", maxSize: 5, want: []string{"a", "b", "c", "d", "e"}},
		{name: "larger than transcript", maxSize: 999, want: []string{"a", "b", "c", "d", "e"}},
		{name: "zero", maxSize: 0, want: []string{}},
		{name: "negative", maxSize: -3, want: []string{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			window := WindowOf(transcript, tc.maxSize)
			got := make([]string, 0, len(window))
			for _, m := range window {
				got = append(got, m.Text)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWindowOfIsIdempotent(t *testing.T) {
	t.Parallel()

	transcript := transcriptOf("a", "b", "c", "d", "e", "f", "g")
	once := WindowOf(transcript, 4)

	assert.Equal(t, once, WindowOf(once, 4))
	assert.Equal(t, once, WindowOf(once, 10))
}

func TestWindowOfDoesNotAliasTranscript(t *testing.T) {
	t.Parallel()

	transcript := Transcript{BotMessage("hello", Sentiment(0.5))}
	window := WindowOf(transcript, 1)
	window[0].Text = "changed"
	*window[0].Sentiment = -1

	assert.Equal(t, "hello", transcript[0].Text)
	assert.Equal(t, 0.5, *transcript[0].Sentiment)
}

func TestToConversationMapsSenders(t *testing.T) {
	t.Parallel()

	window := Transcript{
		UserMessage("plant trees"),
		BotMessage("forests return", nil),
		{Sender: Sender("system"), Text: "odd"},
	}

	assert.Equal(t, []ConversationTurn{
		{Role: RoleUser, Content: "plant trees"},
		{Role: RoleAssistant, Content: "forests return"},
		{Role: RoleAssistant, Content: "odd"},
	}, ToConversation(window))
}

func TestTranscriptBeginStreamReusesTrailingPlaceholder(t *testing.T) {
	t.Parallel()

	transcript := Transcript{UserMessage("go")}
	transcript.BeginStream(Sentiment(0.7))
	transcript.BeginStream(nil)

	require.Len(t, transcript, 2)
	last, _ := transcript.Last()
	assert.True(t, last.Streaming)
	require.NotNil(t, last.Sentiment)
	assert.Equal(t, 0.7, *last.Sentiment)
	assert.Equal(t, 1, transcript.StreamingCount())
}

func TestTranscriptAppendClosesOpenStream(t *testing.T) {
	t.Parallel()

	transcript := Transcript{}
	transcript.BeginStream(nil)
	require.True(t, transcript.SetStreamText("partial"))
	transcript.Append(BotMessage("announcement", nil))

	assert.Equal(t, 0, transcript.StreamingCount())
	assert.Equal(t, "partial", transcript[0].Text)
}

func TestTranscriptSetStreamTextRequiresStreamingEntry(t *testing.T) {
	t.Parallel()

	transcript := Transcript{BotMessage("done", nil)}

	assert.False(t, transcript.SetStreamText("nope"))
	assert.Equal(t, "done", transcript[0].Text)
}

func TestTranscriptSettleClearsStreamingFlags(t *testing.T) {
	t.Parallel()

	transcript := Transcript{UserMessage("a"), {Sender: SenderBot, Text: "b", Streaming: true}}
	settled := transcript.Settle()

	assert.Equal(t, 0, settled.StreamingCount())
	assert.Equal(t, 1, transcript.StreamingCount())
}

func TestThresholdsEvaluateChecksWinFirst(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		thresholds Thresholds
		score      int
		want       Result
	}{
		{name: "below win above lose", thresholds: DefaultThresholds(), score: 3, want: ResultNone},
		{name: "exactly win", thresholds: DefaultThresholds(), score: 15, want: ResultWin},
		{name: "above win", thresholds: DefaultThresholds(), score: 16, want: ResultWin},
		{name: "exactly lose", thresholds: DefaultThresholds(), score: -5, want: ResultLose},
		{name: "overlapping thresholds prefer win", thresholds: Thresholds{Win: 0, Lose: 0}, score: 0, want: ResultWin},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.thresholds.Evaluate(tc.score))
		})
	}
}

func TestThresholdsValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, DefaultThresholds().Validate())
	assert.ErrorContains(t, Thresholds{Win: 1, Lose: 1}.Validate(), "must be greater")
}

func TestEfficacyClampsDenominator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		score         int
		contextLength int
		want          float64
	}{
		{name: "empty context", score: 16, contextLength: 0, want: 16},
		{name: "single message", score: 16, contextLength: 1, want: 16},
		{name: "four messages", score: 16, contextLength: 4, want: 8},
		{name: "five messages", score: 15, contextLength: 5, want: 5},
		{name: "negative score", score: -6, contextLength: 6, want: -2},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.want, Efficacy(tc.score, tc.contextLength), 1e-9)
		})
	}
}

func TestSessionLockRejectsEmptyAndRelock(t *testing.T) {
	t.Parallel()

	session := NewSession()
	assert.ErrorIs(t, session.Lock("   "), ErrEmptyUsername)

	require.NoError(t, session.Lock("  Ada "))
	assert.Equal(t, "Ada", session.Username)
	assert.True(t, session.UsernameLocked)

	assert.ErrorIs(t, session.Lock("Grace"), ErrUsernameLocked)
	assert.Equal(t, "Ada", session.Username)
}

func TestSessionApplyDeltaEndsGame(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.Score = 12

	result := session.ApplyDelta(4, DefaultThresholds())

	assert.Equal(t, ResultWin, result)
	assert.Equal(t, 16, session.Score)
	assert.True(t, session.GameOver)
	assert.Equal(t, ResultWin, session.Result)
}

func TestSessionApplyDeltaSaturatesInsteadOfWrapping(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.Score = 10

	result := session.ApplyDelta(math.MaxInt, DefaultThresholds())

	assert.Equal(t, math.MaxInt, session.Score)
	assert.Equal(t, ResultWin, result)

	lost := NewSession()
	lost.Score = -10

	result = lost.ApplyDelta(math.MinInt, DefaultThresholds())

	assert.Equal(t, math.MinInt, lost.Score)
	assert.Equal(t, ResultLose, result)
}

func TestIsUsableUsername(t *testing.T) {
	t.Parallel()

	assert.False(t, IsUsableUsername(""))
	assert.False(t, IsUsableUsername("  "))
	assert.False(t, IsUsableUsername(PlaceholderUsername))
	assert.True(t, IsUsableUsername("Ada"))
}

func TestAnnouncementMentionsOutcomeAndScore(t *testing.T) {
	t.Parallel()

	win := Announcement(ResultWin, 16, 8)
	assert.Contains(t, win, "saved the world")
	assert.Contains(t, win, "16")
	assert.Contains(t, win, "8.00")

	lose := Announcement(ResultLose, -6, -2)
	assert.Contains(t, lose, "lost")
	assert.Contains(t, lose, "-6")
}
