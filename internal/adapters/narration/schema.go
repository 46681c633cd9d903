package narration

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/bnema/world-saver-cli/internal/domain"
)

type openingRequest struct {
	Username string `json:"username"`
}

type actionRequest struct {
	Username        string                    `json:"username"`
	PreviousContext []domain.ConversationTurn `json:"previouscontext"`
	Action          string                    `json:"action"`
	Score           int                       `json:"score"`
}

type closingRequest struct {
	actionRequest
	Outcome domain.Result `json:"outcome"`
}

// Every field is optional. Defaults:
//   opening: story|text, sentiment|score, else 0
//   action:  story|text|output, else ""; scoreDelta else 0; sentiment else null
//   closing: story|text, else "" (caller reuses the action story)
type openingResponse struct {
	Story     *string        `json:"story"`
	Text      *string        `json:"text"`
	Sentiment optionalNumber `json:"sentiment"`
	Score     optionalNumber `json:"score"`
}

type actionResponse struct {
	Story      *string        `json:"story"`
	Text       *string        `json:"text"`
	Output     *string        `json:"output"`
	ScoreDelta optionalNumber `json:"scoreDelta"`
	Sentiment  optionalNumber `json:"sentiment"`
}

type closingResponse struct {
	Story *string `json:"story"`
	Text  *string `json:"text"`
}

func firstText(candidates ...*string) string {
	for _, candidate := range candidates {
		if candidate != nil && *candidate != "" {
			return *candidate
		}
	}
	return ""
}

// optionalNumber accepts a JSON number or a numeric string. Anything else
// leaves it unset instead of failing the whole response.
type optionalNumber struct {
	value *float64
}

func (n *optionalNumber) UnmarshalJSON(data []byte) error {
	n.value = nil

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var raw any
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil
	}

	switch v := raw.(type) {
	case float64:
		n.value = &v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
			n.value = &parsed
		}
	}

	return nil
}

func (n optionalNumber) pointer() *float64 {
	if n.value == nil {
		return nil
	}
	v := *n.value
	return &v
}

func (n optionalNumber) or(fallback float64) float64 {
	if n.value == nil {
		return fallback
	}
	return *n.value
}

func firstNumber(fallback float64, candidates ...optionalNumber) float64 {
	for _, candidate := range candidates {
		if candidate.value != nil {
			return *candidate.value
		}
	}
	return fallback
}

// maxScoreDelta bounds a single turn's delta so the float conversion cannot overflow.
const maxScoreDelta = math.MaxInt32

func toScoreDelta(n optionalNumber) int {
	v := math.Round(n.or(0))
	switch {
	case math.IsNaN(v):
		return 0
	case v > maxScoreDelta:
		return maxScoreDelta
	case v < -maxScoreDelta:
		return -maxScoreDelta
	}
	return int(v)
}
