package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/world-saver-cli/internal/domain"
	"github.com/bnema/world-saver-cli/internal/ports"
)

const maxResponseBytes = 1 << 20

const (
	DefaultOpeningPath = "/api/initial-message"
	DefaultActionPath  = "/api/submit-action"
	DefaultClosingPath = "/api/win-lose-description"
)

type API struct {
	BaseURL     string
	OpeningPath string
	ActionPath  string
	ClosingPath string
}

func DefaultAPI(baseURL string) API {
	return API{
		BaseURL:     baseURL,
		OpeningPath: DefaultOpeningPath,
		ActionPath:  DefaultActionPath,
		ClosingPath: DefaultClosingPath,
	}
}

// StatusError reports a non-2xx response from the narration service.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Client talks JSON over HTTP to the narration service.
type Client struct {
	API            API
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.Narrator = Client{}

func (c Client) Opening(ctx context.Context, username string) (ports.Opening, error) {
	var payload openingResponse
	if err := c.post(ctx, "request opening", c.API.OpeningPath, openingRequest{Username: username}, &payload); err != nil {
		return ports.Opening{}, err
	}

	return ports.Opening{
		Story:     firstText(payload.Story, payload.Text),
		Sentiment: firstNumber(0, payload.Sentiment, payload.Score),
	}, nil
}

func (c Client) SubmitAction(ctx context.Context, req ports.ActionRequest) (ports.ActionOutcome, error) {
	var payload actionResponse
	if err := c.post(ctx, "submit action", c.API.ActionPath, toActionRequest(req), &payload); err != nil {
		return ports.ActionOutcome{}, err
	}

	return ports.ActionOutcome{
		Story:      firstText(payload.Story, payload.Text, payload.Output),
		ScoreDelta: toScoreDelta(payload.ScoreDelta),
		Sentiment:  payload.Sentiment.pointer(),
	}, nil
}

func (c Client) Closing(ctx context.Context, req ports.ClosingRequest) (ports.Closing, error) {
	body := closingRequest{actionRequest: toActionRequest(req.ActionRequest), Outcome: req.Outcome}

	var payload closingResponse
	if err := c.post(ctx, "request closing", c.API.ClosingPath, body, &payload); err != nil {
		return ports.Closing{}, err
	}

	return ports.Closing{Story: firstText(payload.Story, payload.Text)}, nil
}

func toActionRequest(req ports.ActionRequest) actionRequest {
	previous := req.PreviousContext
	if previous == nil {
		previous = []domain.ConversationTurn{}
	}
	return actionRequest{
		Username:        req.Username,
		PreviousContext: previous,
		Action:          req.Action,
		Score:           req.Score,
	}
}

func (c Client) post(ctx context.Context, op string, path string, body any, out any) error {
	endpoint, err := buildAPIURL(c.API.BaseURL, path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ws/narration")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", op, ctxErr)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}

	return nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
