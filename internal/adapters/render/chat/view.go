package chat

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/world-saver-cli/internal/application"
	"github.com/bnema/world-saver-cli/internal/domain"
)

const streamCursor = "▌"

type RenderOptions struct {
	Thresholds domain.Thresholds
	Width      int
}

func renderView(snapshot application.Snapshot, opts RenderOptions, s styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(snapshot, opts, s),
		renderTranscript(snapshot.Session.Transcript, opts, s),
	)
}

func renderHeader(snapshot application.Snapshot, opts RenderOptions, s styles) string {
	session := snapshot.Session
	player := session.Username
	if !session.UsernameLocked {
		player = "(no username)"
	}

	lines := []string{
		s.title.Render("🌍 Save the World"),
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.header.Render(fmt.Sprintf("player: %s  score: %d ", player, session.Score)),
			renderScoreBar(session.Score, opts.Thresholds, 24, s),
		),
	}

	switch session.Result {
	case domain.ResultWin:
		lines = append(lines, s.win.Render("The world is saved."))
	case domain.ResultLose:
		lines = append(lines, s.lose.Render("The world is lost."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTranscript(transcript domain.Transcript, opts RenderOptions, s styles) string {
	if len(transcript) == 0 {
		return s.section.Render(s.empty.Render("No messages yet."))
	}

	lines := make([]string, 0, len(transcript))
	for _, message := range transcript {
		lines = append(lines, s.section.Render(renderMessage(message, opts, s)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderMessage(message domain.Message, opts RenderOptions, s styles) string {
	text := message.Text
	if message.Streaming {
		text += streamCursor
	}

	body := lipgloss.NewStyle()
	if opts.Width > 4 {
		body = body.Width(opts.Width - 2)
	}

	if message.Sender == domain.SenderUser {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.userLabel.Render("you"),
			body.Inherit(s.user).Render(text),
		)
	}

	textStyle := s.neutral
	if message.Sentiment != nil {
		textStyle = lipgloss.NewStyle().Foreground(SentimentColor(*message.Sentiment))
	}
	if strings.HasPrefix(message.Text, "(error)") {
		textStyle = s.warning
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.botLabel.Render("narrator"),
		body.Inherit(textStyle).Render(text),
	)
}

// SentimentColor tints negative sentiment red and positive sentiment green on
// a dark grey base. Values are clamped to [-1, 1].
func SentimentColor(sentiment float64) lipgloss.Color {
	const base = 0x44

	if math.IsNaN(sentiment) {
		sentiment = 0
	}
	sentiment = math.Max(-1, math.Min(1, sentiment))

	red, green, blue := base, base, base
	if sentiment < 0 {
		red = int(math.Floor(-187*sentiment)) + base
	} else {
		green = int(math.Floor(187*sentiment)) + base
	}

	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", red, green, blue))
}

// renderScoreBar shows where score sits between the lose and win thresholds.
func renderScoreBar(score int, thresholds domain.Thresholds, width int, s styles) string {
	if width <= 0 || thresholds.Win <= thresholds.Lose {
		return ""
	}

	span := float64(thresholds.Win - thresholds.Lose)
	fraction := float64(score-thresholds.Lose) / span
	filled := int(math.Round(float64(width) * fraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

// Render draws a snapshot once, for non-interactive output.
func Render(snapshot application.Snapshot, opts RenderOptions) string {
	return renderView(snapshot, opts, newStyles())
}

// RenderMessages draws messages without the header.
func RenderMessages(messages domain.Transcript, opts RenderOptions) string {
	return renderTranscript(messages, opts, newStyles())
}
