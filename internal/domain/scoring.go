package domain

import "fmt"

type Result string

const (
	ResultNone Result = "none"
	ResultWin  Result = "win"
	ResultLose Result = "lose"
)

const (
	DefaultWinThreshold  = 15
	DefaultLoseThreshold = -5
)

type Thresholds struct {
	Win  int
	Lose int
}

func DefaultThresholds() Thresholds {
	return Thresholds{Win: DefaultWinThreshold, Lose: DefaultLoseThreshold}
}

func (t Thresholds) Validate() error {
	if t.Win <= t.Lose {
		return fmt.Errorf("win threshold %d must be greater than lose threshold %d", t.Win, t.Lose)
	}
	return nil
}

// Evaluate checks the win threshold before the lose threshold.
func (t Thresholds) Evaluate(score int) Result {
	if score >= t.Win {
		return ResultWin
	}
	if score <= t.Lose {
		return ResultLose
	}
	return ResultNone
}

// Efficacy is the final score per approximate turn, where a turn is a
// user/bot pair in the context snapshot.
func Efficacy(finalScore, contextLength int) float64 {
	turns := (contextLength + 1) / 2
	if turns < 1 {
		turns = 1
	}
	return float64(finalScore) / float64(turns)
}

func Announcement(result Result, finalScore int, efficacy float64) string {
	switch result {
	case ResultWin:
		return fmt.Sprintf("🏆 You saved the world! Final score: %d. Efficacy: %.2f points per turn.", finalScore, efficacy)
	case ResultLose:
		return fmt.Sprintf("💀 The world is lost. Final score: %d. Efficacy: %.2f points per turn.", finalScore, efficacy)
	default:
		return fmt.Sprintf("Game over. Final score: %d. Efficacy: %.2f points per turn.", finalScore, efficacy)
	}
}
