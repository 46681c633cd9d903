package domain

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is the wire shape of one context entry sent to the narrator.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// WindowOf returns the trailing maxSize messages in order. A non-positive
// maxSize yields an empty window.
func WindowOf(transcript Transcript, maxSize int) Transcript {
	if maxSize <= 0 || len(transcript) == 0 {
		return Transcript{}
	}
	start := len(transcript) - maxSize
	if start < 0 {
		start = 0
	}
	return transcript[start:].Clone()
}

func ToConversation(window Transcript) []ConversationTurn {
	turns := make([]ConversationTurn, 0, len(window))
	for _, m := range window {
		role := RoleAssistant
		if m.Sender == SenderUser {
			role = RoleUser
		}
		turns = append(turns, ConversationTurn{Role: role, Content: m.Text})
	}
	return turns
}
