package domain

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one transcript entry. Sentiment is only set on bot messages.
type Message struct {
	Sender    Sender   `json:"sender"`
	Text      string   `json:"text"`
	Streaming bool     `json:"streaming"`
	Sentiment *float64 `json:"sentiment"`
}

func UserMessage(text string) Message {
	return Message{Sender: SenderUser, Text: text}
}

func BotMessage(text string, sentiment *float64) Message {
	return Message{Sender: SenderBot, Text: text, Sentiment: copySentiment(sentiment)}
}

func Sentiment(v float64) *float64 {
	return &v
}

func copySentiment(s *float64) *float64 {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func (m Message) clone() Message {
	m.Sentiment = copySentiment(m.Sentiment)
	return m
}
