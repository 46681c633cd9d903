package domain

// Transcript is the ordered conversation. At most one entry is streaming and,
// when present, it is the last one.
type Transcript []Message

func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}

	cloned := make(Transcript, len(t))
	for i, m := range t {
		cloned[i] = m.clone()
	}
	return cloned
}

func (t Transcript) Last() (Message, bool) {
	if len(t) == 0 {
		return Message{}, false
	}
	return t[len(t)-1], true
}

// Append adds a message. Any previously streaming entry is closed first so the
// single-streaming-entry invariant holds.
func (t *Transcript) Append(m Message) {
	t.FinishStream()
	*t = append(*t, m.clone())
}

// ReplaceLast applies update to the last entry. It is a no-op on an empty transcript.
func (t *Transcript) ReplaceLast(update func(Message) Message) {
	if len(*t) == 0 {
		return
	}
	last := len(*t) - 1
	(*t)[last] = update((*t)[last])
}

// BeginStream makes the last entry a streaming bot placeholder. A trailing
// streaming placeholder is reused and keeps its sentiment unless a new one is given.
func (t *Transcript) BeginStream(sentiment *float64) {
	if last, ok := t.Last(); ok && last.Streaming {
		t.ReplaceLast(func(m Message) Message {
			m.Sender = SenderBot
			m.Text = ""
			if sentiment != nil {
				m.Sentiment = copySentiment(sentiment)
			}
			return m
		})
		return
	}

	*t = append(*t, Message{Sender: SenderBot, Streaming: true, Sentiment: copySentiment(sentiment)})
}

// SetStreamText replaces the text of the streaming entry. It reports false when
// there is no streaming entry to write to.
func (t *Transcript) SetStreamText(text string) bool {
	last, ok := t.Last()
	if !ok || !last.Streaming {
		return false
	}
	t.ReplaceLast(func(m Message) Message {
		m.Text = text
		return m
	})
	return true
}

func (t *Transcript) FinishStream() {
	if last, ok := t.Last(); ok && last.Streaming {
		t.ReplaceLast(func(m Message) Message {
			m.Streaming = false
			return m
		})
	}
}

func (t Transcript) StreamingCount() int {
	n := 0
	for _, m := range t {
		if m.Streaming {
			n++
		}
	}
	return n
}

// Settle clears every streaming flag, used when restoring a transcript that was
// persisted mid-stream.
func (t Transcript) Settle() Transcript {
	settled := t.Clone()
	for i := range settled {
		settled[i].Streaming = false
	}
	return settled
}
