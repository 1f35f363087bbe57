package domain

import "time"

// MessageKind classifies a single chat line. Exactly one kind per message.
type MessageKind int

const (
	KindText MessageKind = iota
	KindMedia
	KindSystem
	KindDeleted
	KindURL
)

func (k MessageKind) String() string {
	switch k {
	case KindMedia:
		return "media"
	case KindSystem:
		return "system"
	case KindDeleted:
		return "deleted"
	case KindURL:
		return "url"
	default:
		return "text"
	}
}

// Message is one line of chat history. Messages are never mutated in place:
// enhancement produces a new Message carrying the same Seq.
type Message struct {
	// Seq is the position in the original transcript, assigned once by the
	// parser and preserved through every later stage.
	Seq       int
	Timestamp time.Time
	Sender    string // empty for system / informational lines
	Content   string
	Kind      MessageKind
	MediaRef  string // literal filename from the transcript, set iff Kind == KindMedia
}

// FilterByTime returns the messages within the given range.
// nil bounds mean no lower/upper limit.
func FilterByTime(messages []Message, from, to *time.Time) []Message {
	if from == nil && to == nil {
		return messages
	}
	filtered := make([]Message, 0, len(messages))
	for _, msg := range messages {
		if from != nil && msg.Timestamp.Before(*from) {
			continue
		}
		if to != nil && msg.Timestamp.After(*to) {
			continue
		}
		filtered = append(filtered, msg)
	}
	return filtered
}
