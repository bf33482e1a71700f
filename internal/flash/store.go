package flash

import (
	"context"
	"errors"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is a one-shot notice shown on the page after a redirect.
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

func Success(text string) Message {
	return Message{Kind: KindSuccess, Text: text}
}

func Error(text string) Message {
	return Message{Kind: KindError, Text: text}
}

// Store keeps pending messages per browser session until they are popped.
type Store interface {
	Push(ctx context.Context, sessionID string, msg Message) error

	// Pop returns and clears every pending message for the session, oldest
	// first. A session with nothing pending yields an empty slice.
	Pop(ctx context.Context, sessionID string) ([]Message, error)
}

var ErrEmptySession = errors.New("flash session id is empty")
