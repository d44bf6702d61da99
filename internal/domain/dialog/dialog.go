package dialog

import (
	"context"
	"sync"
)

type Kind string

const (
	Info    Kind = "info"
	Success Kind = "success"
	Warning Kind = "warning"
	Error   Kind = "error"
)

// Dialog asks the user something and waits for the answer.
type Dialog interface {
	Alert(ctx context.Context, title, message string, kind Kind) error
	Confirm(ctx context.Context, title, message string) (bool, error)
	// PromptPassword returns ok=false when the prompt was dismissed.
	PromptPassword(ctx context.Context, title, message string) (answer string, ok bool, err error)
}

type Message struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// Recorder answers from preset values and keeps every alert, so a request
// handler can replay them in its response.
type Recorder struct {
	ConfirmAnswer bool
	Password      *string

	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Alert(ctx context.Context, title, message string, kind Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Title: title, Message: message, Kind: kind})
	return nil
}

func (r *Recorder) Confirm(ctx context.Context, title, message string) (bool, error) {
	return r.ConfirmAnswer, nil
}

func (r *Recorder) PromptPassword(ctx context.Context, title, message string) (string, bool, error) {
	if r.Password == nil {
		return "", false, nil
	}
	return *r.Password, true, nil
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}
