package editor

import (
	"bytes"
	"context"
	"encoding/json"

	"tradedocs/go_backend/internal/domain/dialog"
)

const (
	unsavedTitle   = "Unsaved Changes"
	unsavedMessage = "You have unsaved changes. Are you sure you want to leave?"
)

// Session tracks whether the record open in one editor differs from what
// was loaded or last saved. Each editor owns its own Session.
type Session struct {
	initial []byte
	current []byte
}

func NewSession(v any) (*Session, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &Session{initial: b, current: b}, nil
}

// Update records the current state of the edited record.
func (s *Session) Update(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.current = b
	return nil
}

func (s *Session) Dirty() bool { return !bytes.Equal(s.initial, s.current) }

// MarkSaved makes the current state the new baseline.
func (s *Session) MarkSaved() { s.initial = s.current }

// Guard reports whether the user may leave the editor. It only asks when
// there are unsaved changes. A nil session never blocks.
func (s *Session) Guard(ctx context.Context, d dialog.Dialog) (bool, error) {
	if s == nil || !s.Dirty() {
		return true, nil
	}
	return d.Confirm(ctx, unsavedTitle, unsavedMessage)
}
