package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tradedocs/go_backend/internal/domain/dialog"
	"tradedocs/go_backend/internal/domain/store"
)

// AdminPassword unlocks destructive actions. It is a speed bump against
// accidental deletes, not access control.
const AdminPassword = "ADMIN"

var ErrIncorrectPassword = errors.New("editor: incorrect password")

// ValidationError carries the message shown to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Service runs the save and delete workflows of the editors against a
// store, reporting outcomes through a Dialog.
type Service struct {
	Store  store.Store
	Dialog dialog.Dialog
	Now    func() time.Time
}

func New(s store.Store, d dialog.Dialog) *Service {
	return &Service{Store: s, Dialog: d, Now: time.Now}
}

// SaveResult describes a completed save.
type SaveResult struct {
	ID      string `json:"id"`
	Created bool   `json:"created"`
	// Warning is set when the save went through in a degraded form.
	Warning string `json:"warning,omitempty"`
}

func (s *Service) invalid(ctx context.Context, msg string) error {
	if err := s.Dialog.Alert(ctx, "Validation Error", msg, dialog.Error); err != nil {
		return err
	}
	return &ValidationError{Message: msg}
}

// save stores v under id, alerting success or failure with noun.
func (s *Service) save(ctx context.Context, collection, id, noun string, v any) (SaveResult, error) {
	created := id == ""
	id, err := store.Save(ctx, s.Store, collection, id, v)
	if err != nil {
		_ = s.Dialog.Alert(ctx, "Error", "Error saving "+noun+". Please try again.", dialog.Error)
		return SaveResult{}, fmt.Errorf("save %s: %w", noun, err)
	}
	verb := "updated"
	if created {
		verb = "created"
	}
	if err := s.Dialog.Alert(ctx, "Success", capitalize(noun)+" "+verb+" successfully.", dialog.Success); err != nil {
		return SaveResult{}, err
	}
	return SaveResult{ID: id, Created: created}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
