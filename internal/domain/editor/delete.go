package editor

import (
	"context"
	"fmt"
	"strings"

	"tradedocs/go_backend/internal/domain/dialog"
	"tradedocs/go_backend/internal/domain/store"
)

var deleteNouns = map[string]string{
	store.Clients:            "Client",
	store.Suppliers:          "Supplier",
	store.InspectionRequests: "Inspection Request",
}

// RequiresPassword reports whether deleting from collection goes through
// the password prompt.
func RequiresPassword(collection string) bool {
	_, ok := deleteNouns[collection]
	return ok
}

// DeleteWithPassword asks for the admin password and deletes the record
// when it matches. A dismissed or empty prompt deletes nothing and is not
// an error.
func (s *Service) DeleteWithPassword(ctx context.Context, collection, id string) (bool, error) {
	noun, ok := deleteNouns[collection]
	if !ok {
		return false, fmt.Errorf("%w: %q has no password delete", store.ErrUnknownCollection, collection)
	}
	answer, ok, err := s.Dialog.PromptPassword(ctx, "Delete "+noun, "Enter password to confirm deletion:")
	if err != nil || !ok || answer == "" {
		return false, err
	}
	if !strings.EqualFold(answer, AdminPassword) {
		if err := s.Dialog.Alert(ctx, "Error", "Incorrect password.", dialog.Error); err != nil {
			return false, err
		}
		return false, ErrIncorrectPassword
	}
	return s.remove(ctx, collection, id, noun)
}

// DeleteInvoice asks for a plain confirmation before deleting.
func (s *Service) DeleteInvoice(ctx context.Context, id string) (bool, error) {
	ok, err := s.Dialog.Confirm(ctx, "Delete Invoice", "Are you sure you want to delete this invoice?")
	if err != nil || !ok {
		return false, err
	}
	return s.remove(ctx, store.Invoices, id, "Invoice")
}

func (s *Service) remove(ctx context.Context, collection, id, noun string) (bool, error) {
	if err := s.Store.Delete(ctx, collection, id); err != nil {
		_ = s.Dialog.Alert(ctx, "Error", "Error deleting "+strings.ToLower(noun)+". Please try again.", dialog.Error)
		return false, err
	}
	if err := s.Dialog.Alert(ctx, "Success", noun+" deleted successfully.", dialog.Success); err != nil {
		return true, err
	}
	return true, nil
}
