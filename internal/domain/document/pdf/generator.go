package pdf

import "tradedocs/go_backend/internal/domain/document"

// Generator renders documents to PDF. Implementations are pure: the same
// input always yields an equivalent document and no shared state changes.
type Generator interface {
	// Invoice renders a monetary document. supplier may be nil; when set,
	// its stamp is overlaid.
	Invoice(doc document.MonetaryDocument, supplier *document.Supplier) ([]byte, error)
	// Inspection renders an inspection request letter. A nil supplier or
	// client yields a one-page placeholder instead of an error.
	Inspection(req document.InspectionRequest, supplier *document.Supplier, client *document.Client) ([]byte, error)
}
