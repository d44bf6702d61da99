package narrative

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tradedocs/go_backend/internal/domain/document"
)

const (
	Title           = "RICHIESTA ISPEZIONE"
	AttachmentLabel = "Allegato:"
	PreviewMissing  = "Please select a supplier and client to see the preview."

	defaultCity    = "Matadi"
	defaultCountry = "Democratic Republic of Congo"
	defaultLicense = "N/A"
)

var italianDays = map[string]string{
	"monday":    "lunedì",
	"tuesday":   "martedì",
	"wednesday": "mercoledì",
	"thursday":  "giovedì",
	"friday":    "venerdì",
	"saturday":  "sabato",
	"sunday":    "domenica",
}

var italianMonths = map[string]string{
	"january":   "gennaio",
	"february":  "febbraio",
	"march":     "marzo",
	"april":     "aprile",
	"may":       "maggio",
	"june":      "giugno",
	"july":      "luglio",
	"august":    "agosto",
	"september": "settembre",
	"october":   "ottobre",
	"november":  "novembre",
	"december":  "dicembre",
}

var lower = cases.Lower(language.Und)

// translate looks up an English day or month name; unknown names are
// returned lower-cased.
func translate(name string, table map[string]string) string {
	key := lower.String(name)
	if it, ok := table[key]; ok {
		return it
	}
	return key
}

func DayName(d time.Weekday) string { return translate(d.String(), italianDays) }
func MonthName(m time.Month) string { return translate(m.String(), italianMonths) }

// Paragraphs returns the request and loading paragraphs of an inspection
// letter. The output depends only on its arguments.
func Paragraphs(s document.Supplier, c document.Client, r document.InspectionRequest) [2]string {
	r = r.Normalized()
	first := fmt.Sprintf(
		"Richiedo ispezione per un container %s destinato alla ditta %s - %s - %s, con numero di licenza %s.",
		r.ContainerType, c.Name, or(c.City, defaultCity), or(c.Country, defaultCountry), or(r.LicenseNumber, defaultLicense),
	)
	second := fmt.Sprintf(
		"Il container si carica presso %s in %s - %s %s (%s) - il %s alle %s.",
		s.Name, s.Address, s.ZipCode, s.City, s.Country, LongDate(r.InspectionDate), r.InspectionTime,
	)
	return [2]string{first, second}
}

// Text joins both paragraphs with a blank line.
func Text(s document.Supplier, c document.Client, r document.InspectionRequest) string {
	p := Paragraphs(s, c, r)
	return p[0] + "\n\n" + p[1]
}

// LongDate renders 2024-11-18 as "lunedì 18 di novembre 2024". Input that
// is not a calendar date is returned as is.
func LongDate(date string) string {
	t, ok := document.ParseDate(date)
	if !ok {
		return strings.TrimSpace(date)
	}
	return fmt.Sprintf("%s %02d di %s %d", DayName(t.Weekday()), t.Day(), MonthName(t.Month()), t.Year())
}

// Attachments is the fixed checklist annexed to every request.
func Attachments(r document.InspectionRequest) []string {
	return []string{
		"Fattura Proforma",
		"Licenza " + or(r.LicenseNumber, defaultLicense),
		"Request for information",
	}
}

// Preview is the plain-text letter shown while editing.
func Preview(s *document.Supplier, c *document.Client, r document.InspectionRequest) string {
	if s == nil || c == nil {
		return PreviewMissing
	}
	var b strings.Builder
	b.WriteString(Title)
	b.WriteString("\n\n")
	b.WriteString(Text(*s, *c, r))
	b.WriteString("\n\n")
	b.WriteString(AttachmentLabel)
	for _, a := range Attachments(r) {
		b.WriteString("\n")
		b.WriteString(a)
	}
	return b.String()
}

func or(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
