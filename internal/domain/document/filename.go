package document

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-zA-Z0-9]`)
	underscore = regexp.MustCompile(`_+`)
	whitespace = regexp.MustCompile(`\s+`)
)

const shortNameLen = 15

// InvoiceFilename builds {From}_to_{To}_{Type}_{Date}.pdf from the first
// two words of each party name.
func InvoiceFilename(d MonetaryDocument, now time.Time) string {
	kind := "Invoice"
	if d.DocumentType == TypeProforma {
		kind = "Proforma"
	}
	date := now.Format(DateLayout)
	if t, ok := ParseDate(d.Date); ok {
		date = t.Format(DateLayout)
	}
	company := cleanComponent(shortName(d.From.Name, "Company"))
	client := cleanComponent(shortName(d.To.Name, "Client"))
	return company + "_to_" + client + "_" + kind + "_" + date + ".pdf"
}

func InspectionFilename(client Client, r InspectionRequest) string {
	name := whitespace.ReplaceAllString(strings.TrimSpace(client.Name), "_")
	if name == "" {
		name = "Client"
	}
	return "Inspection_Request_" + cleanComponent(name) + "_" + cleanComponent(r.InspectionDate) + ".pdf"
}

func shortName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	words := strings.Split(name, " ")
	if len(words) > 2 {
		words = words[:2]
	}
	r := []rune(strings.Join(words, " "))
	if len(r) > shortNameLen {
		r = r[:shortNameLen]
	}
	return string(r)
}

func cleanComponent(s string) string {
	s = foldAccents(s)
	s = nonAlnum.ReplaceAllString(s, "_")
	return underscore.ReplaceAllString(s, "_")
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
