package document

import (
	"errors"
	"strings"
	"time"
)

type DocumentType string

const (
	TypeInvoice  DocumentType = "invoice"
	TypeProforma DocumentType = "proforma"
)

type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
)

type ShippingTerm string

const (
	ShippingCF  ShippingTerm = "C&F"
	ShippingCIF ShippingTerm = "CIF"
)

type Unit string

const (
	UnitNone Unit = "None"
	UnitKG   Unit = "KG"
)

const (
	DefaultVATRate       = 20
	DefaultContainerType = "40' dry high cube"
	DefaultInspectionAt  = "08:00"
)

var ErrMissingRequiredEntity = errors.New("document: missing required entity")

type LineItem struct {
	Description string `json:"description"`
	Quantity    Number `json:"quantity"`
	Unit        Unit   `json:"unit"`
	Rate        Number `json:"rate"`
	Amount      Number `json:"amount"`
}

// Recomputed returns the item with Amount derived from Quantity and Rate.
func (li LineItem) Recomputed() LineItem {
	li.Amount = Number(LineAmount(li.Quantity.Float(), li.Rate.Float()))
	return li
}

type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Country string `json:"country,omitempty"`
	PIVA    string `json:"piva,omitempty"`
	CF      string `json:"cf,omitempty"`
}

type BankDetails struct {
	BankName    string `json:"bankName"`
	AccountName string `json:"accountName"`
	IBAN        string `json:"iban"`
	BIC         string `json:"bic"`
}

// MonetaryDocument is an invoice or a proforma. Both share one shape and
// differ only in DocumentType.
type MonetaryDocument struct {
	ID            string       `json:"id,omitempty"`
	InvoiceNumber string       `json:"invoiceNumber"`
	Date          string       `json:"date"`
	DocumentType  DocumentType `json:"documentType"`
	Currency      Currency     `json:"currency"`
	ShippingTerm  ShippingTerm `json:"shippingType"`
	VATEnabled    bool         `json:"vatEnabled"`
	VATRate       Number       `json:"vatRate"`
	Notes         string       `json:"notes"`
	From          Party        `json:"from"`
	To            Party        `json:"to"`
	LineItems     []LineItem   `json:"lineItems"`
	BankDetails   BankDetails  `json:"bankDetails"`
	SupplierID    string       `json:"supplierId,omitempty"`
}

// NewMonetaryDocument returns a blank invoice dated now with one empty line.
func NewMonetaryDocument(now time.Time) MonetaryDocument {
	return MonetaryDocument{
		Date:         now.Format(DateLayout),
		DocumentType: TypeInvoice,
		Currency:     EUR,
		ShippingTerm: ShippingCF,
		VATRate:      DefaultVATRate,
		LineItems:    []LineItem{{Quantity: 1, Unit: UnitNone}},
	}
}

// Normalized maps unknown enum values to their defaults and recomputes
// every line amount. It never fails.
func (d MonetaryDocument) Normalized() MonetaryDocument {
	d.DocumentType = ParseDocumentType(string(d.DocumentType))
	d.Currency = ParseCurrency(string(d.Currency))
	d.ShippingTerm = ParseShippingTerm(string(d.ShippingTerm))

	items := make([]LineItem, 0, len(d.LineItems))
	for _, it := range d.LineItems {
		it.Unit = ParseUnit(string(it.Unit))
		items = append(items, it.Recomputed())
	}
	d.LineItems = items
	return d
}

func (d MonetaryDocument) Totals() Totals {
	return ComputeTotals(d.LineItems, d.VATEnabled, d.VATRate.Float())
}

func (d MonetaryDocument) Title() string {
	if d.DocumentType == TypeProforma {
		return "PROFORMA INVOICE"
	}
	return "INVOICE"
}

func ParseDocumentType(s string) DocumentType {
	if strings.EqualFold(strings.TrimSpace(s), string(TypeProforma)) {
		return TypeProforma
	}
	return TypeInvoice
}

func ParseCurrency(s string) Currency {
	if strings.EqualFold(strings.TrimSpace(s), string(USD)) {
		return USD
	}
	return EUR
}

func ParseShippingTerm(s string) ShippingTerm {
	if strings.EqualFold(strings.TrimSpace(s), string(ShippingCIF)) {
		return ShippingCIF
	}
	return ShippingCF
}

func ParseUnit(s string) Unit {
	if strings.EqualFold(strings.TrimSpace(s), string(UnitKG)) {
		return UnitKG
	}
	return UnitNone
}

type Supplier struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	VATNumber string `json:"vatNumber"`
	CF        string `json:"cf"`
	Stamp     string `json:"stamp,omitempty"`
}

type Client struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Country       string `json:"country"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
}

type InspectionRequest struct {
	ID             string `json:"id,omitempty"`
	SupplierID     string `json:"supplierId"`
	ClientID       string `json:"clientId"`
	LicenseNumber  string `json:"licenseNumber"`
	ContainerType  string `json:"containerType"`
	InspectionDate string `json:"inspectionDate"`
	InspectionTime string `json:"inspectionTime"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

// NewInspectionRequest returns a request for today at the default time.
func NewInspectionRequest(now time.Time) InspectionRequest {
	return InspectionRequest{
		ContainerType:  DefaultContainerType,
		InspectionDate: now.Format(DateLayout),
		InspectionTime: DefaultInspectionAt,
	}
}

func (r InspectionRequest) Normalized() InspectionRequest {
	if strings.TrimSpace(r.ContainerType) == "" {
		r.ContainerType = DefaultContainerType
	}
	return r
}

// License links a client to a supplier with an import license number.
type License struct {
	ID            string `json:"id,omitempty"`
	ClientID      string `json:"clientId"`
	SupplierID    string `json:"supplierId"`
	LicenseNumber string `json:"licenseNumber"`
	CreatedAt     string `json:"createdAt,omitempty"`
}
