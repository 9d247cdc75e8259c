package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento tributario.
const (
	DocInvoice    = "FACT"
	DocGuide      = "GD"
	DocCreditNote = "NC"
	DocDebitNote  = "ND"
)

var docTypeDisplay = map[string]string{
	DocInvoice:    "Factura",
	DocGuide:      "Guía de despacho",
	DocCreditNote: "Nota de crédito",
	DocDebitNote:  "Nota de débito",
}

// relatedTypes tipo de documento al que puede apuntar relacionado_con, por tipo de origen.
var relatedTypes = map[string]string{
	DocInvoice:    DocGuide,
	DocCreditNote: DocInvoice,
	DocDebitNote:  DocCreditNote,
}

// Document representa un documento tributario emitido (factura, guía, NC, ND).
type Document struct {
	ID                int64
	Type              string
	Number            string // siempre 4 dígitos, sin prefijo F/G
	IssueDate         time.Time
	NetAmount         decimal.NullDecimal
	TaxAmount         decimal.NullDecimal
	TotalAmount       decimal.NullDecimal
	RentalID          int64
	ClientID          *int64 // cliente "congelado" al emitir
	RelatedID         *int64
	IsWithdrawal      bool
	OriginSiteID      *int64
	DestinationSiteID *int64
	FileURL           string
}

// ValidDocType indica si t es un tipo de documento conocido.
func ValidDocType(t string) bool {
	_, ok := docTypeDisplay[t]
	return ok
}

// DocTypeDisplay nombre legible del tipo.
func DocTypeDisplay(t string) string {
	return docTypeDisplay[t]
}

// Label código visible del documento: F0001, G0001; otros tipos usan la inicial de su nombre.
// El prefijo nunca se persiste.
func (d *Document) Label() string {
	if d == nil {
		return ""
	}
	var prefix string
	switch d.Type {
	case DocInvoice:
		prefix = "F"
	case DocGuide:
		prefix = "G"
	default:
		if name := docTypeDisplay[d.Type]; name != "" {
			prefix = name[:1]
		}
	}
	return prefix + d.Number
}

// CanRelateTo indica si un documento de tipo from puede apuntar a uno de tipo to
// (FACT→GD, NC→FACT, ND→NC).
func CanRelateTo(from, to string) bool {
	want, ok := relatedTypes[from]
	return ok && want == to
}

// SetAmounts fija neto, IVA y total.
func (d *Document) SetAmounts(net, tax, total decimal.Decimal) {
	d.NetAmount = decimal.NewNullDecimal(net)
	d.TaxAmount = decimal.NewNullDecimal(tax)
	d.TotalAmount = decimal.NewNullDecimal(total)
}
