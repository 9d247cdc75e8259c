package billing

import (
	"strconv"

	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

// Códigos de tipo de DTE del SII.
var siiTypes = map[string]int{
	entity.DocInvoice:    33,
	entity.DocGuide:      52,
	entity.DocCreditNote: 61,
	entity.DocDebitNote:  56,
}

// Indicadores de traslado de la guía de despacho.
const (
	TransferInternal = 5 // traslado interno (retiro a bodega)
	TransferOther    = 6 // otros traslados no venta
)

// SIIType código TipoDTE del tipo de documento; 0 si no tiene.
func SIIType(docType string) int {
	return siiTypes[docType]
}

// TransferIndicator IndTraslado para guías: 5 en retiros, 6 en el resto.
func TransferIndicator(d *entity.Document) int {
	if d.IsWithdrawal {
		return TransferInternal
	}
	return TransferOther
}

// StampData texto del timbre impreso en el PDF: RUT emisor, tipo, folio, fecha y total.
func StampData(v *DocumentView) string {
	d := v.Document
	total := "0"
	if d.TotalAmount.Valid {
		total = d.TotalAmount.Decimal.StringFixed(0)
	}
	return v.Issuer.RUT + ";" + strconv.Itoa(SIIType(d.Type)) + ";" + d.Number + ";" +
		d.IssueDate.Format(entity.DateLayout) + ";" + total
}
