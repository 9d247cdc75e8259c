package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

// DocumentFilter query de GET /documentos.
type DocumentFilter struct {
	Type   string `query:"tipo"`
	Number string `query:"numero"`
	Client string `query:"cliente"`
	From   string `query:"desde"`
	To     string `query:"hasta"`
}

// DocumentResponse fila del listado de documentos.
type DocumentResponse struct {
	ID                int64            `json:"id"`
	RentalID          int64            `json:"arriendo"`
	Type              string           `json:"tipo"`
	TypeDisplay       string           `json:"tipo_display"`
	Number            string           `json:"numero"`
	Label             string           `json:"codigo"`
	IssueDate         string           `json:"fecha_emision"`
	NetAmount         *decimal.Decimal `json:"monto_neto"`
	TaxAmount         *decimal.Decimal `json:"monto_iva"`
	TotalAmount       *decimal.Decimal `json:"monto_total"`
	ClientID          *int64           `json:"cliente"`
	IsWithdrawal      bool             `json:"es_retiro"`
	OriginSiteID      *int64           `json:"obra_origen"`
	DestinationSiteID *int64           `json:"obra_destino"`
	FileURL           string           `json:"archivo_url"`
}

// DocumentDetailResponse detalle con cliente y relaciones en ambos sentidos.
type DocumentDetailResponse struct {
	DocumentResponse
	ClientLegalName string            `json:"cliente_razon"`
	RentalRef       int64             `json:"arriendo_id"`
	Related         *DocumentSummary  `json:"relacionado_con"`
	Inverse         []DocumentSummary `json:"relaciones_inversas"`
}

// DocumentSummaryFrom resumen de d; nil si d es nil.
func DocumentSummaryFrom(d *entity.Document) *DocumentSummary {
	if d == nil {
		return nil
	}
	return &DocumentSummary{
		ID:          d.ID,
		Type:        d.Type,
		TypeDisplay: entity.DocTypeDisplay(d.Type),
		Number:      d.Number,
		IssueDate:   FormatDate(d.IssueDate),
		NetAmount:   NullableDecimal(d.NetAmount),
		TaxAmount:   NullableDecimal(d.TaxAmount),
		TotalAmount: NullableDecimal(d.TotalAmount),
	}
}

// DocumentResponseFrom fila de listado de d.
func DocumentResponseFrom(d *entity.Document) DocumentResponse {
	return DocumentResponse{
		ID:                d.ID,
		RentalID:          d.RentalID,
		Type:              d.Type,
		TypeDisplay:       entity.DocTypeDisplay(d.Type),
		Number:            d.Number,
		Label:             d.Label(),
		IssueDate:         FormatDate(d.IssueDate),
		NetAmount:         NullableDecimal(d.NetAmount),
		TaxAmount:         NullableDecimal(d.TaxAmount),
		TotalAmount:       NullableDecimal(d.TotalAmount),
		ClientID:          d.ClientID,
		IsWithdrawal:      d.IsWithdrawal,
		OriginSiteID:      d.OriginSiteID,
		DestinationSiteID: d.DestinationSiteID,
		FileURL:           d.FileURL,
	}
}

// FormatDate fecha "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(entity.DateLayout)
}

// FormatDatePtr como FormatDate; nil si t es nil.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}
