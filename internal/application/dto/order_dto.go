package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemInput línea del formulario de OT.
type LineItemInput struct {
	Serial      string      `json:"serie"`
	Unit        string      `json:"unidad"`
	PeriodCount FlexInt     `json:"cantidadPeriodo"`
	From        string      `json:"desde"`
	To          string      `json:"hasta"`
	Value       FlexDecimal `json:"valor"`
	Freight     FlexDecimal `json:"flete"`
	FreightType string      `json:"tipoFlete"`
}

// CreateOrderRequest entrada de POST /ordenes.
type CreateOrderRequest struct {
	Type          string          `json:"tipo"`
	Lines         []LineItemInput `json:"lineas"`
	Client        string          `json:"meta_cliente"`
	SiteName      string          `json:"meta_obra"`
	Address       string          `json:"meta_direccion"`
	Contacts      string          `json:"meta_contactos"`
	PurchaseOrder string          `json:"meta_orden_compra"`
	IssueDate     string          `json:"meta_fecha_emision"`
	Seller        string          `json:"vendedor"`
	RentalID      FlexInt         `json:"arriendo_id"`
	Rental        FlexInt         `json:"arriendo"` // alias de arriendo_id
	Observations  string          `json:"observaciones"`
}

// RentalRef id de arriendo indicado (arriendo_id o su alias).
func (r CreateOrderRequest) RentalRef() int64 {
	if r.RentalID != 0 {
		return int64(r.RentalID)
	}
	return int64(r.Rental)
}

// EmitDocumentRequest entrada de POST /ordenes/:id/emitir.
// Accion es el campo heredado que precede a tipo_documento.
type EmitDocumentRequest struct {
	DocumentType string       `json:"tipo_documento"`
	Billable     OptionalBool `json:"facturable"`
	Action       string       `json:"accion"`
}

// DocumentSummary resumen de un documento embebido en otras respuestas.
type DocumentSummary struct {
	ID          int64            `json:"id"`
	Type        string           `json:"tipo"`
	TypeDisplay string           `json:"tipo_display"`
	Number      string           `json:"numero"`
	IssueDate   string           `json:"fecha_emision"`
	NetAmount   *decimal.Decimal `json:"monto_neto"`
	TaxAmount   *decimal.Decimal `json:"monto_iva"`
	TotalAmount *decimal.Decimal `json:"monto_total"`
}

// LineItemResponse línea persistida con sus totales.
type LineItemResponse struct {
	Serial      string          `json:"serie"`
	Unit        string          `json:"unidad"`
	PeriodCount int             `json:"cantidadPeriodo"`
	From        *string         `json:"desde"`
	To          *string         `json:"hasta"`
	Value       decimal.Decimal `json:"valor"`
	Freight     decimal.Decimal `json:"flete"`
	FreightType string          `json:"tipoFlete"`
	Net         decimal.Decimal `json:"neto"`
	Tax         decimal.Decimal `json:"iva"`
	Total       decimal.Decimal `json:"total"`
}

// WorkOrderResponse OT serializada y enriquecida con campos de presentación.
type WorkOrderResponse struct {
	ID                    int64              `json:"id"`
	Folio                 string             `json:"folio"`
	Type                  string             `json:"tipo"`
	TypeDisplay           string             `json:"tipo_display"`
	CommercialType        string             `json:"tipo_comercial"`
	CommercialTypeDisplay string             `json:"tipo_comercial_display"`
	State                 string             `json:"estado"`
	StateDisplay          string             `json:"estado_display"`
	Billable              bool               `json:"es_facturable"`
	CreatedAt             time.Time          `json:"fecha_creacion"`
	ClosedAt              *time.Time         `json:"fecha_cierre"`
	ClientID              int64              `json:"cliente"`
	ClientLegalName       string             `json:"cliente_razon"`
	RentalID              *int64             `json:"arriendo"`
	MachineID             *int64             `json:"maquinaria"`
	MachineLabel          *string            `json:"maquinaria_label"`
	Invoice               *DocumentSummary   `json:"factura"`
	Guide                 *DocumentSummary   `json:"guia"`
	Observations          string             `json:"observaciones"`
	Address               string             `json:"direccion"`
	SiteName              string             `json:"obra_nombre"`
	Contacts              string             `json:"contactos"`
	PurchaseOrder         string             `json:"orden_compra"`
	Seller                string             `json:"vendedor"`
	IssueDate             *string            `json:"fecha_emision_doc"`
	Lines                 []LineItemResponse `json:"detalle_lineas"`
	NetAmount             decimal.Decimal    `json:"monto_neto"`
	TaxAmount             decimal.Decimal    `json:"monto_iva"`
	TotalAmount           decimal.Decimal    `json:"monto_total"`

	// Campos derivados para las tablas del front (sinónimos incluidos).
	ClientName        string   `json:"cliente_nombre"`
	ClientLegalName2  string   `json:"cliente_razon_social"`
	ClientRUT         string   `json:"rut_cliente"`
	ClientRUT2        string   `json:"cliente_rut"`
	RUT               string   `json:"rut"`
	Serial            string   `json:"serie"`
	MachineSerial     string   `json:"maquinaria_serie"`
	MachineSerials    []string `json:"series_maquinas"`
	Serials           []string `json:"series"`
	PurchaseOrderCode string   `json:"oc"`
}

// RentalStatusRow fila de GET /ordenes/estado-arriendos (una por arriendo activo).
type RentalStatusRow struct {
	ID            int64            `json:"id"`
	Document      string           `json:"documento"`
	DocType       string           `json:"doc_tipo"`
	DocNumber     string           `json:"doc_numero"`
	DocDate       string           `json:"doc_fecha"`
	Invoice       string           `json:"factura"`
	InvoiceNumber *string          `json:"factura_numero"`
	InvoiceDate   *string          `json:"factura_fecha"`
	Brand         string           `json:"marca"`
	Model         string           `json:"modelo"`
	Height        *decimal.Decimal `json:"altura"`
	Serial        string           `json:"serie"`
	From          string           `json:"desde"`
	To            *string          `json:"hasta"`
	Client        string           `json:"cliente"`
	ClientRUT     string           `json:"rut_cliente"`
	Site          string           `json:"obra"`
	OrderID       *int64           `json:"ot_id"`
	OrderFolio    string           `json:"ot_folio"`
	PurchaseOrder string           `json:"orden_compra"`
	Seller        string           `json:"vendedor"`
	OrderType     string           `json:"ot_tipo"`
}

// WarehouseRow fila de GET /ordenes/estado-bodega (una por máquina disponible).
type WarehouseRow struct {
	ID            int64            `json:"id"`
	Brand         string           `json:"marca"`
	Model         string           `json:"modelo"`
	Height        *decimal.Decimal `json:"altura"`
	Serial        string           `json:"serie"`
	Client        string           `json:"cliente"`
	ClientRUT     string           `json:"rut_cliente"`
	Site          string           `json:"obra"`
	From          *string          `json:"desde"`
	To            *string          `json:"hasta"`
	Document      string           `json:"documento"`
	DocType       *string          `json:"doc_tipo"`
	DocNumber     *string          `json:"doc_numero"`
	DocDate       *string          `json:"doc_fecha"`
	Invoice       string           `json:"factura"`
	InvoiceNumber *string          `json:"factura_numero"`
	InvoiceDate   *string          `json:"factura_fecha"`
	OrderID       *int64           `json:"ot_id"`
	OrderFolio    string           `json:"ot_folio"`
	PurchaseOrder string           `json:"orden_compra"`
	Seller        string           `json:"vendedor"`
	OrderType     string           `json:"ot_tipo"`
}
