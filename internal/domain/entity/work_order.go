package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden de trabajo (OT).
const (
	OrderRentalStart = "ALTA"
	OrderExtension   = "PROL"
	OrderRelocation  = "TRAS"
	OrderWithdrawal  = "RETI"
	OrderService     = "SERV"
)

// Tipos comerciales derivados del tipo de OT.
const (
	CommercialRental    = "A"
	CommercialSale      = "V"
	CommercialTransport = "T"
)

// Estados de una OT.
const (
	OrderPending   = "PEND"
	OrderProcessed = "PROC"
	OrderVoided    = "ANUL"
)

var orderTypeDisplay = map[string]string{
	OrderRentalStart: "Inicio arriendo",
	OrderExtension:   "Prolongación arriendo",
	OrderRelocation:  "Traslado (flete entre obras)",
	OrderWithdrawal:  "Retiro (guía retiro)",
	OrderService:     "Servicio puntual",
}

var orderStateDisplay = map[string]string{
	OrderPending:   "Pendiente",
	OrderProcessed: "Procesada",
	OrderVoided:    "Anulada",
}

var commercialDisplay = map[string]string{
	CommercialRental:    "Arriendo",
	CommercialSale:      "Venta",
	CommercialTransport: "Traslado",
}

// LineItem línea de detalle de una OT (una máquina por línea).
// Neto, IVA y total se calculan al crear la OT.
type LineItem struct {
	Serial      string          `json:"serie"`
	Unit        string          `json:"unidad"`
	PeriodCount int             `json:"cantidadPeriodo"`
	From        string          `json:"desde,omitempty"`
	To          string          `json:"hasta,omitempty"`
	Value       decimal.Decimal `json:"valor"`
	Freight     decimal.Decimal `json:"flete"`
	FreightType string          `json:"tipoFlete"`
	Net         decimal.Decimal `json:"neto"`
	Tax         decimal.Decimal `json:"iva"`
	Total       decimal.Decimal `json:"total"`
}

// WorkOrder orden de trabajo pendiente de documentar/facturar.
type WorkOrder struct {
	ID             int64
	Type           string
	CommercialType string
	State          string
	ClientID       int64
	RentalID       *int64
	MachineID      *int64
	Lines          []LineItem
	NetAmount      decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	InvoiceID      *int64
	GuideID        *int64
	Billable       bool
	Observations   string
	Address        string
	SiteName       string
	Contacts       string
	PurchaseOrder  string
	Seller         string
	IssueDate      *time.Time // fecha de emisión planificada para GD/FACT
	CreatedAt      time.Time
	ClosedAt       *time.Time
}

// NormalizeOrderType pasa a mayúsculas y acepta "RETIRO" como sinónimo de RETI.
// Vacío equivale a ALTA.
func NormalizeOrderType(raw string) string {
	t := strings.ToUpper(strings.TrimSpace(raw))
	switch t {
	case "":
		return OrderRentalStart
	case "RETIRO":
		return OrderWithdrawal
	}
	return t
}

// ValidOrderType indica si t es un tipo de OT conocido.
func ValidOrderType(t string) bool {
	_, ok := orderTypeDisplay[t]
	return ok
}

// CommercialTypeFor deriva el tipo comercial: ALTA/PROL arriendo, SERV venta, TRAS/RETI traslado.
func CommercialTypeFor(orderType string) string {
	switch orderType {
	case OrderRentalStart, OrderExtension:
		return CommercialRental
	case OrderService:
		return CommercialSale
	case OrderRelocation, OrderWithdrawal:
		return CommercialTransport
	}
	return ""
}

// OrderTypeDisplay nombre legible del tipo de OT.
func OrderTypeDisplay(t string) string { return orderTypeDisplay[t] }

// OrderStateDisplay nombre legible del estado de OT.
func OrderStateDisplay(s string) string { return orderStateDisplay[s] }

// CommercialTypeDisplay nombre legible del tipo comercial.
func CommercialTypeDisplay(c string) string { return commercialDisplay[c] }

// CreatesRental indica si el tipo de OT inicia o prolonga un arriendo.
func CreatesRental(orderType string) bool {
	return orderType == OrderRentalStart || orderType == OrderExtension
}

// Folio identificador visible: tipo comercial (o inicial del tipo) + id con 4 dígitos.
func (o *WorkOrder) Folio() string {
	prefix := o.CommercialType
	if prefix == "" {
		if o.Type != "" {
			prefix = o.Type[:1]
		} else {
			prefix = "OT"
		}
	}
	return fmt.Sprintf("%s%04d", prefix, o.ID)
}

// Serials series distintas de las líneas, en orden de aparición.
func (o *WorkOrder) Serials() []string {
	out := make([]string, 0, len(o.Lines))
	seen := make(map[string]struct{}, len(o.Lines))
	for _, l := range o.Lines {
		s := strings.TrimSpace(l.Serial)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// FirstSerial primera serie no vacía de las líneas.
func (o *WorkOrder) FirstSerial() string {
	for _, l := range o.Lines {
		if s := strings.TrimSpace(l.Serial); s != "" {
			return s
		}
	}
	return ""
}

// MarkProcessed cierra la OT.
func (o *WorkOrder) MarkProcessed(now time.Time) {
	o.State = OrderProcessed
	o.Billable = false
	o.ClosedAt = &now
}
