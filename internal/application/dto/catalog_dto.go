package dto

import (
	"github.com/shopspring/decimal"
)

// MachineRequest alta o edición de maquinaria. En edición, los campos nil conservan el valor actual.
type MachineRequest struct {
	Brand       *string          `json:"marca" example:"Genie"`
	Model       *string          `json:"modelo" example:"GS-1930"`
	Serial      *string          `json:"serie" example:"GS30-12345"`
	Category    *string          `json:"categoria" example:"elevador"`
	Description *string          `json:"descripcion"`
	Height      *decimal.Decimal `json:"altura" swaggertype:"number"`
	Year        *int             `json:"anio"`
	Tonnage     *decimal.Decimal `json:"tonelaje" swaggertype:"number"`
	Load        *decimal.Decimal `json:"carga" swaggertype:"number"`
	State       *string          `json:"estado" example:"Disponible"`
	Fuel        *string          `json:"combustible" example:"electrico"`
	HeightType  *string          `json:"tipo_altura" example:"tijera"`
}

// MachineResponse maquinaria con la obra donde está (o "Bodega").
type MachineResponse struct {
	ID          int64            `json:"id"`
	Brand       string           `json:"marca"`
	Model       *string          `json:"modelo"`
	Serial      *string          `json:"serie"`
	Category    string           `json:"categoria"`
	Description *string          `json:"descripcion"`
	Height      *decimal.Decimal `json:"altura" swaggertype:"number"`
	Year        *int             `json:"anio"`
	Tonnage     *decimal.Decimal `json:"tonelaje" swaggertype:"number"`
	Load        *decimal.Decimal `json:"carga" swaggertype:"number"`
	State       string           `json:"estado"`
	Fuel        *string          `json:"combustible"`
	HeightType  *string          `json:"tipo_altura"`
	Site        string           `json:"obra"`
}

// MachineHistoryRow fila de GET /maquinarias/:id/historial.
type MachineHistoryRow struct {
	Document  string  `json:"documento"`
	StartDate string  `json:"fecha_inicio"`
	EndDate   *string `json:"fecha_termino"`
	Site      string  `json:"obra"`
}

// ClientRequest alta o edición de cliente.
type ClientRequest struct {
	LegalName    *string `json:"razon_social" example:"Constructora Andes SpA"`
	RUT          *string `json:"rut" example:"76.086.428-5"`
	Address      *string `json:"direccion"`
	Phone        *string `json:"telefono"`
	Email        *string `json:"correo_electronico"`
	PaymentTerms *string `json:"forma_pago" example:"Pago a 30 días"`
}

// ClientResponse cliente.
type ClientResponse struct {
	ID           int64  `json:"id"`
	LegalName    string `json:"razon_social"`
	RUT          string `json:"rut"`
	Address      string `json:"direccion"`
	Phone        string `json:"telefono"`
	Email        string `json:"correo_electronico"`
	PaymentTerms string `json:"forma_pago"`
}

// SiteRequest alta o edición de obra.
type SiteRequest struct {
	Name         *string `json:"nombre" example:"Edificio Los Robles"`
	Address      *string `json:"direccion"`
	ContactName  *string `json:"contacto_nombre"`
	ContactPhone *string `json:"contacto_telefono"`
	ContactEmail *string `json:"contacto_email"`
}

// SiteResponse obra.
type SiteResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"nombre"`
	Address      string `json:"direccion"`
	ContactName  string `json:"contacto_nombre"`
	ContactPhone string `json:"contacto_telefono"`
	ContactEmail string `json:"contacto_email"`
}

// RentalRequest alta o edición de arriendo. Fechas "YYYY-MM-DD".
type RentalRequest struct {
	MachineID *int64       `json:"maquinaria"`
	ClientID  *int64       `json:"cliente"`
	SiteID    *int64       `json:"obra"`
	StartDate *string      `json:"fecha_inicio" example:"2026-10-01"`
	EndDate   *string      `json:"fecha_termino"`
	Period    *string      `json:"periodo" example:"Mes"`
	Rate      *FlexDecimal `json:"tarifa" swaggertype:"number"`
	State     *string      `json:"estado" example:"Activo"`
}

// RentalResponse arriendo.
type RentalResponse struct {
	ID        int64           `json:"id"`
	MachineID *int64          `json:"maquinaria"`
	ClientID  *int64          `json:"cliente"`
	SiteID    *int64          `json:"obra"`
	StartDate string          `json:"fecha_inicio"`
	EndDate   *string         `json:"fecha_termino"`
	Period    string          `json:"periodo"`
	Rate      decimal.Decimal `json:"tarifa" swaggertype:"number"`
	State     string          `json:"estado"`
}
