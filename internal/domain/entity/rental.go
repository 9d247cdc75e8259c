package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Periodos de cobro de un arriendo.
const (
	PeriodDay   = "Dia"
	PeriodWeek  = "Semana"
	PeriodMonth = "Mes"
)

// Estados de un arriendo.
const (
	RentalActive     = "Activo"
	RentalTerminated = "Terminado"
)

// Rental representa un arriendo: una máquina en la obra de un cliente durante un periodo.
// Máquina, cliente y obra son opcionales para tolerar datos heredados.
type Rental struct {
	ID        int64
	MachineID *int64
	ClientID  *int64
	SiteID    *int64
	StartDate time.Time
	EndDate   *time.Time
	Period    string
	Rate      decimal.Decimal
	State     string
}

// ValidPeriod indica si p es un periodo conocido.
func ValidPeriod(p string) bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// IsActiveOn indica si el arriendo sigue vigente en la fecha dada:
// estado Activo y sin término o con término desde esa fecha en adelante.
func (r *Rental) IsActiveOn(day time.Time) bool {
	if !strings.EqualFold(r.State, RentalActive) {
		return false
	}
	if r.EndDate == nil {
		return true
	}
	return !DateOnly(*r.EndDate).Before(DateOnly(day))
}

// Close termina el arriendo en la fecha dada.
func (r *Rental) Close(day time.Time) {
	d := DateOnly(day)
	r.State = RentalTerminated
	r.EndDate = &d
}

// DateOnly trunca a la fecha (medianoche UTC).
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateLayout formato de fecha usado en la API y en las líneas de OT.
const DateLayout = "2006-01-02"

// ParseDate interpreta "YYYY-MM-DD"; vacío devuelve ok=false.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
