package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

// ─── Orden de trabajo ─────────────────────────────────────────────────────────

func TestNormalizeOrderType(t *testing.T) {
	assert.Equal(t, entity.OrderWithdrawal, entity.NormalizeOrderType("retiro"))
	assert.Equal(t, entity.OrderWithdrawal, entity.NormalizeOrderType("RETI"))
	assert.Equal(t, entity.OrderRentalStart, entity.NormalizeOrderType(""))
	assert.Equal(t, entity.OrderService, entity.NormalizeOrderType(" serv "))
}

func TestCommercialTypeFor(t *testing.T) {
	assert.Equal(t, entity.CommercialRental, entity.CommercialTypeFor(entity.OrderRentalStart))
	assert.Equal(t, entity.CommercialRental, entity.CommercialTypeFor(entity.OrderExtension))
	assert.Equal(t, entity.CommercialSale, entity.CommercialTypeFor(entity.OrderService))
	assert.Equal(t, entity.CommercialTransport, entity.CommercialTypeFor(entity.OrderRelocation))
	assert.Equal(t, entity.CommercialTransport, entity.CommercialTypeFor(entity.OrderWithdrawal))
}

func TestWorkOrder_Folio(t *testing.T) {
	o := entity.WorkOrder{ID: 7, Type: entity.OrderRentalStart, CommercialType: entity.CommercialRental}
	assert.Equal(t, "A0007", o.Folio())

	sinComercial := entity.WorkOrder{ID: 12, Type: entity.OrderRelocation}
	assert.Equal(t, "T0012", sinComercial.Folio())
}

func TestWorkOrder_SerialsSinDuplicados(t *testing.T) {
	o := entity.WorkOrder{Lines: []entity.LineItem{
		{Serial: "X1"}, {Serial: " "}, {Serial: "X2"}, {Serial: "X1"},
	}}
	assert.Equal(t, []string{"X1", "X2"}, o.Serials())
	assert.Equal(t, "X1", o.FirstSerial())
}

// ─── Documento ────────────────────────────────────────────────────────────────

func TestDocument_Label(t *testing.T) {
	assert.Equal(t, "F0003", (&entity.Document{Type: entity.DocInvoice, Number: "0003"}).Label())
	assert.Equal(t, "G0010", (&entity.Document{Type: entity.DocGuide, Number: "0010"}).Label())
	assert.Equal(t, "N0001", (&entity.Document{Type: entity.DocCreditNote, Number: "0001"}).Label())
	var nilDoc *entity.Document
	assert.Equal(t, "", nilDoc.Label())
}

func TestCanRelateTo_DireccionDeTipos(t *testing.T) {
	assert.True(t, entity.CanRelateTo(entity.DocInvoice, entity.DocGuide))
	assert.True(t, entity.CanRelateTo(entity.DocCreditNote, entity.DocInvoice))
	assert.True(t, entity.CanRelateTo(entity.DocDebitNote, entity.DocCreditNote))

	assert.False(t, entity.CanRelateTo(entity.DocGuide, entity.DocInvoice))
	assert.False(t, entity.CanRelateTo(entity.DocInvoice, entity.DocCreditNote))
}

// ─── Arriendo ─────────────────────────────────────────────────────────────────

func TestRental_IsActiveOn(t *testing.T) {
	hoy := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	ayer := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	hoyFecha := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	sinTermino := entity.Rental{State: entity.RentalActive}
	assert.True(t, sinTermino.IsActiveOn(hoy))

	terminaHoy := entity.Rental{State: "activo", EndDate: &hoyFecha}
	assert.True(t, terminaHoy.IsActiveOn(hoy), "el estado se compara sin distinguir mayúsculas")

	vencido := entity.Rental{State: entity.RentalActive, EndDate: &ayer}
	assert.False(t, vencido.IsActiveOn(hoy))

	terminado := entity.Rental{State: entity.RentalTerminated}
	assert.False(t, terminado.IsActiveOn(hoy))
}

func TestRental_Close(t *testing.T) {
	r := entity.Rental{State: entity.RentalActive}
	r.Close(time.Date(2025, 5, 2, 13, 30, 0, 0, time.UTC))

	assert.Equal(t, entity.RentalTerminated, r.State)
	if assert.NotNil(t, r.EndDate) {
		assert.Equal(t, "2025-05-02", r.EndDate.Format(entity.DateLayout))
	}
}

// ─── Maquinaria ───────────────────────────────────────────────────────────────

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, entity.CategoryAerial, entity.NormalizeCategory("Elevador"))
	assert.Equal(t, entity.CategoryTruck, entity.NormalizeCategory("camion"))
	assert.Equal(t, entity.CategoryLoad, entity.NormalizeCategory("otro"))
	assert.Equal(t, entity.CategoryAerial, entity.NormalizeCategory("equipos_altura"))
	assert.Equal(t, entity.CategoryOther, entity.NormalizeCategory(""))
}

func TestMachine_ApplyCategoryRules(t *testing.T) {
	ocho := decimal.NewNullDecimal(decimal.NewFromInt(8))
	dos := decimal.NewNullDecimal(decimal.NewFromInt(2))

	elevador := entity.Machine{Category: entity.CategoryAerial, Height: ocho, Load: dos, Tonnage: dos}
	elevador.ApplyCategoryRules()
	assert.True(t, elevador.Height.Valid)
	assert.False(t, elevador.Load.Valid)
	assert.False(t, elevador.Tonnage.Valid)

	camion := entity.Machine{Category: entity.CategoryTruck, Height: ocho, Load: dos}
	camion.ApplyCategoryRules()
	assert.False(t, camion.Height.Valid)
	assert.True(t, camion.Tonnage.Valid, "la carga se copia a tonelaje si falta")
	assert.True(t, camion.Tonnage.Decimal.Equal(decimal.NewFromInt(2)))
}

// ─── Seguridad de usuario ─────────────────────────────────────────────────────

func TestUserSecurity_BloqueaAlQuintoFallo(t *testing.T) {
	var sec entity.UserSecurity
	now := time.Now()
	for i := 0; i < entity.MaxFailedLogins-1; i++ {
		sec.RegisterFailure(now)
	}
	assert.False(t, sec.IsLocked)

	sec.RegisterFailure(now)
	assert.True(t, sec.IsLocked)
	assert.NotNil(t, sec.LockedAt)
}
