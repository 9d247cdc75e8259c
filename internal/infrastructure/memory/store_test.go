package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Arriendos-api/internal/application/orders"
	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

func seedRental(t *testing.T, s *Store) (*entity.Machine, *entity.Rental) {
	t.Helper()
	ctx := context.Background()
	r := s.Repos()
	m := &entity.Machine{Brand: "JLG", Model: "1930ES", Serial: "JL-1", State: entity.MachineForSale}
	require.NoError(t, r.Machines.Create(ctx, m))
	a := &entity.Rental{MachineID: &m.ID, StartDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Period: entity.PeriodDay, Rate: decimal.NewFromInt(1000), State: entity.RentalActive}
	require.NoError(t, r.Rentals.Create(ctx, a))
	return m, a
}

// ─── Transacciones ───────────────────────────────────────────────────────────

func TestRunOrders_ErrorDescartaCambios(t *testing.T) {
	s := NewStore()
	m, a := seedRental(t, s)
	ctx := context.Background()

	err := s.RunOrders(ctx, func(r orders.Repos) error {
		doc := &entity.Document{Type: entity.DocGuide, Number: "0001", RentalID: a.ID}
		require.NoError(t, r.Documents.Create(ctx, doc))
		m.State = entity.MachineAvailable
		require.NoError(t, r.Machines.Update(ctx, m))
		return errors.New("falla al final")
	})
	require.Error(t, err)

	got, err := s.Repos().Machines.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MachineForSale, got.State)
	last, err := s.Repos().Documents.LastByType(ctx, entity.DocGuide)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestRunOrders_ExitoPublicaCambios(t *testing.T) {
	s := NewStore()
	_, a := seedRental(t, s)
	ctx := context.Background()

	err := s.RunOrders(ctx, func(r orders.Repos) error {
		return r.Documents.Create(ctx, &entity.Document{Type: entity.DocInvoice, Number: "0007", RentalID: a.ID})
	})
	require.NoError(t, err)

	last, err := s.Repos().Documents.LastByType(ctx, entity.DocInvoice)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "0007", last.Number)
}

func TestRunOrders_ContextoCanceladoNoPublica(t *testing.T) {
	s := NewStore()
	_, a := seedRental(t, s)
	ctx, cancel := context.WithCancel(context.Background())

	err := s.RunOrders(ctx, func(r orders.Repos) error {
		cancel()
		return r.Documents.Create(ctx, &entity.Document{Type: entity.DocGuide, Number: "0001", RentalID: a.ID})
	})
	require.ErrorIs(t, err, context.Canceled)

	docs, err := s.Repos().Documents.ListByRental(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

// ─── Repositorios ────────────────────────────────────────────────────────────

func TestMachineRepo_SerieUnicaSinMayusculas(t *testing.T) {
	s := NewStore()
	seedRental(t, s)

	err := s.Repos().Machines.Create(context.Background(), &entity.Machine{Brand: "Otra", Serial: "jl-1"})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMachineRepo_SearchPriorizaSerieExacta(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	r := s.Repos()
	require.NoError(t, r.Machines.Create(ctx, &entity.Machine{Brand: "Genie", Model: "AB12", Serial: "S-9"}))
	require.NoError(t, r.Machines.Create(ctx, &entity.Machine{Brand: "Haulotte", Model: "Compact", Serial: "AB12"}))

	list, err := r.Machines.Search(ctx, "ab12")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "AB12", list[0].Serial)
	assert.Equal(t, "Genie", list[1].Brand)
}

func TestMachineRepo_BorrarConArriendoEsConflicto(t *testing.T) {
	s := NewStore()
	m, _ := seedRental(t, s)

	err := s.Repos().Machines.Delete(context.Background(), m.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestClientRepo_BusquedaPorDigitosIgnoraSeparadores(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	r := s.Repos()
	require.NoError(t, r.Clients.Create(ctx, &entity.Client{LegalName: "Áridos Sur", RUT: "76.086.428-5"}))
	require.NoError(t, r.Clients.Create(ctx, &entity.Client{LegalName: "Grúas 7608", RUT: "11.111.111-1"}))

	list, err := r.Clients.Search(ctx, "7608")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Áridos Sur", list[0].LegalName)

	list, err = r.Clients.Search(ctx, "ÁRIDOS")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRentalRepo_ListActiveRespetaTermino(t *testing.T) {
	s := NewStore()
	_, a := seedRental(t, s)
	ctx := context.Background()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	list, err := s.Repos().Rentals.ListActive(ctx, day)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	end := day.AddDate(0, 0, -1)
	a.EndDate = &end
	require.NoError(t, s.Repos().Rentals.Update(ctx, a))
	list, err = s.Repos().Rentals.ListActive(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWorkOrderRepo_FiltroFacturacionPendiente(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	r := s.Repos()
	c := &entity.Client{LegalName: "Cliente", RUT: "1-9"}
	require.NoError(t, r.Clients.Create(ctx, c))
	invoiceID := int64(1)
	now := time.Now()
	for i, o := range []*entity.WorkOrder{
		{ClientID: c.ID, State: entity.OrderPending, Billable: true},
		{ClientID: c.ID, State: entity.OrderPending},
		{ClientID: c.ID, State: entity.OrderPending, Billable: true, InvoiceID: &invoiceID},
		{ClientID: c.ID, State: entity.OrderProcessed},
	} {
		o.CreatedAt = now.Add(time.Duration(i) * time.Minute)
		require.NoError(t, r.WorkOrders.Create(ctx, o))
	}

	all, err := r.WorkOrders.List(ctx, repository.WorkOrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, int64(4), all[0].ID, "más recientes primero")

	pending, err := r.WorkOrders.List(ctx, repository.WorkOrderFilter{OnlyPending: true})
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	billing, err := r.WorkOrders.List(ctx, repository.WorkOrderFilter{OnlyBillingPending: true})
	require.NoError(t, err)
	require.Len(t, billing, 1)
	assert.Equal(t, int64(1), billing[0].ID)
}

func TestUserRepo_UsuarioDuplicadoSinMayusculas(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", Username: "Ana"}))

	err := s.Users().Create(ctx, &entity.User{ID: "u2", Username: "ana"})
	require.ErrorIs(t, err, domain.ErrUserExists)

	u, err := s.Users().GetByUsername(ctx, "ANA")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
}

func TestUpdate_NoComparteMemoriaConElLlamador(t *testing.T) {
	s := NewStore()
	m, _ := seedRental(t, s)
	year := 2020
	m.Year = &year
	require.NoError(t, s.Repos().Machines.Update(context.Background(), m))

	year = 1999
	got, err := s.Repos().Machines.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, 2020, *got.Year)
}
