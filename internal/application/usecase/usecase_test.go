package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/application/orders"
	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/infrastructure/memory"
)

func str(s string) *string { return &s }

func num(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func newRepos() (orders.Repos, *memory.Store) {
	st := memory.NewStore()
	return st.Repos(), st
}

// ─── Maquinaria ──────────────────────────────────────────────────────────────

func TestMachineCreate_NormalizaCategoriaYDescartaCampos(t *testing.T) {
	r, _ := newRepos()
	uc := NewMachineUseCase(r.Machines, r.Rentals, r.Sites, r.Documents)

	out, err := uc.Create(context.Background(), dto.MachineRequest{
		Brand:    str(" Genie "),
		Model:    str(""),
		Serial:   str("GS-1"),
		Category: str("Elevador"),
		Height:   num("7.9"),
		Load:     num("230"),
		Tonnage:  num("2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Genie", out.Brand)
	assert.Nil(t, out.Model)
	assert.Equal(t, entity.CategoryAerial, out.Category)
	assert.Nil(t, out.Load)
	assert.Nil(t, out.Tonnage)
	require.NotNil(t, out.Height)
	assert.True(t, out.Height.Equal(decimal.RequireFromString("7.9")))
	assert.Equal(t, entity.MachineAvailable, out.State)
	assert.Equal(t, "Bodega", out.Site)
}

func TestMachineCreate_CamionCopiaCargaATonelaje(t *testing.T) {
	r, _ := newRepos()
	uc := NewMachineUseCase(r.Machines, r.Rentals, r.Sites, r.Documents)

	out, err := uc.Create(context.Background(), dto.MachineRequest{
		Brand: str("Volvo"), Category: str("camion"), Height: num("3"), Load: num("12"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryTruck, out.Category)
	assert.Nil(t, out.Height)
	require.NotNil(t, out.Tonnage)
	assert.True(t, out.Tonnage.Equal(decimal.NewFromInt(12)))
}

func TestMachineCreate_Validaciones(t *testing.T) {
	r, _ := newRepos()
	uc := NewMachineUseCase(r.Machines, r.Rentals, r.Sites, r.Documents)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.MachineRequest{Brand: str("  ")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "La marca es obligatoria.", domain.DetailOf(err))

	_, err = uc.Create(ctx, dto.MachineRequest{Brand: str("JLG"), Category: str("altura"), Height: num("-1")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "La altura no puede ser negativa.", domain.DetailOf(err))

	_, err = uc.Create(ctx, dto.MachineRequest{Brand: str("JLG"), Serial: str("S-1")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.MachineRequest{Brand: str("Genie"), Serial: str("s-1")})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMachineUpdate_ConservaCamposNoEnviados(t *testing.T) {
	r, _ := newRepos()
	uc := NewMachineUseCase(r.Machines, r.Rentals, r.Sites, r.Documents)
	ctx := context.Background()
	m, err := uc.Create(ctx, dto.MachineRequest{Brand: str("Genie"), Model: str("GS-1930"), Serial: str("A1")})
	require.NoError(t, err)

	out, err := uc.Update(ctx, m.ID, dto.MachineRequest{State: str(entity.MachineForSale)})
	require.NoError(t, err)
	assert.Equal(t, "Genie", out.Brand)
	require.NotNil(t, out.Model)
	assert.Equal(t, "GS-1930", *out.Model)
	assert.Equal(t, entity.MachineForSale, out.State)

	_, err = uc.Update(ctx, 999, dto.MachineRequest{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMachineHistorial_ObraYUltimoDocumento(t *testing.T) {
	r, _ := newRepos()
	uc := NewMachineUseCase(r.Machines, r.Rentals, r.Sites, r.Documents)
	ctx := context.Background()

	m, err := uc.Create(ctx, dto.MachineRequest{Brand: str("Genie"), Serial: str("H-1")})
	require.NoError(t, err)
	site := &entity.Site{Name: "Torre Norte"}
	require.NoError(t, r.Sites.Create(ctx, site))

	old := &entity.Rental{MachineID: &m.ID, StartDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Period: entity.PeriodMonth, State: entity.RentalTerminated}
	require.NoError(t, r.Rentals.Create(ctx, old))
	current := &entity.Rental{MachineID: &m.ID, SiteID: &site.ID, StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Period: entity.PeriodMonth, State: entity.RentalActive}
	require.NoError(t, r.Rentals.Create(ctx, current))

	require.NoError(t, r.Documents.Create(ctx, &entity.Document{Type: entity.DocGuide, Number: "0001",
		IssueDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), RentalID: current.ID}))
	require.NoError(t, r.Documents.Create(ctx, &entity.Document{Type: entity.DocInvoice, Number: "0003",
		IssueDate: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), RentalID: current.ID}))

	rows, err := uc.History(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Factura 0003", rows[0].Document)
	assert.Equal(t, "Torre Norte", rows[0].Site)
	assert.Equal(t, "2026-09-01", rows[0].StartDate)
	assert.Equal(t, "—", rows[1].Document)
	assert.Equal(t, "—", rows[1].Site)

	got, err := uc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Torre Norte", got.Site)

	err = uc.Delete(ctx, m.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
}

// ─── Clientes ────────────────────────────────────────────────────────────────

func TestClientCreate_FormateaRUT(t *testing.T) {
	r, _ := newRepos()
	uc := NewClientUseCase(r.Clients)

	out, err := uc.Create(context.Background(), dto.ClientRequest{
		LegalName: str("Constructora Andes SpA"), RUT: str("760864285"), PaymentTerms: str(entity.PaymentNet30),
	})
	require.NoError(t, err)
	assert.Equal(t, "76.086.428-5", out.RUT)
}

func TestClientCreate_RUTInvalidoYDuplicado(t *testing.T) {
	r, _ := newRepos()
	uc := NewClientUseCase(r.Clients)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.ClientRequest{LegalName: str("X"), RUT: str("76.086.428-4")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.ClientRequest{LegalName: str("X"), RUT: str("11.111.111-1"), PaymentTerms: str("Trueque")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Forma de pago inválida.", domain.DetailOf(err))

	_, err = uc.Create(ctx, dto.ClientRequest{LegalName: str("Uno"), RUT: str("11.111.111-1")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.ClientRequest{LegalName: str("Dos"), RUT: str("11111111-1")})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, "El RUT ya existe.", domain.DetailOf(err))
}

func TestClientList_BuscaPorDigitosDelRUT(t *testing.T) {
	r, _ := newRepos()
	uc := NewClientUseCase(r.Clients)
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.ClientRequest{LegalName: str("Andes"), RUT: str("76.086.428-5")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.ClientRequest{LegalName: str("Pacífico"), RUT: str("11.111.111-1")})
	require.NoError(t, err)

	list, err := uc.List(ctx, "76086")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Andes", list[0].LegalName)

	list, err = uc.List(ctx, "pací")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

// ─── Obras y arriendos ───────────────────────────────────────────────────────

func TestSite_NombreObligatorio(t *testing.T) {
	r, _ := newRepos()
	uc := NewSiteUseCase(r.Sites)

	_, err := uc.Create(context.Background(), dto.SiteRequest{Address: str("Av. Siempre Viva 123")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "El nombre de la obra es obligatorio.", domain.DetailOf(err))
}

func TestRentalCreate_RequiereMaquinaExistente(t *testing.T) {
	r, _ := newRepos()
	uc := NewRentalUseCase(r.Rentals, r.Machines)
	uc.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	missing := int64(42)
	_, err := uc.Create(ctx, dto.RentalRequest{MachineID: &missing})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Maquinaria no encontrada", domain.DetailOf(err))

	m := &entity.Machine{Brand: "Genie", Category: entity.CategoryAerial, State: entity.MachineAvailable}
	require.NoError(t, r.Machines.Create(ctx, m))
	out, err := uc.Create(ctx, dto.RentalRequest{
		MachineID: &m.ID,
		Rate:      &dto.FlexDecimal{Decimal: decimal.NewFromInt(450000)},
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-15", out.StartDate)
	assert.Equal(t, entity.PeriodMonth, out.Period)
	assert.Equal(t, entity.RentalActive, out.State)
	assert.Nil(t, out.EndDate)
}

func TestRentalUpdate_Validaciones(t *testing.T) {
	r, _ := newRepos()
	uc := NewRentalUseCase(r.Rentals, r.Machines)
	ctx := context.Background()
	m := &entity.Machine{Brand: "Genie", Category: entity.CategoryAerial, State: entity.MachineAvailable}
	require.NoError(t, r.Machines.Create(ctx, m))
	out, err := uc.Create(ctx, dto.RentalRequest{MachineID: &m.ID, StartDate: str("2026-10-01")})
	require.NoError(t, err)

	_, err = uc.Update(ctx, out.ID, dto.RentalRequest{Period: str("Año")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, out.ID, dto.RentalRequest{EndDate: str("2026-09-30")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	upd, err := uc.Update(ctx, out.ID, dto.RentalRequest{EndDate: str("2026-10-31"), State: str(entity.RentalTerminated)})
	require.NoError(t, err)
	require.NotNil(t, upd.EndDate)
	assert.Equal(t, "2026-10-31", *upd.EndDate)
	assert.Equal(t, entity.RentalTerminated, upd.State)
}

// ─── Documentos ──────────────────────────────────────────────────────────────

func TestDocumentGet_RelacionesEnAmbosSentidos(t *testing.T) {
	r, _ := newRepos()
	uc := NewDocumentUseCase(r.Documents, r.Clients)
	ctx := context.Background()

	c := &entity.Client{LegalName: "Andes", RUT: "76.086.428-5"}
	require.NoError(t, r.Clients.Create(ctx, c))
	rental := &entity.Rental{ClientID: &c.ID, StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Period: entity.PeriodMonth, State: entity.RentalActive}
	require.NoError(t, r.Rentals.Create(ctx, rental))

	guide := &entity.Document{Type: entity.DocGuide, Number: "0001", RentalID: rental.ID, ClientID: &c.ID,
		IssueDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, r.Documents.Create(ctx, guide))
	invoice := &entity.Document{Type: entity.DocInvoice, Number: "0001", RentalID: rental.ID, ClientID: &c.ID,
		RelatedID: &guide.ID, IssueDate: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)}
	invoice.SetAmounts(decimal.NewFromInt(100), decimal.NewFromInt(19), decimal.NewFromInt(119))
	require.NoError(t, r.Documents.Create(ctx, invoice))

	got, err := uc.Get(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "F0001", got.Label)
	assert.Equal(t, "Andes", got.ClientLegalName)
	require.NotNil(t, got.Related)
	assert.Equal(t, guide.ID, got.Related.ID)
	assert.Empty(t, got.Inverse)

	got, err = uc.Get(ctx, guide.ID)
	require.NoError(t, err)
	require.Len(t, got.Inverse, 1)
	assert.Equal(t, "Factura", got.Inverse[0].TypeDisplay)

	list, err := uc.List(ctx, dto.DocumentFilter{Type: "fact"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = uc.List(ctx, dto.DocumentFilter{From: "2026-10-02"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = uc.List(ctx, dto.DocumentFilter{To: "02/10/2026"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Get(ctx, 999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Usuarios ────────────────────────────────────────────────────────────────

func TestUserCreate_PermisosYLargoDeClave(t *testing.T) {
	_, st := newRepos()
	uc := NewUserUseCase(st.Users())
	ctx := context.Background()
	staff := Actor{UserID: "s", IsStaff: true}
	root := Actor{UserID: "r", IsStaff: true, IsSuperuser: true}

	_, err := uc.Create(ctx, staff, dto.UserRequest{Username: str("eva"), Password: str("clave123"), IsSuperuser: boolPtr(true)})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(ctx, staff, dto.UserRequest{Username: str("eva"), Password: str("corta")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "La contraseña debe tener entre 8 y 10 caracteres.", domain.DetailOf(err))

	out, err := uc.Create(ctx, root, dto.UserRequest{Username: str("eva"), Password: str("clave123"), IsSuperuser: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, out.IsSuperuser)

	_, err = uc.Create(ctx, root, dto.UserRequest{Username: str("EVA"), Password: str("clave123")})
	require.ErrorIs(t, err, domain.ErrUserExists)

	upd, err := uc.Update(ctx, staff, out.ID, dto.UserRequest{Email: str("eva@example.com"), IsStaff: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "eva@example.com", upd.Email)
	assert.True(t, upd.IsStaff)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, out.ID))
	require.ErrorIs(t, uc.Delete(ctx, out.ID), domain.ErrNotFound)
}

func TestActorFromRole(t *testing.T) {
	a := ActorFromRole("u", entity.RoleStaff)
	assert.True(t, a.IsStaff)
	assert.False(t, a.IsSuperuser)

	a = ActorFromRole("u", entity.RoleUser)
	assert.False(t, a.IsStaff)
}

func boolPtr(b bool) *bool { return &b }
