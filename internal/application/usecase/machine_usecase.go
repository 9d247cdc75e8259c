package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

// siteWarehouse obra mostrada cuando la máquina no tiene arriendo activo.
const siteWarehouse = "Bodega"

// MachineUseCase CRUD de maquinaria con reglas por categoría e historial de arriendos.
type MachineUseCase struct {
	machines repository.MachineRepository
	rentals  repository.RentalRepository
	sites    repository.SiteRepository
	docs     repository.DocumentRepository
}

// NewMachineUseCase construye el caso de uso.
func NewMachineUseCase(
	machines repository.MachineRepository,
	rentals repository.RentalRepository,
	sites repository.SiteRepository,
	docs repository.DocumentRepository,
) *MachineUseCase {
	return &MachineUseCase{machines: machines, rentals: rentals, sites: sites, docs: docs}
}

// Create da de alta una máquina. Solo la marca es obligatoria; el estado parte en Disponible.
func (uc *MachineUseCase) Create(ctx context.Context, in dto.MachineRequest) (*dto.MachineResponse, error) {
	m := &entity.Machine{State: entity.MachineAvailable}
	if err := applyMachine(m, in); err != nil {
		return nil, err
	}
	if err := uc.machines.Create(ctx, m); err != nil {
		return nil, duplicate(err, "La serie ya existe.")
	}
	return uc.response(ctx, m)
}

// Get máquina por id.
func (uc *MachineUseCase) Get(ctx context.Context, id int64) (*dto.MachineResponse, error) {
	m, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, m)
}

// List búsqueda por ?query= (serie exacta primero, luego marca y modelo).
func (uc *MachineUseCase) List(ctx context.Context, query string) ([]dto.MachineResponse, error) {
	list, err := uc.machines.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MachineResponse, 0, len(list))
	for _, m := range list {
		r, err := uc.response(ctx, m)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

// Update mezcla los campos recibidos con los actuales y vuelve a validar el conjunto.
func (uc *MachineUseCase) Update(ctx context.Context, id int64, in dto.MachineRequest) (*dto.MachineResponse, error) {
	m, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyMachine(m, in); err != nil {
		return nil, err
	}
	if err := uc.machines.Update(ctx, m); err != nil {
		return nil, duplicate(err, "La serie ya existe.")
	}
	return uc.response(ctx, m)
}

// Delete elimina la máquina si no tiene arriendos ni órdenes.
func (uc *MachineUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.machines.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Detail(domain.ErrNotFound, "Maquinaria no encontrada")
	}
	return inUse(err, "La maquinaria tiene arriendos u órdenes asociadas.")
}

// History arriendos de la máquina, del más reciente al más antiguo, con su último documento.
func (uc *MachineUseCase) History(ctx context.Context, id int64) ([]dto.MachineHistoryRow, error) {
	if _, err := uc.find(ctx, id); err != nil {
		return nil, err
	}
	rentals, err := uc.rentals.ListByMachine(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MachineHistoryRow, 0, len(rentals))
	for _, r := range rentals {
		docs, err := uc.docs.ListByRental(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		row := dto.MachineHistoryRow{
			Document:  "—",
			StartDate: dto.FormatDate(r.StartDate),
			EndDate:   dto.FormatDatePtr(r.EndDate),
			Site:      "—",
		}
		if n := len(docs); n > 0 {
			last := docs[n-1]
			row.Document = entity.DocTypeDisplay(last.Type) + " " + last.Number
		}
		if name, err := uc.siteName(ctx, r.SiteID); err != nil {
			return nil, err
		} else if name != "" {
			row.Site = name
		}
		out = append(out, row)
	}
	return out, nil
}

func (uc *MachineUseCase) find(ctx context.Context, id int64) (*entity.Machine, error) {
	m, err := uc.machines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Maquinaria no encontrada")
	}
	return m, nil
}

func (uc *MachineUseCase) siteName(ctx context.Context, siteID *int64) (string, error) {
	if siteID == nil {
		return "", nil
	}
	s, err := uc.sites.GetByID(ctx, *siteID)
	if err != nil || s == nil {
		return "", err
	}
	return s.Name, nil
}

// currentSite obra del arriendo Activo más reciente, o Bodega.
func (uc *MachineUseCase) currentSite(ctx context.Context, machineID int64) (string, error) {
	rentals, err := uc.rentals.ListByMachine(ctx, machineID)
	if err != nil {
		return "", err
	}
	for _, r := range rentals {
		if r.State != entity.RentalActive {
			continue
		}
		name, err := uc.siteName(ctx, r.SiteID)
		if err != nil {
			return "", err
		}
		if name == "" {
			return siteWarehouse, nil
		}
		return name, nil
	}
	return siteWarehouse, nil
}

func (uc *MachineUseCase) response(ctx context.Context, m *entity.Machine) (*dto.MachineResponse, error) {
	site, err := uc.currentSite(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return &dto.MachineResponse{
		ID:          m.ID,
		Brand:       m.Brand,
		Model:       optional(m.Model),
		Serial:      optional(m.Serial),
		Category:    m.Category,
		Description: optional(m.Description),
		Height:      dto.NullableDecimal(m.Height),
		Year:        m.Year,
		Tonnage:     dto.NullableDecimal(m.Tonnage),
		Load:        dto.NullableDecimal(m.Load),
		State:       m.State,
		Fuel:        optional(m.Fuel),
		HeightType:  optional(m.HeightType),
		Site:        site,
	}, nil
}

// applyMachine vuelca in sobre m y aplica las reglas de categoría.
func applyMachine(m *entity.Machine, in dto.MachineRequest) error {
	setText(&m.Brand, in.Brand)
	setText(&m.Model, in.Model)
	setText(&m.Serial, in.Serial)
	setText(&m.Description, in.Description)
	setText(&m.Fuel, in.Fuel)
	setText(&m.HeightType, in.HeightType)
	if in.Category != nil {
		m.Category = entity.NormalizeCategory(*in.Category)
	} else if m.Category == "" {
		m.Category = entity.CategoryOther
	}
	if in.State != nil {
		m.State = text(in.State)
		if m.State == "" {
			m.State = entity.MachineAvailable
		}
	}
	if in.Height != nil {
		m.Height = nullDecimal(in.Height)
	}
	if in.Tonnage != nil {
		m.Tonnage = nullDecimal(in.Tonnage)
	}
	if in.Load != nil {
		m.Load = nullDecimal(in.Load)
	}
	if in.Year != nil {
		y := *in.Year
		m.Year = &y
	}

	m.ApplyCategoryRules()

	if m.Height.Valid && m.Height.Decimal.IsNegative() {
		return domain.Detail(domain.ErrInvalidInput, "La altura no puede ser negativa.")
	}
	if m.Brand == "" {
		return domain.Detail(domain.ErrInvalidInput, "La marca es obligatoria.")
	}
	return nil
}
