package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

// RentalUseCase CRUD de arriendos. Los arriendos que nacen de una OT los crea el flujo de órdenes.
type RentalUseCase struct {
	rentals  repository.RentalRepository
	machines repository.MachineRepository
	now      func() time.Time
}

// NewRentalUseCase construye el caso de uso.
func NewRentalUseCase(rentals repository.RentalRepository, machines repository.MachineRepository) *RentalUseCase {
	return &RentalUseCase{rentals: rentals, machines: machines, now: time.Now}
}

// Create exige una máquina existente; sin fecha de inicio se usa hoy.
func (uc *RentalUseCase) Create(ctx context.Context, in dto.RentalRequest) (*dto.RentalResponse, error) {
	if in.MachineID == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Maquinaria no encontrada")
	}
	m, err := uc.machines.GetByID(ctx, *in.MachineID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Maquinaria no encontrada")
	}

	r := &entity.Rental{
		StartDate: entity.DateOnly(uc.now()),
		Period:    entity.PeriodMonth,
		Rate:      decimal.Zero,
		State:     entity.RentalActive,
	}
	if err := applyRental(r, in); err != nil {
		return nil, err
	}
	if err := uc.rentals.Create(ctx, r); err != nil {
		return nil, err
	}
	return toRentalResponse(r), nil
}

func (uc *RentalUseCase) Get(ctx context.Context, id int64) (*dto.RentalResponse, error) {
	r, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRentalResponse(r), nil
}

func (uc *RentalUseCase) List(ctx context.Context) ([]dto.RentalResponse, error) {
	list, err := uc.rentals.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RentalResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRentalResponse(r))
	}
	return out, nil
}

func (uc *RentalUseCase) Update(ctx context.Context, id int64, in dto.RentalRequest) (*dto.RentalResponse, error) {
	r, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyRental(r, in); err != nil {
		return nil, err
	}
	if err := uc.rentals.Update(ctx, r); err != nil {
		return nil, err
	}
	return toRentalResponse(r), nil
}

func (uc *RentalUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.rentals.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Detail(domain.ErrNotFound, "Arriendo no encontrado")
	}
	return inUse(err, "El arriendo tiene documentos u órdenes asociadas.")
}

func (uc *RentalUseCase) find(ctx context.Context, id int64) (*entity.Rental, error) {
	r, err := uc.rentals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Arriendo no encontrado")
	}
	return r, nil
}

func applyRental(r *entity.Rental, in dto.RentalRequest) error {
	if in.MachineID != nil {
		r.MachineID = copyID(in.MachineID)
	}
	if in.ClientID != nil {
		r.ClientID = copyID(in.ClientID)
	}
	if in.SiteID != nil {
		r.SiteID = copyID(in.SiteID)
	}
	if in.StartDate != nil {
		d, ok := entity.ParseDate(*in.StartDate)
		if !ok {
			return domain.Detail(domain.ErrInvalidInput, "fecha_inicio inválida. Use AAAA-MM-DD.")
		}
		r.StartDate = d
	}
	if in.EndDate != nil {
		if text(in.EndDate) == "" {
			r.EndDate = nil
		} else {
			d, ok := entity.ParseDate(*in.EndDate)
			if !ok {
				return domain.Detail(domain.ErrInvalidInput, "fecha_termino inválida. Use AAAA-MM-DD.")
			}
			r.EndDate = &d
		}
	}
	if in.Period != nil {
		r.Period = text(in.Period)
	}
	if !entity.ValidPeriod(r.Period) {
		return domain.Detail(domain.ErrInvalidInput, "periodo inválido. Debe ser 'Dia', 'Semana' o 'Mes'.")
	}
	if in.Rate != nil {
		r.Rate = in.Rate.Decimal
	}
	if r.Rate.IsNegative() {
		return domain.Detail(domain.ErrInvalidInput, "La tarifa no puede ser negativa.")
	}
	if in.State != nil && text(in.State) != "" {
		r.State = text(in.State)
	}
	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return domain.Detail(domain.ErrInvalidInput, "La fecha de término no puede ser anterior al inicio.")
	}
	return nil
}

func copyID(p *int64) *int64 {
	v := *p
	return &v
}

func toRentalResponse(r *entity.Rental) *dto.RentalResponse {
	return &dto.RentalResponse{
		ID:        r.ID,
		MachineID: r.MachineID,
		ClientID:  r.ClientID,
		SiteID:    r.SiteID,
		StartDate: dto.FormatDate(r.StartDate),
		EndDate:   dto.FormatDatePtr(r.EndDate),
		Period:    r.Period,
		Rate:      r.Rate,
		State:     r.State,
	}
}
