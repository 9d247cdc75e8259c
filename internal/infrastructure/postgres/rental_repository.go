package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

var _ repository.RentalRepository = (*RentalRepo)(nil)

const rentalColumns = `id, maquinaria_id, cliente_id, obra_id, fecha_inicio, fecha_termino, periodo, tarifa, estado`

// RentalRepo implementación de RentalRepository (usable con pool o tx).
type RentalRepo struct {
	q Querier
}

// NewRentalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRentalRepository(q Querier) *RentalRepo {
	return &RentalRepo{q: q}
}

func scanRental(row pgx.Row) (*entity.Rental, error) {
	var a entity.Rental
	if err := row.Scan(&a.ID, &a.MachineID, &a.ClientID, &a.SiteID, &a.StartDate, &a.EndDate,
		&a.Period, &a.Rate, &a.State); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste un arriendo y asigna su ID.
func (r *RentalRepo) Create(ctx context.Context, a *entity.Rental) error {
	query := `
		INSERT INTO arriendos (maquinaria_id, cliente_id, obra_id, fecha_inicio, fecha_termino, periodo, tarifa, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		a.MachineID, a.ClientID, a.SiteID, a.StartDate, a.EndDate, a.Period, a.Rate, a.State,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert rental: %w", err)
	}
	return nil
}

// GetByID obtiene un arriendo por ID.
func (r *RentalRepo) GetByID(ctx context.Context, id int64) (*entity.Rental, error) {
	a, err := scanOne(r.q.QueryRow(ctx, `SELECT `+rentalColumns+` FROM arriendos WHERE id = $1`, id), scanRental)
	if err != nil {
		return nil, fmt.Errorf("get rental: %w", err)
	}
	return a, nil
}

// List todos los arriendos por id.
func (r *RentalRepo) List(ctx context.Context) ([]*entity.Rental, error) {
	rows, err := r.q.Query(ctx, `SELECT `+rentalColumns+` FROM arriendos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	return scanAll(rows, scanRental)
}

// ListActive arriendos vigentes al día indicado.
func (r *RentalRepo) ListActive(ctx context.Context, day time.Time) ([]*entity.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM arriendos
		WHERE lower(estado) = lower($1) AND (fecha_termino IS NULL OR fecha_termino >= $2)
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, entity.RentalActive, entity.DateOnly(day))
	if err != nil {
		return nil, fmt.Errorf("list active rentals: %w", err)
	}
	return scanAll(rows, scanRental)
}

// ListByMachine arriendos de una máquina, más recientes primero.
func (r *RentalRepo) ListByMachine(ctx context.Context, machineID int64) ([]*entity.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM arriendos WHERE maquinaria_id = $1 ORDER BY fecha_inicio DESC, id DESC`
	rows, err := r.q.Query(ctx, query, machineID)
	if err != nil {
		return nil, fmt.Errorf("list rentals by machine: %w", err)
	}
	return scanAll(rows, scanRental)
}

// Update actualiza un arriendo.
func (r *RentalRepo) Update(ctx context.Context, a *entity.Rental) error {
	query := `
		UPDATE arriendos SET maquinaria_id = $2, cliente_id = $3, obra_id = $4, fecha_inicio = $5,
			fecha_termino = $6, periodo = $7, tarifa = $8, estado = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		a.ID, a.MachineID, a.ClientID, a.SiteID, a.StartDate, a.EndDate, a.Period, a.Rate, a.State,
	)
	if err != nil {
		return fmt.Errorf("update rental: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un arriendo (sus documentos se borran en cascada).
func (r *RentalRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "arriendos", id)
}
