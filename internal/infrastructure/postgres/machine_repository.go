package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

var _ repository.MachineRepository = (*MachineRepo)(nil)

const machineColumns = `id, marca, modelo, serie, categoria, descripcion, altura, anio, tonelaje, carga,
	tipo_altura, combustible, estado`

// MachineRepo implementación de MachineRepository (usable con pool o tx).
type MachineRepo struct {
	q Querier
}

// NewMachineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMachineRepository(q Querier) *MachineRepo {
	return &MachineRepo{q: q}
}

func scanMachine(row pgx.Row) (*entity.Machine, error) {
	var m entity.Machine
	var model, serial, desc, heightType, fuel *string
	if err := row.Scan(&m.ID, &m.Brand, &model, &serial, &m.Category, &desc, &m.Height, &m.Year,
		&m.Tonnage, &m.Load, &heightType, &fuel, &m.State); err != nil {
		return nil, err
	}
	m.Model, m.Serial, m.Description = deref(model), deref(serial), deref(desc)
	m.HeightType, m.Fuel = deref(heightType), deref(fuel)
	return &m, nil
}

// Create persiste una máquina y asigna su ID.
func (r *MachineRepo) Create(ctx context.Context, m *entity.Machine) error {
	query := `
		INSERT INTO maquinarias (marca, modelo, serie, categoria, descripcion, altura, anio, tonelaje, carga,
			tipo_altura, combustible, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.Brand, nullIfEmpty(m.Model), nullIfEmpty(m.Serial), m.Category, nullIfEmpty(m.Description),
		m.Height, m.Year, m.Tonnage, m.Load, nullIfEmpty(m.HeightType), nullIfEmpty(m.Fuel), m.State,
	).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert machine: %w", err)
	}
	return nil
}

// GetByID obtiene una máquina por ID.
func (r *MachineRepo) GetByID(ctx context.Context, id int64) (*entity.Machine, error) {
	m, err := scanOne(r.q.QueryRow(ctx, `SELECT `+machineColumns+` FROM maquinarias WHERE id = $1`, id), scanMachine)
	if err != nil {
		return nil, fmt.Errorf("get machine: %w", err)
	}
	return m, nil
}

// GetBySerial obtiene una máquina por serie (sin distinguir mayúsculas).
func (r *MachineRepo) GetBySerial(ctx context.Context, serial string) (*entity.Machine, error) {
	query := `SELECT ` + machineColumns + ` FROM maquinarias WHERE lower(serie) = lower($1) ORDER BY id LIMIT 1`
	m, err := scanOne(r.q.QueryRow(ctx, query, serial), scanMachine)
	if err != nil {
		return nil, fmt.Errorf("get machine by serial: %w", err)
	}
	return m, nil
}

// Search busca por serie exacta o marca/modelo; las coincidencias de serie van primero.
func (r *MachineRepo) Search(ctx context.Context, query string) ([]*entity.Machine, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if query == "" {
		rows, err = r.q.Query(ctx, `SELECT `+machineColumns+` FROM maquinarias ORDER BY id`)
	} else {
		rows, err = r.q.Query(ctx, `
			SELECT `+machineColumns+` FROM maquinarias
			WHERE lower(serie) = lower($1) OR marca ILIKE $2 OR modelo ILIKE $2
			ORDER BY CASE WHEN lower(serie) = lower($1) THEN 1 ELSE 0 END DESC, marca, modelo`,
			query, likePattern(query))
	}
	if err != nil {
		return nil, fmt.Errorf("search machines: %w", err)
	}
	return scanAll(rows, scanMachine)
}

// ListByState máquinas en un estado, filtradas por marca/modelo/serie.
func (r *MachineRepo) ListByState(ctx context.Context, state, query string) ([]*entity.Machine, error) {
	sql := `SELECT ` + machineColumns + ` FROM maquinarias WHERE lower(estado) = lower($1)`
	args := []any{state}
	if query != "" {
		sql += ` AND (marca ILIKE $2 OR modelo ILIKE $2 OR serie ILIKE $2)`
		args = append(args, likePattern(query))
	}
	sql += ` ORDER BY marca, modelo, serie`
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list machines by state: %w", err)
	}
	return scanAll(rows, scanMachine)
}

// Update actualiza todos los campos editables.
func (r *MachineRepo) Update(ctx context.Context, m *entity.Machine) error {
	query := `
		UPDATE maquinarias SET marca = $2, modelo = $3, serie = $4, categoria = $5, descripcion = $6,
			altura = $7, anio = $8, tonelaje = $9, carga = $10, tipo_altura = $11, combustible = $12, estado = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.Brand, nullIfEmpty(m.Model), nullIfEmpty(m.Serial), m.Category, nullIfEmpty(m.Description),
		m.Height, m.Year, m.Tonnage, m.Load, nullIfEmpty(m.HeightType), nullIfEmpty(m.Fuel), m.State,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update machine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una máquina; si tiene arriendos u órdenes devuelve ErrConflict.
func (r *MachineRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "maquinarias", id)
}

// deleteByID borra por id traduciendo FK violada a ErrConflict y 0 filas a ErrNotFound.
func deleteByID(ctx context.Context, q Querier, table string, id int64) error {
	tag, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
