package repository

import (
	"context"

	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

// MachineRepository puerto de persistencia para Machine.
// Los Get devuelven (nil, nil) si no existe.
type MachineRepository interface {
	Create(ctx context.Context, m *entity.Machine) error
	GetByID(ctx context.Context, id int64) (*entity.Machine, error)
	// GetBySerial busca por serie sin distinguir mayúsculas.
	GetBySerial(ctx context.Context, serial string) (*entity.Machine, error)
	// Search: serie exacta (sin mayúsculas) o marca/modelo contiene query; coincidencias de serie primero.
	// Query vacío lista todo ordenado por id.
	Search(ctx context.Context, query string) ([]*entity.Machine, error)
	// ListByState máquinas en el estado dado, filtrando marca/modelo/serie por query, ordenadas por marca, modelo, serie.
	ListByState(ctx context.Context, state, query string) ([]*entity.Machine, error)
	Update(ctx context.Context, m *entity.Machine) error
	Delete(ctx context.Context, id int64) error
}
