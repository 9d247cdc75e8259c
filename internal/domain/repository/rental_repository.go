package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

// RentalRepository puerto de persistencia para Rental.
type RentalRepository interface {
	Create(ctx context.Context, r *entity.Rental) error
	GetByID(ctx context.Context, id int64) (*entity.Rental, error)
	List(ctx context.Context) ([]*entity.Rental, error)
	// ListActive arriendos en estado Activo sin término o con término >= day, ordenados por id.
	ListActive(ctx context.Context, day time.Time) ([]*entity.Rental, error)
	// ListByMachine arriendos de la máquina, del más reciente (fecha inicio, id) al más antiguo.
	ListByMachine(ctx context.Context, machineID int64) ([]*entity.Rental, error)
	Update(ctx context.Context, r *entity.Rental) error
	Delete(ctx context.Context, id int64) error
}
