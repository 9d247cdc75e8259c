package repository

import (
	"context"

	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

// WorkOrderFilter filtros del listado de OT.
type WorkOrderFilter struct {
	OnlyPending        bool // estado PEND
	OnlyBillingPending bool // PEND, facturable y sin factura
}

// WorkOrderRepository puerto de persistencia para WorkOrder.
type WorkOrderRepository interface {
	Create(ctx context.Context, o *entity.WorkOrder) error
	GetByID(ctx context.Context, id int64) (*entity.WorkOrder, error)
	Update(ctx context.Context, o *entity.WorkOrder) error
	// List ordenado por fecha de creación descendente.
	List(ctx context.Context, f WorkOrderFilter) ([]*entity.WorkOrder, error)
	// LatestByRental OT más reciente (creación, id) del arriendo.
	LatestByRental(ctx context.Context, rentalID int64) (*entity.WorkOrder, error)
	// LatestByGuide OT más reciente que tiene asociada la guía dada.
	LatestByGuide(ctx context.Context, guideID int64) (*entity.WorkOrder, error)
	// LatestByInvoice igual, para la factura.
	LatestByInvoice(ctx context.Context, invoiceID int64) (*entity.WorkOrder, error)
}
