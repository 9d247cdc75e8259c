package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

const workOrderColumns = `id, arriendo_id, cliente_id, maquinaria_id, tipo, tipo_comercial, estado, fecha_creacion,
	fecha_cierre, es_facturable, factura_id, guia_id, observaciones, direccion, obra_nombre, contactos,
	orden_compra, vendedor, fecha_emision_doc, detalle_lineas, monto_neto, monto_iva, monto_total`

// WorkOrderRepo implementación de WorkOrderRepository (usable con pool o tx).
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

func scanWorkOrder(row pgx.Row) (*entity.WorkOrder, error) {
	var o entity.WorkOrder
	var commercial, obs, addr, site, contacts, po, seller *string
	if err := row.Scan(&o.ID, &o.RentalID, &o.ClientID, &o.MachineID, &o.Type, &commercial, &o.State, &o.CreatedAt,
		&o.ClosedAt, &o.Billable, &o.InvoiceID, &o.GuideID, &obs, &addr, &site, &contacts,
		&po, &seller, &o.IssueDate, &o.Lines, &o.NetAmount, &o.TaxAmount, &o.TotalAmount); err != nil {
		return nil, err
	}
	o.CommercialType, o.Observations, o.Address = deref(commercial), deref(obs), deref(addr)
	o.SiteName, o.Contacts, o.PurchaseOrder, o.Seller = deref(site), deref(contacts), deref(po), deref(seller)
	if o.Lines == nil {
		o.Lines = []entity.LineItem{}
	}
	return &o, nil
}

// Create persiste la OT y asigna su ID.
func (r *WorkOrderRepo) Create(ctx context.Context, o *entity.WorkOrder) error {
	query := `
		INSERT INTO ordenes_trabajo (arriendo_id, cliente_id, maquinaria_id, tipo, tipo_comercial, estado,
			fecha_creacion, fecha_cierre, es_facturable, factura_id, guia_id, observaciones, direccion, obra_nombre,
			contactos, orden_compra, vendedor, fecha_emision_doc, detalle_lineas, monto_neto, monto_iva, monto_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		o.RentalID, o.ClientID, o.MachineID, o.Type, nullIfEmpty(o.CommercialType), o.State,
		o.CreatedAt, o.ClosedAt, o.Billable, o.InvoiceID, o.GuideID, nullIfEmpty(o.Observations),
		nullIfEmpty(o.Address), nullIfEmpty(o.SiteName), nullIfEmpty(o.Contacts), nullIfEmpty(o.PurchaseOrder),
		nullIfEmpty(o.Seller), o.IssueDate, o.Lines, o.NetAmount, o.TaxAmount, o.TotalAmount,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// GetByID obtiene una OT por ID.
func (r *WorkOrderRepo) GetByID(ctx context.Context, id int64) (*entity.WorkOrder, error) {
	o, err := scanOne(r.q.QueryRow(ctx, `SELECT `+workOrderColumns+` FROM ordenes_trabajo WHERE id = $1`, id), scanWorkOrder)
	if err != nil {
		return nil, fmt.Errorf("get work order: %w", err)
	}
	return o, nil
}

// Update guarda todos los campos de la OT.
func (r *WorkOrderRepo) Update(ctx context.Context, o *entity.WorkOrder) error {
	query := `
		UPDATE ordenes_trabajo SET arriendo_id = $2, cliente_id = $3, maquinaria_id = $4, tipo = $5,
			tipo_comercial = $6, estado = $7, fecha_cierre = $8, es_facturable = $9, factura_id = $10, guia_id = $11,
			observaciones = $12, direccion = $13, obra_nombre = $14, contactos = $15, orden_compra = $16,
			vendedor = $17, fecha_emision_doc = $18, detalle_lineas = $19, monto_neto = $20, monto_iva = $21,
			monto_total = $22
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		o.ID, o.RentalID, o.ClientID, o.MachineID, o.Type, nullIfEmpty(o.CommercialType), o.State,
		o.ClosedAt, o.Billable, o.InvoiceID, o.GuideID, nullIfEmpty(o.Observations),
		nullIfEmpty(o.Address), nullIfEmpty(o.SiteName), nullIfEmpty(o.Contacts), nullIfEmpty(o.PurchaseOrder),
		nullIfEmpty(o.Seller), o.IssueDate, o.Lines, o.NetAmount, o.TaxAmount, o.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("update work order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List OT filtradas, más recientes primero.
func (r *WorkOrderRepo) List(ctx context.Context, f repository.WorkOrderFilter) ([]*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM ordenes_trabajo WHERE TRUE`
	if f.OnlyPending || f.OnlyBillingPending {
		query += ` AND estado = 'PEND'`
	}
	if f.OnlyBillingPending {
		query += ` AND es_facturable AND factura_id IS NULL`
	}
	query += ` ORDER BY fecha_creacion DESC, id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	return scanAll(rows, scanWorkOrder)
}

// LatestByRental OT más reciente del arriendo.
func (r *WorkOrderRepo) LatestByRental(ctx context.Context, rentalID int64) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM ordenes_trabajo WHERE arriendo_id = $1
		ORDER BY fecha_creacion DESC, id DESC LIMIT 1`
	o, err := scanOne(r.q.QueryRow(ctx, query, rentalID), scanWorkOrder)
	if err != nil {
		return nil, fmt.Errorf("latest work order by rental: %w", err)
	}
	return o, nil
}

// LatestByGuide OT más reciente con la guía dada.
func (r *WorkOrderRepo) LatestByGuide(ctx context.Context, guideID int64) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM ordenes_trabajo WHERE guia_id = $1
		ORDER BY fecha_creacion DESC, id DESC LIMIT 1`
	o, err := scanOne(r.q.QueryRow(ctx, query, guideID), scanWorkOrder)
	if err != nil {
		return nil, fmt.Errorf("latest work order by guide: %w", err)
	}
	return o, nil
}

// LatestByInvoice OT más reciente con la factura dada.
func (r *WorkOrderRepo) LatestByInvoice(ctx context.Context, invoiceID int64) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM ordenes_trabajo WHERE factura_id = $1
		ORDER BY fecha_creacion DESC, id DESC LIMIT 1`
	o, err := scanOne(r.q.QueryRow(ctx, query, invoiceID), scanWorkOrder)
	if err != nil {
		return nil, fmt.Errorf("latest work order by invoice: %w", err)
	}
	return o, nil
}
