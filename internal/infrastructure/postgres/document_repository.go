package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `d.id, d.tipo, d.numero, d.fecha_emision, d.monto_neto, d.monto_iva, d.monto_total,
	d.arriendo_id, d.cliente_id, d.relacionado_con_id, d.es_retiro, d.obra_origen_id, d.obra_destino_id, d.archivo_url`

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	var fileURL *string
	if err := row.Scan(&d.ID, &d.Type, &d.Number, &d.IssueDate, &d.NetAmount, &d.TaxAmount, &d.TotalAmount,
		&d.RentalID, &d.ClientID, &d.RelatedID, &d.IsWithdrawal, &d.OriginSiteID, &d.DestinationSiteID, &fileURL); err != nil {
		return nil, err
	}
	d.FileURL = deref(fileURL)
	return &d, nil
}

// Create persiste un documento y asigna su ID.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `
		INSERT INTO documentos (tipo, numero, fecha_emision, monto_neto, monto_iva, monto_total, arriendo_id,
			cliente_id, relacionado_con_id, es_retiro, obra_origen_id, obra_destino_id, archivo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		d.Type, d.Number, d.IssueDate, d.NetAmount, d.TaxAmount, d.TotalAmount, d.RentalID,
		d.ClientID, d.RelatedID, d.IsWithdrawal, d.OriginSiteID, d.DestinationSiteID, nullIfEmpty(d.FileURL),
	).Scan(&d.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Detail(domain.ErrInvalidInput, "el documento referencia un registro inexistente")
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*entity.Document, error) {
	d, err := scanOne(r.q.QueryRow(ctx, `SELECT `+documentColumns+` FROM documentos d WHERE d.id = $1`, id), scanDocument)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// LastByType último documento del tipo por id. Sin bloqueo: dos emisiones simultáneas
// pueden leer el mismo último número.
func (r *DocumentRepo) LastByType(ctx context.Context, docType string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documentos d WHERE d.tipo = $1 ORDER BY d.id DESC LIMIT 1`
	d, err := scanOne(r.q.QueryRow(ctx, query, docType), scanDocument)
	if err != nil {
		return nil, fmt.Errorf("last document by type: %w", err)
	}
	return d, nil
}

// List documentos filtrados, más recientes primero.
func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Document, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != "" {
		add("d.tipo = $%d", f.Type)
	}
	if f.Number != "" {
		add("d.numero ILIKE $%d", likePattern(f.Number))
	}
	if f.Client != "" {
		args = append(args, likePattern(f.Client))
		n := len(args)
		where = append(where, fmt.Sprintf("(c.razon_social ILIKE $%d OR c.rut ILIKE $%d)", n, n))
	}
	if f.From != nil {
		add("d.fecha_emision >= $%d", *f.From)
	}
	if f.To != nil {
		add("d.fecha_emision <= $%d", *f.To)
	}
	query := `SELECT ` + documentColumns + ` FROM documentos d LEFT JOIN clientes c ON c.id = d.cliente_id`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY d.fecha_emision DESC, d.id DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return scanAll(rows, scanDocument)
}

// ListByRental documentos de un arriendo en orden cronológico.
func (r *DocumentRepo) ListByRental(ctx context.Context, rentalID int64) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documentos d WHERE d.arriendo_id = $1 ORDER BY d.fecha_emision, d.id`
	rows, err := r.q.Query(ctx, query, rentalID)
	if err != nil {
		return nil, fmt.Errorf("list documents by rental: %w", err)
	}
	return scanAll(rows, scanDocument)
}

// ListByMachine documentos de los arriendos de una máquina en orden cronológico.
func (r *DocumentRepo) ListByMachine(ctx context.Context, machineID int64) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documentos d
		JOIN arriendos a ON a.id = d.arriendo_id
		WHERE a.maquinaria_id = $1 ORDER BY d.fecha_emision, d.id`
	rows, err := r.q.Query(ctx, query, machineID)
	if err != nil {
		return nil, fmt.Errorf("list documents by machine: %w", err)
	}
	return scanAll(rows, scanDocument)
}

// ListRelatedTo documentos que apuntan a id en relacionado_con.
func (r *DocumentRepo) ListRelatedTo(ctx context.Context, id int64) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documentos d WHERE d.relacionado_con_id = $1 ORDER BY d.id`
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list related documents: %w", err)
	}
	return scanAll(rows, scanDocument)
}
