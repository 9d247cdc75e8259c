package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
	"github.com/jhoicas/Arriendos-api/pkg/rut"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, razon_social, rut, direccion, telefono, correo_electronico, forma_pago`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var addr, phone, email, terms *string
	if err := row.Scan(&c.ID, &c.LegalName, &c.RUT, &addr, &phone, &email, &terms); err != nil {
		return nil, err
	}
	c.Address, c.Phone, c.Email, c.PaymentTerms = deref(addr), deref(phone), deref(email), deref(terms)
	return &c, nil
}

// Create persiste un cliente y asigna su ID.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clientes (razon_social, rut, direccion, telefono, correo_electronico, forma_pago)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.LegalName, c.RUT, nullIfEmpty(c.Address), nullIfEmpty(c.Phone), nullIfEmpty(c.Email), nullIfEmpty(c.PaymentTerms),
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	c, err := scanOne(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clientes WHERE id = $1`, id), scanClient)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// GetByRUT obtiene un cliente por RUT exacto (sin distinguir mayúsculas).
func (r *ClientRepo) GetByRUT(ctx context.Context, value string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes WHERE lower(rut) = lower($1) ORDER BY id LIMIT 1`
	c, err := scanOne(r.q.QueryRow(ctx, query, value), scanClient)
	if err != nil {
		return nil, fmt.Errorf("get client by rut: %w", err)
	}
	return c, nil
}

// FindFirstByText primer cliente cuya razón social o RUT contiene text.
func (r *ClientRepo) FindFirstByText(ctx context.Context, text string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes
		WHERE razon_social ILIKE $1 OR rut ILIKE $1 ORDER BY id LIMIT 1`
	c, err := scanOne(r.q.QueryRow(ctx, query, likePattern(text)), scanClient)
	if err != nil {
		return nil, fmt.Errorf("find client by text: %w", err)
	}
	return c, nil
}

// Search ver repository.ClientRepository.
func (r *ClientRepo) Search(ctx context.Context, query string) ([]*entity.Client, error) {
	var (
		rows pgx.Rows
		err  error
	)
	switch {
	case query == "":
		rows, err = r.q.Query(ctx, `SELECT `+clientColumns+` FROM clientes ORDER BY id`)
	case rut.IsDigits(query):
		rows, err = r.q.Query(ctx, `SELECT `+clientColumns+` FROM clientes
			WHERE replace(replace(rut, '.', ''), '-', '') LIKE $1 ORDER BY id`, query+"%")
	default:
		rows, err = r.q.Query(ctx, `SELECT `+clientColumns+` FROM clientes
			WHERE razon_social ILIKE $1 OR rut ILIKE $1 ORDER BY id`, likePattern(query))
	}
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	return scanAll(rows, scanClient)
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clientes SET razon_social = $2, rut = $3, direccion = $4, telefono = $5,
			correo_electronico = $6, forma_pago = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.LegalName, c.RUT, nullIfEmpty(c.Address), nullIfEmpty(c.Phone), nullIfEmpty(c.Email), nullIfEmpty(c.PaymentTerms),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "clientes", id)
}
