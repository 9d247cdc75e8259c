package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

var _ repository.SiteRepository = (*SiteRepo)(nil)

const siteColumns = `id, nombre, direccion, contacto_nombre, contacto_telefono, contacto_email`

// SiteRepo implementación de SiteRepository.
type SiteRepo struct {
	q Querier
}

// NewSiteRepository construye el adaptador.
func NewSiteRepository(q Querier) *SiteRepo {
	return &SiteRepo{q: q}
}

func scanSite(row pgx.Row) (*entity.Site, error) {
	var s entity.Site
	var addr, cname, cphone, cemail *string
	if err := row.Scan(&s.ID, &s.Name, &addr, &cname, &cphone, &cemail); err != nil {
		return nil, err
	}
	s.Address, s.ContactName, s.ContactPhone, s.ContactEmail = deref(addr), deref(cname), deref(cphone), deref(cemail)
	return &s, nil
}

func (r *SiteRepo) Create(ctx context.Context, s *entity.Site) error {
	query := `
		INSERT INTO obras (nombre, direccion, contacto_nombre, contacto_telefono, contacto_email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.Name, nullIfEmpty(s.Address), nullIfEmpty(s.ContactName), nullIfEmpty(s.ContactPhone), nullIfEmpty(s.ContactEmail),
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert site: %w", err)
	}
	return nil
}

func (r *SiteRepo) GetByID(ctx context.Context, id int64) (*entity.Site, error) {
	s, err := scanOne(r.q.QueryRow(ctx, `SELECT `+siteColumns+` FROM obras WHERE id = $1`, id), scanSite)
	if err != nil {
		return nil, fmt.Errorf("get site: %w", err)
	}
	return s, nil
}

func (r *SiteRepo) GetByName(ctx context.Context, name string) (*entity.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM obras WHERE lower(nombre) = lower($1) ORDER BY id LIMIT 1`
	s, err := scanOne(r.q.QueryRow(ctx, query, name), scanSite)
	if err != nil {
		return nil, fmt.Errorf("get site by name: %w", err)
	}
	return s, nil
}

func (r *SiteRepo) List(ctx context.Context) ([]*entity.Site, error) {
	rows, err := r.q.Query(ctx, `SELECT `+siteColumns+` FROM obras ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return scanAll(rows, scanSite)
}

func (r *SiteRepo) Update(ctx context.Context, s *entity.Site) error {
	query := `
		UPDATE obras SET nombre = $2, direccion = $3, contacto_nombre = $4, contacto_telefono = $5, contacto_email = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.Name, nullIfEmpty(s.Address), nullIfEmpty(s.ContactName), nullIfEmpty(s.ContactPhone), nullIfEmpty(s.ContactEmail),
	)
	if err != nil {
		return fmt.Errorf("update site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SiteRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "obras", id)
}
