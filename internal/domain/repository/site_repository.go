package repository

import (
	"context"

	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

// SiteRepository puerto de persistencia para Site (obra).
type SiteRepository interface {
	Create(ctx context.Context, s *entity.Site) error
	GetByID(ctx context.Context, id int64) (*entity.Site, error)
	// GetByName coincidencia exacta de nombre sin distinguir mayúsculas (la de menor id).
	GetByName(ctx context.Context, name string) (*entity.Site, error)
	List(ctx context.Context) ([]*entity.Site, error)
	Update(ctx context.Context, s *entity.Site) error
	Delete(ctx context.Context, id int64) error
}
