package repository

import (
	"context"

	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

// ClientRepository puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	// GetByRUT coincidencia exacta sin distinguir mayúsculas.
	GetByRUT(ctx context.Context, rut string) (*entity.Client, error)
	// FindFirstByText primer cliente (por id) cuya razón social o RUT contiene text.
	FindFirstByText(ctx context.Context, text string) (*entity.Client, error)
	// Search: si query son solo dígitos, prefijo del RUT sin puntos ni guion; si no, contiene en razón social o RUT.
	Search(ctx context.Context, query string) ([]*entity.Client, error)
	Update(ctx context.Context, c *entity.Client) error
	Delete(ctx context.Context, id int64) error
}
