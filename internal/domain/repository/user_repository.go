package repository

import (
	"context"

	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para User y su UserSecurity.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByUsername sin distinguir mayúsculas.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	// Delete elimina el usuario y su estado de seguridad.
	Delete(ctx context.Context, id string) error
	// GetSecurity devuelve (nil, nil) si aún no existe.
	GetSecurity(ctx context.Context, userID string) (*entity.UserSecurity, error)
	// SaveSecurity inserta o actualiza.
	SaveSecurity(ctx context.Context, s *entity.UserSecurity) error
}
