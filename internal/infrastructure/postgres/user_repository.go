package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, username, email, password_hash, is_staff, is_superuser, date_joined`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var email *string
	if err := row.Scan(&u.ID, &u.Username, &email, &u.PasswordHash, &u.IsStaff, &u.IsSuperuser, &u.DateJoined); err != nil {
		return nil, err
	}
	u.Email = deref(email)
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, is_staff, is_superuser, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Username, nullIfEmpty(u.Email), u.PasswordHash, u.IsStaff, u.IsSuperuser, u.DateJoined,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanOne(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id), scanUser)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByUsername obtiene un usuario por nombre (sin distinguir mayúsculas).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(username) = lower($1)`
	u, err := scanOne(r.q.QueryRow(ctx, query, username), scanUser)
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// List usuarios por fecha de alta.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY date_joined, username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return scanAll(rows, scanUser)
}

// Update guarda los datos editables del usuario.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET username = $2, email = $3, password_hash = $4, is_staff = $5, is_superuser = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, u.ID, u.Username, nullIfEmpty(u.Email), u.PasswordHash, u.IsStaff, u.IsSuperuser)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el usuario; user_security cae por ON DELETE CASCADE.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetSecurity estado de bloqueo del usuario; (nil, nil) si no existe aún.
func (r *UserRepo) GetSecurity(ctx context.Context, userID string) (*entity.UserSecurity, error) {
	query := `SELECT user_id, failed_attempts, is_locked, locked_at FROM user_security WHERE user_id = $1`
	sec, err := scanOne(r.q.QueryRow(ctx, query, userID), func(row pgx.Row) (*entity.UserSecurity, error) {
		var s entity.UserSecurity
		if err := row.Scan(&s.UserID, &s.FailedAttempts, &s.IsLocked, &s.LockedAt); err != nil {
			return nil, err
		}
		return &s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("get user security: %w", err)
	}
	return sec, nil
}

// SaveSecurity inserta o actualiza el estado de bloqueo.
func (r *UserRepo) SaveSecurity(ctx context.Context, s *entity.UserSecurity) error {
	query := `
		INSERT INTO user_security (user_id, failed_attempts, is_locked, locked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET failed_attempts = EXCLUDED.failed_attempts, is_locked = EXCLUDED.is_locked, locked_at = EXCLUDED.locked_at`
	if _, err := r.q.Exec(ctx, query, s.UserID, s.FailedAttempts, s.IsLocked, s.LockedAt); err != nil {
		return fmt.Errorf("save user security: %w", err)
	}
	return nil
}
