package entity

import "time"

// Roles derivados de los flags del usuario (van en el JWT).
const (
	RoleSuperuser = "superuser"
	RoleStaff     = "staff"
	RoleUser      = "user"
)

// MaxFailedLogins intentos fallidos consecutivos antes de bloquear la cuenta.
const MaxFailedLogins = 5

// User representa un usuario del back office.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash
	IsStaff      bool
	IsSuperuser  bool
	DateJoined   time.Time
}

// Role rol efectivo del usuario.
func (u *User) Role() string {
	switch {
	case u.IsSuperuser:
		return RoleSuperuser
	case u.IsStaff:
		return RoleStaff
	}
	return RoleUser
}

// UserSecurity contador de intentos fallidos y bloqueo (uno a uno con User, creado bajo demanda).
type UserSecurity struct {
	UserID         string
	FailedAttempts int
	IsLocked       bool
	LockedAt       *time.Time
}

// RegisterFailure suma un intento fallido y bloquea al llegar a MaxFailedLogins.
func (s *UserSecurity) RegisterFailure(now time.Time) {
	s.FailedAttempts++
	if s.FailedAttempts >= MaxFailedLogins && !s.IsLocked {
		s.IsLocked = true
		s.LockedAt = &now
	}
}
