package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

// Largo permitido de la contraseña al administrar usuarios.
const (
	minPasswordLen = 8
	maxPasswordLen = 10
)

// Actor usuario autenticado que ejecuta la operación (sale del JWT).
type Actor struct {
	UserID      string
	IsStaff     bool
	IsSuperuser bool
}

// ActorFromRole arma el Actor a partir del rol del token.
func ActorFromRole(userID, role string) Actor {
	return Actor{
		UserID:      userID,
		IsStaff:     role == entity.RoleStaff || role == entity.RoleSuperuser,
		IsSuperuser: role == entity.RoleSuperuser,
	}
}

// UserUseCase administración de usuarios (solo staff).
type UserUseCase struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, now: time.Now}
}

// List usuarios por fecha de alta.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToUserResponse(u), nil
}

// Create alta desde administración. Solo un superusuario puede crear otro superusuario.
func (uc *UserUseCase) Create(ctx context.Context, actor Actor, in dto.UserRequest) (*dto.UserResponse, error) {
	if text(in.Username) == "" {
		return nil, domain.Detail(domain.ErrInvalidInput, "El nombre de usuario es obligatorio.")
	}
	if in.Password == nil {
		return nil, domain.Detail(domain.ErrInvalidInput, "La contraseña es obligatoria.")
	}
	u := &entity.User{ID: uuid.NewString(), DateJoined: uc.now()}
	if err := uc.apply(actor, u, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, userExists(err)
	}
	if err := uc.repo.SaveSecurity(ctx, &entity.UserSecurity{UserID: u.ID}); err != nil {
		return nil, err
	}
	return entityToUserResponse(u), nil
}

// Update edición parcial con las mismas reglas de permisos que Create.
func (uc *UserUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UserRequest) (*dto.UserResponse, error) {
	u, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Username != nil && text(in.Username) == "" {
		return nil, domain.Detail(domain.ErrInvalidInput, "El nombre de usuario es obligatorio.")
	}
	if err := uc.apply(actor, u, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, userExists(err)
	}
	return entityToUserResponse(u), nil
}

// Delete elimina el usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Detail(domain.ErrNotFound, "Usuario no encontrado")
		}
		return err
	}
	return nil
}

// Unlock limpia el bloqueo por intentos fallidos.
func (uc *UserUseCase) Unlock(ctx context.Context, id string) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.SaveSecurity(ctx, &entity.UserSecurity{UserID: id})
}

func (uc *UserUseCase) find(ctx context.Context, id string) (*entity.User, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Usuario no encontrado")
	}
	return u, nil
}

func (uc *UserUseCase) apply(actor Actor, u *entity.User, in dto.UserRequest) error {
	if in.IsSuperuser != nil && !actor.IsSuperuser {
		return domain.Detail(domain.ErrForbidden, "No tiene permisos para cambiar 'is_superuser'.")
	}
	if in.IsStaff != nil && !actor.IsStaff && !actor.IsSuperuser {
		return domain.Detail(domain.ErrForbidden, "No tiene permisos para cambiar 'is_staff'.")
	}
	setText(&u.Username, in.Username)
	setText(&u.Email, in.Email)
	if in.IsStaff != nil {
		u.IsStaff = *in.IsStaff
	}
	if in.IsSuperuser != nil {
		u.IsSuperuser = *in.IsSuperuser
	}
	if in.Password != nil {
		n := utf8.RuneCountInString(*in.Password)
		if n < minPasswordLen || n > maxPasswordLen {
			return domain.Detail(domain.ErrInvalidInput, "La contraseña debe tener entre 8 y 10 caracteres.")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.PasswordHash = string(hash)
	}
	u.Username = strings.TrimSpace(u.Username)
	return nil
}

func userExists(err error) error {
	if errors.Is(err, domain.ErrUserExists) {
		return domain.Detail(domain.ErrUserExists, "El usuario ya existe.")
	}
	return err
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		DateJoined:  u.DateJoined,
	}
}
