// Package auth registro, login con bloqueo por intentos fallidos, refresh y recuperación de clave.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
	"github.com/jhoicas/Arriendos-api/pkg/jwt"
	"github.com/jhoicas/Arriendos-api/pkg/logger"
)

const (
	msgRequired    = "Usuario y contraseña son requeridos."
	msgUserExists  = "El usuario ya existe."
	msgBadLogin    = "Credenciales inválidas."
	msgLocked      = `Cuenta bloqueada. Use "Recuperar clave".`
	msgMissingMail = "Falta correo electrónico."
	msgRecoverSent = "Si el correo existe, se enviarán instrucciones."
)

// UseCase casos de uso de autenticación.
type UseCase struct {
	users  repository.UserRepository
	tokens *jwt.Issuer
	log    *logger.Logger
	now    func() time.Time
}

// NewUseCase construye el caso de uso. log puede ser nil.
func NewUseCase(users repository.UserRepository, tokens *jwt.Issuer, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{users: users, tokens: tokens, log: log, now: time.Now}
}

// Register crea un usuario sin privilegios. El nombre de usuario no distingue mayúsculas.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.Detail(domain.ErrInvalidInput, msgRequired)
	}
	user, err := uc.createUser(ctx, username, strings.TrimSpace(in.Email), in.Password, false, false)
	if err != nil {
		return nil, err
	}
	out := &dto.RegisterResponse{ID: user.ID, Username: user.Username}
	if user.Email != "" {
		out.Email = &user.Email
	}
	return out, nil
}

func (uc *UseCase) createUser(ctx context.Context, username, email, password string, staff, superuser bool) (*entity.User, error) {
	existing, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Detail(domain.ErrUserExists, msgUserExists)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsStaff:      staff,
		IsSuperuser:  superuser,
		DateJoined:   uc.now(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.Detail(domain.ErrUserExists, msgUserExists)
		}
		return nil, err
	}
	if err := uc.users.SaveSecurity(ctx, &entity.UserSecurity{UserID: user.ID}); err != nil {
		return nil, err
	}
	return user, nil
}

// security estado de bloqueo del usuario; se crea vacío si no existe.
func (uc *UseCase) security(ctx context.Context, userID string) (*entity.UserSecurity, error) {
	sec, err := uc.users.GetSecurity(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sec == nil {
		sec = &entity.UserSecurity{UserID: userID}
		if err := uc.users.SaveSecurity(ctx, sec); err != nil {
			return nil, err
		}
	}
	return sec, nil
}

// Login valida credenciales. Tras entity.MaxFailedLogins fallos seguidos la cuenta queda bloqueada
// y se rechaza aunque la clave sea correcta; un login correcto reinicia el contador.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.Detail(domain.ErrInvalidInput, msgRequired)
	}

	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Detail(domain.ErrInvalidInput, msgBadLogin)
	}
	sec, err := uc.security(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if sec.IsLocked {
		return nil, domain.Detail(domain.ErrAccountLocked, msgLocked)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		sec.RegisterFailure(uc.now())
		if err := uc.users.SaveSecurity(ctx, sec); err != nil {
			return nil, err
		}
		if sec.IsLocked {
			uc.log.Warn().Str("username", user.Username).Msg("cuenta bloqueada por intentos fallidos")
		}
		return nil, domain.Detail(domain.ErrInvalidInput, msgBadLogin)
	}

	if sec.FailedAttempts > 0 {
		sec.FailedAttempts = 0
		if err := uc.users.SaveSecurity(ctx, sec); err != nil {
			return nil, err
		}
	}

	pair, err := uc.tokens.GeneratePair(user.ID, user.Username, user.Role())
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		User: dto.LoginUser{
			ID:          user.ID,
			Username:    user.Username,
			IsStaff:     user.IsStaff,
			IsSuperuser: user.IsSuperuser,
		},
	}, nil
}

// Refresh canjea un refresh token por un access nuevo con el rol vigente del usuario.
func (uc *UseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.RefreshResponse, error) {
	claims, err := uc.tokens.Parse(in.Refresh, jwt.TypeRefresh)
	if err != nil {
		return nil, domain.Detail(domain.ErrUnauthorized, "Token de refresco inválido o expirado.")
	}
	user, err := uc.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Detail(domain.ErrUnauthorized, "Usuario no encontrado.")
	}
	sec, err := uc.security(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if sec.IsLocked {
		return nil, domain.Detail(domain.ErrAccountLocked, msgLocked)
	}
	access, err := uc.tokens.GenerateAccess(user.ID, user.Username, user.Role())
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{Access: access}, nil
}

// Recover inicio de recuperación de clave. No revela si la cuenta existe.
func (uc *UseCase) Recover(_ context.Context, in dto.RecoverRequest) (*dto.MessageResponse, error) {
	email := strings.TrimSpace(in.Email)
	username := strings.TrimSpace(in.Username)
	if email == "" && username == "" {
		return nil, domain.Detail(domain.ErrInvalidInput, msgMissingMail)
	}
	uc.log.Info().Bool("por_email", email != "").Msg("solicitud de recuperación de clave")
	return &dto.MessageResponse{Detail: msgRecoverSent}, nil
}

// EnsureAdmin crea el superusuario inicial si aún no existe un usuario con ese nombre.
func (uc *UseCase) EnsureAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}
	existing, err := uc.users.GetByUsername(ctx, username)
	if err != nil || existing != nil {
		return err
	}
	if _, err := uc.createUser(ctx, username, "", password, true, true); err != nil {
		return err
	}
	uc.log.Info().Str("username", username).Msg("superusuario inicial creado")
	return nil
}
