package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Arriendos-api/pkg/jwt"
)

func newAuth(t *testing.T) (*UseCase, *memory.UserRepo) {
	t.Helper()
	users := memory.NewStore().Users()
	uc := NewUseCase(users, jwt.NewIssuer("secreto-de-prueba", "arriendos-api", 15, 60), nil)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "Ana", Password: "clave123", Email: "ana@example.com"})
	require.NoError(t, err)
	return uc, users
}

// ─── Registro ────────────────────────────────────────────────────────────────

func TestRegister_DevuelveIDUsuarioYCorreo(t *testing.T) {
	uc, _ := newAuth(t)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{Username: " beto ", Password: "x"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "beto", out.Username)
	assert.Nil(t, out.Email)
}

func TestRegister_FaltanDatos(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "carla"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Usuario y contraseña son requeridos.", domain.DetailOf(err))
}

func TestRegister_DuplicadoSinMayusculas(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "ANA", Password: "otra"})
	require.ErrorIs(t, err, domain.ErrUserExists)
	assert.Equal(t, "El usuario ya existe.", domain.DetailOf(err))
}

// ─── Login y bloqueo ─────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	uc, _ := newAuth(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "clave123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Access)
	assert.NotEmpty(t, out.Refresh)
	assert.Equal(t, "Ana", out.User.Username)
	assert.False(t, out.User.IsStaff)
}

func TestLogin_BloqueaTrasCincoFallos(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()

	for i := 0; i < entity.MaxFailedLogins; i++ {
		_, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "mala"})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, "Credenciales inválidas.", domain.DetailOf(err))
	}

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "clave123"})
	require.ErrorIs(t, err, domain.ErrAccountLocked)
	assert.Equal(t, `Cuenta bloqueada. Use "Recuperar clave".`, domain.DetailOf(err))

	u, err := users.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	sec, err := users.GetSecurity(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, sec.IsLocked)
	assert.NotNil(t, sec.LockedAt)
}

func TestLogin_ExitoReiniciaContador(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()

	for i := 0; i < entity.MaxFailedLogins-1; i++ {
		_, _ = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "mala"})
	}
	_, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "clave123"})
	require.NoError(t, err)

	u, _ := users.GetByUsername(ctx, "ana")
	sec, err := users.GetSecurity(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, sec.FailedAttempts)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "mala"})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "un fallo más no bloquea")
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Credenciales inválidas.", domain.DetailOf(err))
}

// ─── Refresh, recuperación, admin ────────────────────────────────────────────

func TestRefresh_EntregaNuevoAccess(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	login, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "clave123"})
	require.NoError(t, err)

	out, err := uc.Refresh(ctx, dto.RefreshRequest{Refresh: login.Refresh})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Access)

	_, err = uc.Refresh(ctx, dto.RefreshRequest{Refresh: login.Access})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRecover_NoRevelaExistencia(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.Recover(ctx, dto.RecoverRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Falta correo electrónico.", domain.DetailOf(err))

	out, err := uc.Recover(ctx, dto.RecoverRequest{Email: "nadie@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Si el correo existe, se enviarán instrucciones.", out.Detail)
}

func TestEnsureAdmin_CreaSuperusuarioUnaVez(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()

	require.NoError(t, uc.EnsureAdmin(ctx, "admin", "admin123"))
	require.NoError(t, uc.EnsureAdmin(ctx, "admin", "otra"))

	u, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.IsSuperuser)
	assert.Equal(t, entity.RoleSuperuser, u.Role())

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
}
