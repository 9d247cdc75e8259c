package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePair_AccessYRefreshDistintos(t *testing.T) {
	iss := NewIssuer("secreto", "arriendos-api", 15, 60)

	pair, err := iss.GeneratePair("u-1", "ana", "staff")
	require.NoError(t, err)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := iss.Parse(pair.Access, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, "arriendos-api", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestParse_RefreshNoSirveComoAccess(t *testing.T) {
	iss := NewIssuer("secreto", "arriendos-api", 15, 60)
	pair, err := iss.GeneratePair("u-1", "ana", "user")
	require.NoError(t, err)

	_, err = iss.Parse(pair.Refresh, TypeAccess)
	require.ErrorIs(t, err, ErrWrongType)

	_, err = iss.Parse(pair.Refresh, TypeRefresh)
	require.NoError(t, err)
}

func TestParse_FirmaDeOtroSecretoFalla(t *testing.T) {
	token, err := NewIssuer("uno", "x", 15, 60).GenerateAccess("u-1", "ana", "user")
	require.NoError(t, err)

	_, err = NewIssuer("dos", "x", 15, 60).Parse(token, TypeAccess)
	require.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	iss := NewIssuer("secreto", "x", 1, 1)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := iss.GenerateAccess("u-1", "ana", "user")
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.Parse(token, TypeAccess)
	require.Error(t, err)
}

func TestGenerate_SinSecretoFalla(t *testing.T) {
	_, err := NewIssuer("", "x", 1, 1).GenerateAccess("u", "n", "user")
	require.Error(t, err)
}
