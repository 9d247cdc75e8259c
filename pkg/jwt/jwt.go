package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tipos de token.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrWrongType el token es válido pero no del tipo esperado (p. ej. refresh usado como access).
var ErrWrongType = errors.New("jwt: tipo de token incorrecto")

// Claims claims estándar más los datos que usa el middleware sin ir a la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"` // superuser | staff | user
	Type     string `json:"typ"`
}

// Issuer firma y valida tokens HS256.
type Issuer struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	now        func() time.Time
}

// NewIssuer construye el emisor; minutos <= 0 usan 60 para access y 1 día para refresh.
func NewIssuer(secret, issuer string, accessMinutes, refreshMinutes int) *Issuer {
	if accessMinutes <= 0 {
		accessMinutes = 60
	}
	if refreshMinutes <= 0 {
		refreshMinutes = 24 * 60
	}
	return &Issuer{
		Secret:     secret,
		Issuer:     issuer,
		AccessTTL:  time.Duration(accessMinutes) * time.Minute,
		RefreshTTL: time.Duration(refreshMinutes) * time.Minute,
		now:        time.Now,
	}
}

// Pair access + refresh del mismo usuario.
type Pair struct {
	Access  string
	Refresh string
}

// GeneratePair firma un access y un refresh para el usuario.
func (i *Issuer) GeneratePair(userID, username, role string) (Pair, error) {
	access, err := i.generate(userID, username, role, TypeAccess, i.AccessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := i.generate(userID, username, role, TypeRefresh, i.RefreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

// GenerateAccess firma solo un access token.
func (i *Issuer) GenerateAccess(userID, username, role string) (string, error) {
	return i.generate(userID, username, role, TypeAccess, i.AccessTTL)
}

func (i *Issuer) generate(userID, username, role, typ string, ttl time.Duration) (string, error) {
	if i.Secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
		Type:     typ,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(i.Secret))
}

// Parse valida firma, expiración y tipo; devuelve los claims.
func (i *Issuer) Parse(tokenString, wantType string) (*Claims, error) {
	if i.Secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(i.Secret), nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Type != wantType {
		return nil, ErrWrongType
	}
	return claims, nil
}
