package dto

import "time"

// RegisterRequest entrada de POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// RegisterResponse usuario recién creado.
type RegisterResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
}

// LoginRequest entrada de POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginUser datos del usuario en la respuesta de login.
type LoginUser struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// LoginResponse par de tokens más el usuario.
type LoginResponse struct {
	Access  string    `json:"access"`
	Refresh string    `json:"refresh"`
	User    LoginUser `json:"user"`
}

// RefreshRequest entrada de POST /auth/refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse nuevo access token.
type RefreshResponse struct {
	Access string `json:"access"`
}

// RecoverRequest entrada de POST /auth/recover.
type RecoverRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// UserRequest alta o edición de usuario desde administración. Campos nil no se tocan.
type UserRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	IsStaff     *bool   `json:"is_staff"`
	IsSuperuser *bool   `json:"is_superuser"`
}

// UserResponse usuario sin password.
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	DateJoined  time.Time `json:"date_joined"`
}
