package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
	ErrConflict      = errors.New("conflicto con el estado actual")
	ErrPrecondition  = errors.New("falta una condición previa")
	ErrAccountLocked = errors.New("cuenta bloqueada")
	ErrUserExists    = errors.New("el usuario ya existe")
)

// DetailError envuelve un error de dominio con un mensaje legible para el cliente HTTP.
// errors.Is sigue funcionando contra el sentinel envuelto.
type DetailError struct {
	Kind   error
	Detail string
}

func (e *DetailError) Error() string { return e.Detail }

func (e *DetailError) Unwrap() error { return e.Kind }

// Detail construye un DetailError.
func Detail(kind error, detail string) error {
	return &DetailError{Kind: kind, Detail: detail}
}

// DetailOf devuelve el mensaje legible del error, o el texto del sentinel si no trae detalle.
func DetailOf(err error) string {
	var de *DetailError
	if errors.As(err, &de) {
		return de.Detail
	}
	return err.Error()
}
