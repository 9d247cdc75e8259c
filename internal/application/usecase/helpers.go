package usecase

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Arriendos-api/internal/domain"
)

// text devuelve el valor recortado de p; "" si es nil.
func text(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// setText asigna a dst el valor recortado de p si viene.
func setText(dst *string, p *string) {
	if p != nil {
		*dst = strings.TrimSpace(*p)
	}
}

// optional nil para "" (el JSON responde null).
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

// duplicate reemplaza ErrDuplicate del repositorio por un detalle legible.
func duplicate(err error, detail string) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.Detail(domain.ErrDuplicate, detail)
	}
	return err
}

// inUse igual para ErrConflict al borrar registros referenciados.
func inUse(err error, detail string) error {
	if errors.Is(err, domain.ErrConflict) {
		return domain.Detail(domain.ErrConflict, detail)
	}
	return err
}
