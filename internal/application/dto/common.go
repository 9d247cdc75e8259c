package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// MessageResponse respuesta con solo un mensaje.
type MessageResponse struct {
	Detail string `json:"detail"`
}

// FlexDecimal acepta número, texto numérico, "" o null (estos dos como cero).
// El formulario de OT envía montos de las dos formas.
type FlexDecimal struct {
	decimal.Decimal
}

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexDecimal) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		f.Decimal = decimal.Zero
		return nil
	}
	s = strings.Trim(s, `"`)
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("valor numérico inválido %q", s)
	}
	f.Decimal = d
	return nil
}

// FlexInt acepta entero, texto numérico, "" o null.
type FlexInt int64

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("entero inválido %q", s)
	}
	*f = FlexInt(n)
	return nil
}

// OptionalBool distingue ausente/null de false.
type OptionalBool struct {
	Set   bool
	Value bool
}

// UnmarshalJSON acepta true/false, "true"/"1"/"si" y null.
func (o *OptionalBool) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*o = OptionalBool{}
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		*o = OptionalBool{Set: true, Value: v}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("booleano inválido %s", b)
	}
	*o = OptionalBool{Set: true, Value: IsTruthy(s)}
	return nil
}

// IsTruthy interpreta flags de query string ("1", "true", "t", "yes", "y").
func IsTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes", "y", "si", "sí":
		return true
	}
	return false
}

// NullableDecimal serializa un decimal.NullDecimal como número o null.
func NullableDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
