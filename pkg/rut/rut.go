// Package rut utilidades para el Rol Único Tributario chileno (RUT).
package rut

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// inTextPattern RUT con puntos y guion dentro de texto libre: 11.111.111-1, 1.234.567-K.
var inTextPattern = regexp.MustCompile(`\d{1,3}(?:\.\d{3}){2}-[\dkK]`)

// Clean deja solo dígitos y el dígito verificador (K en mayúscula).
// "11.111.111-1" → "111111111".
func Clean(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			b.WriteRune('K')
		}
	}
	return b.String()
}

// StripSeparators quita puntos y guion sin tocar el resto.
func StripSeparators(s string) string {
	return strings.NewReplacer(".", "", "-", "").Replace(s)
}

// ComputeVerifier calcula el dígito verificador (módulo 11) para el cuerpo numérico del RUT.
// Pesos 2..7 de derecha a izquierda; 11 → "0", 10 → "K".
func ComputeVerifier(body string) (string, error) {
	if body == "" {
		return "", fmt.Errorf("rut: cuerpo vacío")
	}
	sum, mul := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return "", fmt.Errorf("rut: carácter inválido %q", c)
		}
		sum += int(c-'0') * mul
		mul++
		if mul > 7 {
			mul = 2
		}
	}
	switch res := 11 - sum%11; res {
	case 11:
		return "0", nil
	case 10:
		return "K", nil
	default:
		return string(rune('0' + res)), nil
	}
}

// Validate verifica el dígito verificador. Acepta el RUT con o sin puntos y guion.
func Validate(s string) error {
	c := Clean(s)
	if len(c) < 2 {
		return fmt.Errorf("rut: muy corto")
	}
	body, dv := c[:len(c)-1], c[len(c)-1:]
	if strings.Contains(body, "K") {
		return fmt.Errorf("rut: K solo puede ir como dígito verificador")
	}
	want, err := ComputeVerifier(body)
	if err != nil {
		return err
	}
	if dv != want {
		return fmt.Errorf("rut: dígito verificador inválido: esperado %s, recibido %s", want, dv)
	}
	return nil
}

// Format devuelve el RUT como xx.xxx.xxx-x. Entradas de menos de 2 caracteres útiles se devuelven limpias.
func Format(s string) string {
	c := Clean(s)
	if len(c) < 2 {
		return c
	}
	body, dv := c[:len(c)-1], c[len(c)-1:]
	var groups []string
	for len(body) > 3 {
		groups = append([]string{body[len(body)-3:]}, groups...)
		body = body[:len(body)-3]
	}
	groups = append([]string{body}, groups...)
	return strings.Join(groups, ".") + "-" + dv
}

// FindInText devuelve el primer RUT con formato xx.xxx.xxx-x presente en text.
func FindInText(text string) (string, bool) {
	m := inTextPattern.FindString(text)
	return m, m != ""
}

// IsDigits indica si s es no vacío y solo contiene dígitos ASCII.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
