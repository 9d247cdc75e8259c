package documents

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// FirstNumber número del primer documento de cada tipo.
const FirstNumber = "0001"

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// NextNumber calcula el correlativo siguiente a partir del número del último documento
// del mismo tipo: toma los dígitos finales, suma uno y rellena a 4 dígitos.
// Sin documento previo o sin dígitos finales devuelve "0001". Un correlativo que no
// cabe en int64 es un error: nunca se reinicia la numeración.
func NextNumber(last string) (string, error) {
	m := trailingDigits.FindStringSubmatch(last)
	if m == nil {
		return FirstNumber, nil
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n == math.MaxInt64 {
		return "", fmt.Errorf("correlativo fuera de rango %q", last)
	}
	return fmt.Sprintf("%04d", n+1), nil
}
