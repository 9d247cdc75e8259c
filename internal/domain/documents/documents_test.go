package documents_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Arriendos-api/internal/domain/documents"
)

func nextNumber(t *testing.T, last string) string {
	t.Helper()
	n, err := documents.NextNumber(last)
	require.NoError(t, err)
	return n
}

func TestNextNumber_SinHistorial(t *testing.T) {
	assert.Equal(t, "0001", nextNumber(t, ""))
}

func TestNextNumber_Incrementa(t *testing.T) {
	assert.Equal(t, "0008", nextNumber(t, "0007"))
	assert.Equal(t, "0100", nextNumber(t, "0099"))
	assert.Equal(t, "10000", nextNumber(t, "9999"))
}

func TestNextNumber_ConPrefijoAlfabetico(t *testing.T) {
	assert.Equal(t, "0013", nextNumber(t, "F-12"))
}

func TestNextNumber_SinDigitosFinales(t *testing.T) {
	assert.Equal(t, "0001", nextNumber(t, "12A"))
	assert.Equal(t, "0001", nextNumber(t, "sin-numero"))
}

func TestNextNumber_DesbordeNoReiniciaNumeracion(t *testing.T) {
	for _, last := range []string{"9223372036854775807", "99999999999999999999", "G123456789012345678901"} {
		n, err := documents.NextNumber(last)
		assert.Error(t, err, last)
		assert.Empty(t, n)
	}
}

func TestLineTotals_EjemploAlta(t *testing.T) {
	net, tax, total := documents.LineTotals(
		decimal.NewFromInt(50000), decimal.NewFromInt(10000), documents.DefaultIVARate)

	assert.True(t, net.Equal(decimal.NewFromInt(60000)), "neto = valor + flete")
	assert.True(t, tax.Equal(decimal.NewFromInt(11400)), "IVA del 19 por ciento")
	assert.True(t, total.Equal(decimal.NewFromInt(71400)))
}

func TestLineTotals_RedondeaIVAaCentavos(t *testing.T) {
	_, tax, total := documents.LineTotals(
		decimal.RequireFromString("10.05"), decimal.Zero, documents.DefaultIVARate)

	// 10.05 × 0.19 = 1.9095 → 1.91
	assert.Equal(t, "1.91", tax.StringFixed(2))
	assert.Equal(t, "11.96", total.StringFixed(2))
}

func TestLineTotals_MitadAlPar(t *testing.T) {
	// 1.5 × 0.19 = 0.285 → 0.28
	_, tax, _ := documents.LineTotals(decimal.RequireFromString("1.5"), decimal.Zero, documents.DefaultIVARate)
	assert.Equal(t, "0.28", tax.StringFixed(2))
}
