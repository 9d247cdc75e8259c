package entity

// Formas de pago aceptadas.
const (
	PaymentNet15 = "Pago a 15 días"
	PaymentNet30 = "Pago a 30 días"
	PaymentCash  = "Pago contado"
)

// Client representa un cliente (razón social + RUT único).
type Client struct {
	ID           int64
	LegalName    string
	RUT          string
	Address      string
	Phone        string
	Email        string
	PaymentTerms string
}

// ValidPaymentTerms indica si la forma de pago es una de las aceptadas (vacío es válido).
func ValidPaymentTerms(s string) bool {
	switch s {
	case "", PaymentNet15, PaymentNet30, PaymentCash:
		return true
	}
	return false
}
