package documents

import "github.com/shopspring/decimal"

// DefaultIVARate tasa de IVA vigente en Chile.
var DefaultIVARate = decimal.RequireFromString("0.19")

// LineTotals neto = valor + flete; IVA = neto × tasa redondeado a centavos (mitad al par);
// total = neto + IVA.
func LineTotals(value, freight, rate decimal.Decimal) (net, tax, total decimal.Decimal) {
	net = value.Add(freight)
	tax = net.Mul(rate).RoundBank(2)
	total = net.Add(tax)
	return net, tax, total
}
