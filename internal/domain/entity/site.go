package entity

// Site representa una obra (lugar donde trabaja la máquina arrendada).
type Site struct {
	ID           int64
	Name         string
	Address      string
	ContactName  string
	ContactPhone string
	ContactEmail string
}
