package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Categorías de maquinaria.
const (
	CategoryAerial = "equipos_altura"
	CategoryTruck  = "camiones"
	CategoryLoad   = "equipos_carga"
	CategoryOther  = "otro"
)

// Estados de disponibilidad de una máquina.
const (
	MachineAvailable = "Disponible"
	MachineForSale   = "Para venta"
)

// categoryAliases traduce las etiquetas que usa la interfaz a la categoría persistida.
var categoryAliases = map[string]string{
	"elevador":   CategoryAerial,
	"elevadores": CategoryAerial,
	"altura":     CategoryAerial,
	"camion":     CategoryTruck,
	"camiones":   CategoryTruck,
	"otro":       CategoryLoad,
	"carga":      CategoryLoad,
	"generico":   CategoryLoad,
}

// Machine representa una máquina de la flota (elevador, camión u otro equipo).
type Machine struct {
	ID          int64
	Brand       string
	Model       string
	Serial      string // única cuando no está vacía
	Category    string
	Description string
	Height      decimal.NullDecimal // metros, solo equipos de altura
	Year        *int
	Tonnage     decimal.NullDecimal // solo camiones
	Load        decimal.NullDecimal
	HeightType  string // tijera | brazo
	Fuel        string // electrico | diesel
	State       string
}

// Label texto corto "Marca Modelo (Serie)".
func (m *Machine) Label() string {
	base := strings.TrimSpace(m.Brand + " " + m.Model)
	if m.Serial != "" {
		return base + " (" + m.Serial + ")"
	}
	return base
}

// NormalizeCategory convierte etiquetas de UI a la categoría persistida.
// Un valor desconocido se respeta tal cual; vacío queda en CategoryOther.
func NormalizeCategory(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	if s == "" {
		return CategoryOther
	}
	if c, ok := categoryAliases[s]; ok {
		return c
	}
	return s
}

// ApplyCategoryRules descarta los campos técnicos que no aplican a la categoría.
// Camiones: sin altura, y si solo viene carga se usa como tonelaje.
func (m *Machine) ApplyCategoryRules() {
	switch m.Category {
	case CategoryAerial:
		m.Load = decimal.NullDecimal{}
		m.Tonnage = decimal.NullDecimal{}
	case CategoryTruck:
		m.Height = decimal.NullDecimal{}
		if !m.Tonnage.Valid && m.Load.Valid {
			m.Tonnage = m.Load
		}
	}
}
