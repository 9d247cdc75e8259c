// Package orders contiene el flujo de órdenes de trabajo: creación, emisión de documentos
// con sus transiciones de estado, enriquecimiento de filas y las vistas de estado de máquinas.
package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Arriendos-api/internal/domain/documents"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
	"github.com/jhoicas/Arriendos-api/pkg/logger"
)

// Repos repositorios que usa el flujo de órdenes. Dentro de RunOrders todos comparten la transacción.
type Repos struct {
	Machines   repository.MachineRepository
	Clients    repository.ClientRepository
	Sites      repository.SiteRepository
	Rentals    repository.RentalRepository
	Documents  repository.DocumentRepository
	WorkOrders repository.WorkOrderRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn devuelve error no queda nada escrito.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(repos Repos) error) error
}

// EmissionRecorder recibe cada documento emitido (métricas).
type EmissionRecorder interface {
	DocumentEmitted(docType string)
}

// Config parámetros de negocio del flujo.
type Config struct {
	HouseName string // razón social de la cuenta propia
	HouseRUT  string
	IVARate   decimal.Decimal
}

// DefaultConfig valores usados cuando no se configuran.
func DefaultConfig() Config {
	return Config{
		HouseName: "Franz Heim SPA",
		HouseRUT:  "16.357.179-K",
		IVARate:   documents.DefaultIVARate,
	}
}

// Option ajusta el UseCase.
type Option func(*UseCase)

// WithLogger registra las emisiones en log.
func WithLogger(l *logger.Logger) Option {
	return func(uc *UseCase) { uc.log = l }
}

// WithRecorder cuenta las emisiones.
func WithRecorder(r EmissionRecorder) Option {
	return func(uc *UseCase) { uc.recorder = r }
}

// WithClock reemplaza el reloj (fechas de emisión y cierre).
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// UseCase orquesta órdenes de trabajo, documentos, arriendos y máquinas.
type UseCase struct {
	tx       TxRunner
	repos    Repos
	cfg      Config
	log      *logger.Logger
	recorder EmissionRecorder
	now      func() time.Time
}

// NewUseCase construye el caso de uso. repos se usa para lecturas fuera de transacción.
func NewUseCase(tx TxRunner, repos Repos, cfg Config, opts ...Option) *UseCase {
	def := DefaultConfig()
	if cfg.HouseName == "" {
		cfg.HouseName = def.HouseName
	}
	if cfg.HouseRUT == "" {
		cfg.HouseRUT = def.HouseRUT
	}
	if cfg.IVARate.IsZero() {
		cfg.IVARate = def.IVARate
	}
	uc := &UseCase{
		tx:    tx,
		repos: repos,
		cfg:   cfg,
		log:   logger.Nop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *UseCase) today() time.Time {
	return entity.DateOnly(uc.now())
}
