package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

// DocumentFilter filtros del listado de documentos. Campos vacíos no filtran.
type DocumentFilter struct {
	Type   string
	Number string // contiene
	Client string // contiene en razón social o RUT del cliente
	From   *time.Time
	To     *time.Time
}

// DocumentRepository puerto de persistencia para Document.
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.Document) error
	GetByID(ctx context.Context, id int64) (*entity.Document, error)
	// LastByType último documento del tipo por id descendente (base del correlativo).
	LastByType(ctx context.Context, docType string) (*entity.Document, error)
	// List ordenado por fecha de emisión e id descendentes.
	List(ctx context.Context, f DocumentFilter) ([]*entity.Document, error)
	// ListByRental documentos del arriendo ordenados por fecha de emisión e id ascendentes.
	ListByRental(ctx context.Context, rentalID int64) ([]*entity.Document, error)
	// ListByMachine documentos de todos los arriendos de la máquina, por fecha de emisión e id ascendentes.
	ListByMachine(ctx context.Context, machineID int64) ([]*entity.Document, error)
	// ListRelatedTo documentos cuyo relacionado_con apunta a id.
	ListRelatedTo(ctx context.Context, id int64) ([]*entity.Document, error)
}
