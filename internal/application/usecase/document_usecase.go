package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

// DocumentUseCase consulta de documentos tributarios (solo lectura; se emiten desde las OT).
type DocumentUseCase struct {
	docs    repository.DocumentRepository
	clients repository.ClientRepository
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(docs repository.DocumentRepository, clients repository.ClientRepository) *DocumentUseCase {
	return &DocumentUseCase{docs: docs, clients: clients}
}

// List documentos filtrados por tipo, número, cliente y rango de emisión. Un tipo desconocido no filtra.
func (uc *DocumentUseCase) List(ctx context.Context, in dto.DocumentFilter) ([]dto.DocumentResponse, error) {
	f := repository.DocumentFilter{
		Number: strings.TrimSpace(in.Number),
		Client: strings.TrimSpace(in.Client),
	}
	if t := strings.ToUpper(strings.TrimSpace(in.Type)); entity.ValidDocType(t) {
		f.Type = t
	}
	var err error
	if f.From, err = filterDate(in.From, "desde"); err != nil {
		return nil, err
	}
	if f.To, err = filterDate(in.To, "hasta"); err != nil {
		return nil, err
	}

	list, err := uc.docs.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.DocumentResponseFrom(d))
	}
	return out, nil
}

// Get detalle con cliente, documento relacionado y relaciones inversas.
func (uc *DocumentUseCase) Get(ctx context.Context, id int64) (*dto.DocumentDetailResponse, error) {
	d, err := uc.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.DocumentDetailResponse{
		DocumentResponse: dto.DocumentResponseFrom(d),
		RentalRef:        d.RentalID,
		Inverse:          []dto.DocumentSummary{},
	}
	if d.ClientID != nil {
		c, err := uc.clients.GetByID(ctx, *d.ClientID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out.ClientLegalName = c.LegalName
		}
	}
	if d.RelatedID != nil {
		rel, err := uc.docs.GetByID(ctx, *d.RelatedID)
		if err != nil {
			return nil, err
		}
		out.Related = dto.DocumentSummaryFrom(rel)
	}
	inverse, err := uc.docs.ListRelatedTo(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	for _, child := range inverse {
		out.Inverse = append(out.Inverse, *dto.DocumentSummaryFrom(child))
	}
	return out, nil
}

// Find documento por id o ErrNotFound. Lo usan también las vistas PDF y XML.
func (uc *DocumentUseCase) Find(ctx context.Context, id int64) (*entity.Document, error) {
	d, err := uc.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Documento no encontrado")
	}
	return d, nil
}

func filterDate(v, field string) (*time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	d, ok := entity.ParseDate(v)
	if !ok {
		return nil, domain.Detail(domain.ErrInvalidInput, field+" inválido. Use AAAA-MM-DD.")
	}
	return &d, nil
}
