package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

// Repos repositorios que necesita el armado de un DocumentView.
type Repos struct {
	Documents  repository.DocumentRepository
	Clients    repository.ClientRepository
	Rentals    repository.RentalRepository
	Machines   repository.MachineRepository
	Sites      repository.SiteRepository
	WorkOrders repository.WorkOrderRepository
}

// RenderUseCase descarga de documentos en PDF y XML.
type RenderUseCase struct {
	repos  Repos
	issuer Issuer
	pdf    PDFRenderer
	xml    XMLRenderer
}

// NewRenderUseCase construye el caso de uso inyectando todas sus dependencias.
func NewRenderUseCase(repos Repos, issuer Issuer, pdf PDFRenderer, xml XMLRenderer) *RenderUseCase {
	return &RenderUseCase{repos: repos, issuer: issuer, pdf: pdf, xml: xml}
}

// DownloadPDF genera el PDF del documento.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el documento no existe.
func (uc *RenderUseCase) DownloadPDF(ctx context.Context, id int64) (pdfBytes []byte, filename string, err error) {
	v, err := uc.View(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.pdf.RenderPDF(ctx, v)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fileName(v.Document, "pdf"), nil
}

// DownloadXML genera el XML del documento y su digest.
func (uc *RenderUseCase) DownloadXML(ctx context.Context, id int64) (xmlBytes []byte, digest, filename string, err error) {
	v, err := uc.View(ctx, id)
	if err != nil {
		return nil, "", "", err
	}
	xmlBytes, digest, err = uc.xml.RenderXML(ctx, v)
	if err != nil {
		return nil, "", "", fmt.Errorf("xml: generación fallida: %w", err)
	}
	return xmlBytes, digest, fileName(v.Document, "xml"), nil
}

// View carga el documento y resuelve sus referencias.
func (uc *RenderUseCase) View(ctx context.Context, id int64) (*DocumentView, error) {
	doc, err := uc.repos.Documents.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener documento: %w", err)
	}
	if doc == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Documento no encontrado")
	}
	v := &DocumentView{Document: doc, Issuer: uc.issuer}

	if v.Rental, err = uc.repos.Rentals.GetByID(ctx, doc.RentalID); err != nil {
		return nil, fmt.Errorf("obtener arriendo: %w", err)
	}
	// Cliente congelado en el documento; si falta, el del arriendo.
	clientID := doc.ClientID
	if clientID == nil && v.Rental != nil {
		clientID = v.Rental.ClientID
	}
	if clientID != nil {
		if v.Client, err = uc.repos.Clients.GetByID(ctx, *clientID); err != nil {
			return nil, fmt.Errorf("obtener cliente: %w", err)
		}
	}
	if v.Rental != nil && v.Rental.MachineID != nil {
		if v.Machine, err = uc.repos.Machines.GetByID(ctx, *v.Rental.MachineID); err != nil {
			return nil, fmt.Errorf("obtener maquinaria: %w", err)
		}
	}
	if v.Origin, err = uc.site(ctx, doc.OriginSiteID); err != nil {
		return nil, err
	}
	if v.Destination, err = uc.site(ctx, doc.DestinationSiteID); err != nil {
		return nil, err
	}
	if doc.RelatedID != nil {
		if v.Related, err = uc.repos.Documents.GetByID(ctx, *doc.RelatedID); err != nil {
			return nil, fmt.Errorf("obtener documento relacionado: %w", err)
		}
	}

	switch doc.Type {
	case entity.DocInvoice:
		v.Order, err = uc.repos.WorkOrders.LatestByInvoice(ctx, doc.ID)
	case entity.DocGuide:
		v.Order, err = uc.repos.WorkOrders.LatestByGuide(ctx, doc.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("obtener orden de trabajo: %w", err)
	}
	return v, nil
}

func (uc *RenderUseCase) site(ctx context.Context, id *int64) (*entity.Site, error) {
	if id == nil {
		return nil, nil
	}
	s, err := uc.repos.Sites.GetByID(ctx, *id)
	if err != nil {
		return nil, fmt.Errorf("obtener obra: %w", err)
	}
	return s, nil
}

func fileName(d *entity.Document, ext string) string {
	return fmt.Sprintf("%s_%s.%s", d.Type, d.Label(), ext)
}
