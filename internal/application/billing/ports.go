// Package billing arma los datos de un documento tributario emitido y los entrega a los
// renderizadores de PDF y XML.
package billing

import (
	"context"

	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

// Issuer emisor de los documentos (la cuenta de la casa).
type Issuer struct {
	Name string
	RUT  string
}

// DocumentView documento con todas sus referencias resueltas. Los punteros pueden ser nil
// en datos heredados.
type DocumentView struct {
	Document    *entity.Document
	Issuer      Issuer
	Client      *entity.Client
	Rental      *entity.Rental
	Machine     *entity.Machine
	Origin      *entity.Site
	Destination *entity.Site
	Related     *entity.Document
	Order       *entity.WorkOrder // OT que originó el documento, si existe
}

// Lines líneas de detalle de la OT de origen; vacío si no hay OT.
func (v *DocumentView) Lines() []entity.LineItem {
	if v.Order == nil {
		return nil
	}
	return v.Order.Lines
}

// PDFRenderer representación gráfica del documento.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, v *DocumentView) ([]byte, error)
}

// XMLRenderer documento en XML tipo DTE; digest es el SHA-1 en base64 de la forma canónica.
type XMLRenderer interface {
	RenderXML(ctx context.Context, v *DocumentView) (xml []byte, digest string, err error)
}
