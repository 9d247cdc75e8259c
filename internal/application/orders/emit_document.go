package orders

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

// emission solicitud ya normalizada.
type emission struct {
	docType  string
	billable bool // solo GD: la guía lleva montos para facturar después
}

// acciones heredadas del front anterior.
var (
	invoiceActions = map[string]bool{"facturar": true, "emitir_factura": true, "factura": true}
	guideActions   = map[string]bool{
		"guia_no_facturable":        true,
		"emitir_guia_no_facturable": true,
		"gd_no_facturable":          true,
		"gd_retiro":                 true,
		"retiro":                    true,
	}
)

func parseEmission(in dto.EmitDocumentRequest) (emission, error) {
	docType := strings.ToUpper(strings.TrimSpace(in.DocumentType))
	billable := in.Billable
	if docType == "" {
		action := strings.ToLower(strings.TrimSpace(in.Action))
		switch {
		case invoiceActions[action]:
			docType = entity.DocInvoice
		case guideActions[action]:
			docType = entity.DocGuide
			if !billable.Set {
				billable = dto.OptionalBool{Set: true, Value: false}
			}
		}
	}
	if docType != entity.DocInvoice && docType != entity.DocGuide {
		return emission{}, invalid("tipo_documento inválido. Debe ser 'GD' o 'FACT'.")
	}
	return emission{docType: docType, billable: billable.Value}, nil
}

// EmitDocument emite la factura o la guía de la OT y aplica sus transiciones en una sola
// transacción: documento, OT y, en un retiro, arriendo y máquina quedan todos escritos o ninguno.
func (uc *UseCase) EmitDocument(ctx context.Context, orderID int64, in dto.EmitDocumentRequest) (*dto.WorkOrderResponse, error) {
	em, err := parseEmission(in)
	if err != nil {
		return nil, err
	}

	var (
		order *entity.WorkOrder
		doc   *entity.Document
	)
	err = uc.tx.RunOrders(ctx, func(r Repos) error {
		o, err := r.WorkOrders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.Detail(domain.ErrNotFound, "Orden de trabajo no encontrada.")
		}
		if o.State == entity.OrderVoided {
			return precondition("La orden está anulada; no se pueden emitir documentos.")
		}
		if em.docType == entity.DocInvoice {
			doc, err = uc.emitInvoice(ctx, r, o)
		} else {
			doc, err = uc.emitGuide(ctx, r, o, em.billable)
		}
		if err != nil {
			return err
		}
		order = o
		return r.WorkOrders.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	if uc.recorder != nil {
		uc.recorder.DocumentEmitted(doc.Type)
	}
	uc.log.Info().
		Int64("order_id", order.ID).
		Str("tipo", doc.Type).
		Str("numero", doc.Number).
		Bool("retiro", doc.IsWithdrawal).
		Str("estado_ot", order.State).
		Msg("documento emitido")

	return newEnricher(uc.repos).order(ctx, order)
}

// issueDate fecha planificada en la OT o hoy.
func (uc *UseCase) issueDate(o *entity.WorkOrder) time.Time {
	if o.IssueDate != nil {
		return entity.DateOnly(*o.IssueDate)
	}
	return uc.today()
}

// emitInvoice factura la OT. Una venta sin arriendo recibe uno fantasma ya terminado;
// cualquier otro tipo debe estar enlazado a su arriendo.
func (uc *UseCase) emitInvoice(ctx context.Context, r Repos, o *entity.WorkOrder) (*entity.Document, error) {
	if o.InvoiceID != nil {
		return nil, precondition("La orden ya tiene una factura asociada.")
	}
	client, err := r.Clients.GetByID(ctx, o.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, precondition("La orden no tiene cliente asociado.")
	}

	var rental *entity.Rental
	switch {
	case o.RentalID != nil:
		if rental, err = r.Rentals.GetByID(ctx, *o.RentalID); err != nil {
			return nil, err
		}
	case o.Type == entity.OrderService:
		if rental, err = uc.phantomRental(ctx, r, o); err != nil {
			return nil, err
		}
	}
	if rental == nil {
		return nil, precondition("La orden no tiene arriendo asociado; no se puede facturar todavía " +
			"(falta enlazarla al arriendo correspondiente).")
	}

	related, err := relatedGuide(ctx, r, o)
	if err != nil {
		return nil, err
	}

	number, err := nextNumber(ctx, r, entity.DocInvoice)
	if err != nil {
		return nil, err
	}
	doc := &entity.Document{
		Type:              entity.DocInvoice,
		Number:            number,
		IssueDate:         uc.issueDate(o),
		RentalID:          rental.ID,
		ClientID:          &client.ID,
		DestinationSiteID: rental.SiteID,
		RelatedID:         related,
	}
	doc.SetAmounts(o.NetAmount, o.TaxAmount, o.TotalAmount)
	if err := r.Documents.Create(ctx, doc); err != nil {
		return nil, err
	}

	o.InvoiceID = &doc.ID
	o.MarkProcessed(uc.now())
	return doc, nil
}

// relatedGuide id de la guía a la que apunta la factura; nil si la OT no tiene guía.
func relatedGuide(ctx context.Context, r Repos, o *entity.WorkOrder) (*int64, error) {
	if o.GuideID == nil {
		return nil, nil
	}
	g, err := r.Documents.GetByID(ctx, *o.GuideID)
	if err != nil {
		return nil, err
	}
	if g == nil || !entity.CanRelateTo(entity.DocInvoice, g.Type) {
		return nil, precondition("La guía asociada a la orden no es válida para relacionar la factura.")
	}
	return &g.ID, nil
}

// emitGuide emite la guía de despacho. El flag de retiro depende solo del tipo de OT;
// billable decide si la guía lleva los montos para una factura posterior.
func (uc *UseCase) emitGuide(ctx context.Context, r Repos, o *entity.WorkOrder, billable bool) (*entity.Document, error) {
	if o.GuideID != nil {
		return nil, precondition("La orden ya tiene una guía asociada.")
	}

	var (
		rental *entity.Rental
		err    error
	)
	switch {
	case o.RentalID != nil:
		if rental, err = r.Rentals.GetByID(ctx, *o.RentalID); err != nil {
			return nil, err
		}
	case o.Type == entity.OrderRentalStart || o.Type == entity.OrderExtension || o.Type == entity.OrderRelocation:
		if rental, err = uc.openRental(ctx, r, o); err != nil {
			return nil, err
		}
	}
	if rental == nil {
		return nil, precondition("La orden no tiene arriendo asociado; no se puede emitir una guía todavía.")
	}

	client, err := r.Clients.GetByID(ctx, o.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil && rental.ClientID != nil {
		if client, err = r.Clients.GetByID(ctx, *rental.ClientID); err != nil {
			return nil, err
		}
	}
	if client == nil {
		return nil, precondition("La orden no tiene cliente asociado.")
	}

	number, err := nextNumber(ctx, r, entity.DocGuide)
	if err != nil {
		return nil, err
	}
	issued := uc.issueDate(o)
	withdrawal := o.Type == entity.OrderWithdrawal
	doc := &entity.Document{
		Type:         entity.DocGuide,
		Number:       number,
		IssueDate:    issued,
		RentalID:     rental.ID,
		ClientID:     &client.ID,
		IsWithdrawal: withdrawal,
	}
	if billable {
		doc.SetAmounts(o.NetAmount, o.TaxAmount, o.TotalAmount)
	} else {
		doc.SetAmounts(decimal.Zero, decimal.Zero, decimal.Zero)
	}
	switch o.Type {
	case entity.OrderRentalStart, entity.OrderRelocation:
		doc.DestinationSiteID = rental.SiteID
	default:
		doc.OriginSiteID = rental.SiteID
	}
	if err := r.Documents.Create(ctx, doc); err != nil {
		return nil, err
	}
	o.GuideID = &doc.ID

	switch {
	case withdrawal:
		o.MarkProcessed(uc.now())
		rental.Close(issued)
		if err := r.Rentals.Update(ctx, rental); err != nil {
			return nil, err
		}
		if rental.MachineID != nil {
			if err := uc.releaseMachine(ctx, r, *rental.MachineID); err != nil {
				return nil, err
			}
		}
	case o.State == entity.OrderProcessed:
		// ya facturada: la guía no reabre la orden
	case billable:
		o.Billable = true
		o.State = entity.OrderPending
	default:
		o.MarkProcessed(uc.now())
	}
	return doc, nil
}

// releaseMachine deja la máquina disponible en bodega.
func (uc *UseCase) releaseMachine(ctx context.Context, r Repos, machineID int64) error {
	m, err := r.Machines.GetByID(ctx, machineID)
	if err != nil || m == nil {
		return err
	}
	m.State = entity.MachineAvailable
	return r.Machines.Update(ctx, m)
}
