package orders

import (
	"context"
	"regexp"
	"strings"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

// purchaseOrderMarker OC anotada en observaciones por el formulario antiguo.
var purchaseOrderMarker = regexp.MustCompile(`OC:\s*(.+)`)

// PurchaseOrderOf OC de la OT: campo propio o, si está vacío, la anotada en observaciones.
func PurchaseOrderOf(o *entity.WorkOrder) string {
	if oc := strings.TrimSpace(o.PurchaseOrder); oc != "" {
		return oc
	}
	if m := purchaseOrderMarker.FindStringSubmatch(o.Observations); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// enricher carga lo necesario para serializar OT y filas de reporte, con caché por request.
type enricher struct {
	r        Repos
	clients  map[int64]*entity.Client
	machines map[int64]*entity.Machine
	sites    map[int64]*entity.Site
	docs     map[int64]*entity.Document
}

func newEnricher(r Repos) *enricher {
	return &enricher{
		r:        r,
		clients:  map[int64]*entity.Client{},
		machines: map[int64]*entity.Machine{},
		sites:    map[int64]*entity.Site{},
		docs:     map[int64]*entity.Document{},
	}
}

func cached[T any](ctx context.Context, cache map[int64]*T, id *int64, load func(context.Context, int64) (*T, error)) (*T, error) {
	if id == nil {
		return nil, nil
	}
	if v, ok := cache[*id]; ok {
		return v, nil
	}
	v, err := load(ctx, *id)
	if err != nil {
		return nil, err
	}
	cache[*id] = v
	return v, nil
}

func (e *enricher) client(ctx context.Context, id *int64) (*entity.Client, error) {
	return cached(ctx, e.clients, id, e.r.Clients.GetByID)
}

func (e *enricher) machine(ctx context.Context, id *int64) (*entity.Machine, error) {
	return cached(ctx, e.machines, id, e.r.Machines.GetByID)
}

func (e *enricher) site(ctx context.Context, id *int64) (*entity.Site, error) {
	return cached(ctx, e.sites, id, e.r.Sites.GetByID)
}

func (e *enricher) document(ctx context.Context, id *int64) (*entity.Document, error) {
	return cached(ctx, e.docs, id, e.r.Documents.GetByID)
}

// order serializa la OT con sus campos derivados (RUT, series, OC, folio, resúmenes de documentos).
func (e *enricher) order(ctx context.Context, o *entity.WorkOrder) (*dto.WorkOrderResponse, error) {
	clientID := o.ClientID
	client, err := e.client(ctx, &clientID)
	if err != nil {
		return nil, err
	}
	machine, err := e.machine(ctx, o.MachineID)
	if err != nil {
		return nil, err
	}
	invoice, err := e.document(ctx, o.InvoiceID)
	if err != nil {
		return nil, err
	}
	guide, err := e.document(ctx, o.GuideID)
	if err != nil {
		return nil, err
	}

	var legalName, rut, serial string
	if client != nil {
		legalName, rut = client.LegalName, client.RUT
	}
	var machineLabel *string
	if machine != nil {
		serial = machine.Serial
		label := machine.Label()
		machineLabel = &label
	}
	oc := PurchaseOrderOf(o)
	serials := o.Serials()

	lines := make([]dto.LineItemResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.LineItemResponse{
			Serial:      l.Serial,
			Unit:        l.Unit,
			PeriodCount: l.PeriodCount,
			From:        optional(l.From),
			To:          optional(l.To),
			Value:       l.Value,
			Freight:     l.Freight,
			FreightType: l.FreightType,
			Net:         l.Net,
			Tax:         l.Tax,
			Total:       l.Total,
		})
	}

	return &dto.WorkOrderResponse{
		ID:                    o.ID,
		Folio:                 o.Folio(),
		Type:                  o.Type,
		TypeDisplay:           entity.OrderTypeDisplay(o.Type),
		CommercialType:        o.CommercialType,
		CommercialTypeDisplay: entity.CommercialTypeDisplay(o.CommercialType),
		State:                 o.State,
		StateDisplay:          entity.OrderStateDisplay(o.State),
		Billable:              o.Billable,
		CreatedAt:             o.CreatedAt,
		ClosedAt:              o.ClosedAt,
		ClientID:              o.ClientID,
		ClientLegalName:       legalName,
		RentalID:              o.RentalID,
		MachineID:             o.MachineID,
		MachineLabel:          machineLabel,
		Invoice:               dto.DocumentSummaryFrom(invoice),
		Guide:                 dto.DocumentSummaryFrom(guide),
		Observations:          o.Observations,
		Address:               o.Address,
		SiteName:              o.SiteName,
		Contacts:              o.Contacts,
		PurchaseOrder:         oc,
		Seller:                o.Seller,
		IssueDate:             dto.FormatDatePtr(o.IssueDate),
		Lines:                 lines,
		NetAmount:             o.NetAmount,
		TaxAmount:             o.TaxAmount,
		TotalAmount:           o.TotalAmount,
		ClientName:            legalName,
		ClientLegalName2:      legalName,
		ClientRUT:             rut,
		ClientRUT2:            rut,
		RUT:                   rut,
		Serial:                serial,
		MachineSerial:         serial,
		MachineSerials:        serials,
		Serials:               serials,
		PurchaseOrderCode:     oc,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GetOrder OT enriquecida por id.
func (uc *UseCase) GetOrder(ctx context.Context, id int64) (*dto.WorkOrderResponse, error) {
	o, err := uc.repos.WorkOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Orden de trabajo no encontrada.")
	}
	return newEnricher(uc.repos).order(ctx, o)
}

// ListOrders OT filtradas, más recientes primero.
func (uc *UseCase) ListOrders(ctx context.Context, f repository.WorkOrderFilter) ([]dto.WorkOrderResponse, error) {
	list, err := uc.repos.WorkOrders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	e := newEnricher(uc.repos)
	out := make([]dto.WorkOrderResponse, 0, len(list))
	for _, o := range list {
		row, err := e.order(ctx, o)
		if err != nil {
			return nil, err
		}
		out = append(out, *row)
	}
	return out, nil
}
