package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/domain/documents"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

// CreateOrder crea una OT desde el formulario: resuelve arriendo y cliente, calcula los totales
// por línea y, para inicio o prolongación sin arriendo, abre uno nuevo. Todo en una transacción.
func (uc *UseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.WorkOrderResponse, error) {
	orderType := entity.NormalizeOrderType(in.Type)
	if !entity.ValidOrderType(orderType) {
		return nil, invalid(fmt.Sprintf("Tipo de OT inválido: %q.", in.Type))
	}
	if len(in.Lines) == 0 {
		return nil, invalid("Debes indicar al menos una máquina en 'lineas'.")
	}

	var order *entity.WorkOrder
	err := uc.tx.RunOrders(ctx, func(r Repos) error {
		o, err := uc.buildOrder(ctx, r, orderType, in)
		if err != nil {
			return err
		}
		if entity.CreatesRental(o.Type) && o.RentalID == nil {
			if _, err := uc.openRental(ctx, r, o); err != nil {
				return err
			}
		}
		if err := r.WorkOrders.Create(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("order_id", order.ID).
		Str("tipo", order.Type).
		Str("total", order.TotalAmount.String()).
		Msg("orden de trabajo creada")

	return newEnricher(uc.repos).order(ctx, order)
}

func (uc *UseCase) buildOrder(ctx context.Context, r Repos, orderType string, in dto.CreateOrderRequest) (*entity.WorkOrder, error) {
	o := &entity.WorkOrder{
		Type:          orderType,
		State:         entity.OrderPending,
		SiteName:      strings.TrimSpace(in.SiteName),
		Address:       strings.TrimSpace(in.Address),
		Contacts:      strings.TrimSpace(in.Contacts),
		PurchaseOrder: strings.TrimSpace(in.PurchaseOrder),
		Seller:        strings.TrimSpace(in.Seller),
		Observations:  in.Observations,
		CreatedAt:     uc.now(),
	}
	if d, ok := entity.ParseDate(in.IssueDate); ok {
		o.IssueDate = &d
	}

	// arriendo referenciado: aporta obra, dirección y máquina principal
	var rental *entity.Rental
	if id := in.RentalRef(); id != 0 {
		a, err := r.Rentals.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, invalid(fmt.Sprintf("Arriendo asociado (id=%d) no encontrado.", id))
		}
		rental = a
		o.RentalID = &a.ID
		o.MachineID = a.MachineID
		if a.SiteID != nil && (o.SiteName == "" || o.Address == "") {
			site, err := r.Sites.GetByID(ctx, *a.SiteID)
			if err != nil {
				return nil, err
			}
			if site != nil {
				if o.SiteName == "" {
					o.SiteName = site.Name
				}
				if o.Address == "" {
					o.Address = site.Address
				}
			}
		}
	}
	if orderType == entity.OrderWithdrawal && rental == nil {
		return nil, invalid("Para una OT de tipo Retiro debes indicar el arriendo asociado. " +
			"Usa el botón 'Retiro' desde Estado de arriendo de máquinas.")
	}

	// cliente: el retiro es un movimiento interno y siempre va a la cuenta propia
	var (
		client *entity.Client
		err    error
	)
	if orderType == entity.OrderWithdrawal {
		client, err = uc.houseAccount(ctx, r)
	} else {
		client, err = resolveClient(ctx, r, in.Client)
	}
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, invalid("No se pudo identificar el cliente. " +
			"Selecciona un cliente desde la lista para que coincida con la base de datos.")
	}
	o.ClientID = client.ID

	if err := uc.applyLines(ctx, r, o, in.Lines); err != nil {
		return nil, err
	}
	if len(o.Lines) == 0 {
		return nil, invalid("Debes indicar al menos una máquina con serie válida.")
	}

	o.CommercialType = entity.CommercialTypeFor(orderType)
	o.Billable = orderType == entity.OrderService
	return o, nil
}

// applyLines calcula neto, IVA y total por línea y los acumula en la OT.
// Las líneas sin serie se ignoran; en un retiro valor y flete son cero.
func (uc *UseCase) applyLines(ctx context.Context, r Repos, o *entity.WorkOrder, lines []dto.LineItemInput) error {
	for _, in := range lines {
		serial := strings.TrimSpace(in.Serial)
		if serial == "" {
			continue
		}
		unit := strings.TrimSpace(in.Unit)
		if unit == "" {
			unit = entity.PeriodDay
		}
		value, freight := in.Value.Decimal, in.Freight.Decimal
		if o.Type == entity.OrderWithdrawal {
			value, freight = decimal.Zero, decimal.Zero
		}
		net, tax, total := documents.LineTotals(value, freight, uc.cfg.IVARate)

		o.Lines = append(o.Lines, entity.LineItem{
			Serial:      serial,
			Unit:        unit,
			PeriodCount: int(in.PeriodCount),
			From:        strings.TrimSpace(in.From),
			To:          strings.TrimSpace(in.To),
			Value:       value,
			Freight:     freight,
			FreightType: in.FreightType,
			Net:         net,
			Tax:         tax,
			Total:       total,
		})
		o.NetAmount = o.NetAmount.Add(net)
		o.TaxAmount = o.TaxAmount.Add(tax)
		o.TotalAmount = o.TotalAmount.Add(total)

		if o.MachineID == nil {
			m, err := r.Machines.GetBySerial(ctx, serial)
			if err != nil {
				return err
			}
			if m != nil {
				o.MachineID = &m.ID
			}
		}
	}
	return nil
}
