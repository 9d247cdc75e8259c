package orders

import (
	"context"
	"strings"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

func containsAny(query string, fields ...string) bool {
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// lastOf último documento (la lista viene en orden cronológico) que cumple keep.
func lastOf(docs []*entity.Document, keep func(*entity.Document) bool) *entity.Document {
	for i := len(docs) - 1; i >= 0; i-- {
		if keep(docs[i]) {
			return docs[i]
		}
	}
	return nil
}

func findDoc(docs []*entity.Document, id *int64) *entity.Document {
	if id == nil {
		return nil
	}
	for _, d := range docs {
		if d.ID == *id {
			return d
		}
	}
	return nil
}

func isType(t string) func(*entity.Document) bool {
	return func(d *entity.Document) bool { return d.Type == t }
}

// RentalStatus una fila por arriendo activo con documentos. Guía y factura se toman de la
// última OT del arriendo cuando las tiene; si no, de los documentos del arriendo.
func (uc *UseCase) RentalStatus(ctx context.Context, query string) ([]dto.RentalStatusRow, error) {
	query = strings.TrimSpace(query)
	rentals, err := uc.repos.Rentals.ListActive(ctx, uc.today())
	if err != nil {
		return nil, err
	}
	e := newEnricher(uc.repos)
	rows := make([]dto.RentalStatusRow, 0, len(rentals))
	for _, a := range rentals {
		client, err := e.client(ctx, a.ClientID)
		if err != nil {
			return nil, err
		}
		machine, err := e.machine(ctx, a.MachineID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			client = &entity.Client{}
		}
		if machine == nil {
			machine = &entity.Machine{}
		}
		if query != "" && !containsAny(query, client.LegalName, client.RUT, machine.Brand, machine.Model, machine.Serial) {
			continue
		}

		docs, err := uc.repos.Documents.ListByRental(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			continue
		}
		order, err := uc.repos.WorkOrders.LatestByRental(ctx, a.ID)
		if err != nil {
			return nil, err
		}

		var movement, invoice *entity.Document
		if order != nil {
			movement = findDoc(docs, order.GuideID)
			invoice = findDoc(docs, order.InvoiceID)
		}
		if movement == nil {
			movement = lastOf(docs, func(d *entity.Document) bool { return d.Type == entity.DocGuide && !d.IsWithdrawal })
		}
		if movement == nil {
			movement = docs[len(docs)-1]
		}
		if invoice == nil {
			invoice = lastOf(docs, isType(entity.DocInvoice))
		}

		site, err := e.site(ctx, a.SiteID)
		if err != nil {
			return nil, err
		}
		row := dto.RentalStatusRow{
			ID:        a.ID,
			Document:  movement.Label(),
			DocType:   movement.Type,
			DocNumber: movement.Number,
			DocDate:   dto.FormatDate(movement.IssueDate),
			Brand:     machine.Brand,
			Model:     machine.Model,
			Height:    dto.NullableDecimal(machine.Height),
			Serial:    machine.Serial,
			From:      dto.FormatDate(a.StartDate),
			To:        dto.FormatDatePtr(a.EndDate),
			Client:    client.LegalName,
			ClientRUT: client.RUT,
		}
		if site != nil {
			row.Site = site.Name
		}
		if invoice != nil {
			row.Invoice = invoice.Label()
			row.InvoiceNumber = &invoice.Number
			row.InvoiceDate = dto.FormatDatePtr(&invoice.IssueDate)
		}
		if order != nil {
			id := order.ID
			row.OrderID = &id
			row.OrderFolio = order.Folio()
			row.PurchaseOrder = PurchaseOrderOf(order)
			row.Seller = order.Seller
			row.OrderType = order.Type
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WarehouseStatus una fila por máquina Disponible: última obra, última guía de retiro,
// última factura y la OT de ese retiro. El cliente es siempre la cuenta propia.
func (uc *UseCase) WarehouseStatus(ctx context.Context, query string) ([]dto.WarehouseRow, error) {
	machines, err := uc.repos.Machines.ListByState(ctx, entity.MachineAvailable, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	e := newEnricher(uc.repos)
	rows := make([]dto.WarehouseRow, 0, len(machines))
	for _, m := range machines {
		row := dto.WarehouseRow{
			ID:        m.ID,
			Brand:     m.Brand,
			Model:     m.Model,
			Height:    dto.NullableDecimal(m.Height),
			Serial:    m.Serial,
			Client:    uc.cfg.HouseName,
			ClientRUT: uc.cfg.HouseRUT,
		}

		rentals, err := uc.repos.Rentals.ListByMachine(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		if len(rentals) > 0 {
			site, err := e.site(ctx, rentals[0].SiteID)
			if err != nil {
				return nil, err
			}
			if site != nil {
				row.Site = site.Name
			}
		}

		docs, err := uc.repos.Documents.ListByMachine(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		withdrawal := lastOf(docs, func(d *entity.Document) bool { return d.Type == entity.DocGuide && d.IsWithdrawal })
		if withdrawal != nil {
			row.Document = withdrawal.Label()
			row.DocType = &withdrawal.Type
			row.DocNumber = &withdrawal.Number
			row.DocDate = dto.FormatDatePtr(&withdrawal.IssueDate)

			order, err := uc.repos.WorkOrders.LatestByGuide(ctx, withdrawal.ID)
			if err != nil {
				return nil, err
			}
			if order != nil {
				id := order.ID
				row.OrderID = &id
				row.OrderFolio = order.Folio()
				row.PurchaseOrder = PurchaseOrderOf(order)
				row.Seller = order.Seller
				row.OrderType = order.Type
			}
		}
		if invoice := lastOf(docs, isType(entity.DocInvoice)); invoice != nil {
			row.Invoice = invoice.Label()
			row.InvoiceNumber = &invoice.Number
			row.InvoiceDate = dto.FormatDatePtr(&invoice.IssueDate)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
