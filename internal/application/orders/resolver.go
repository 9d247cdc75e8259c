package orders

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/documents"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/pkg/rut"
)

// resolveClient busca un RUT con formato dentro del texto (coincidencia exacta); si no hay
// o no existe, busca el texto en razón social o RUT. Nunca crea clientes. (nil, nil) si no hay match.
func resolveClient(ctx context.Context, r Repos, text string) (*entity.Client, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if value, ok := rut.FindInText(text); ok {
		c, err := r.Clients.GetByRUT(ctx, value)
		if err != nil {
			return nil, err
		}
		if c != nil {
			return c, nil
		}
	}
	return r.Clients.FindFirstByText(ctx, text)
}

// houseAccount cliente propio para movimientos internos; se crea la primera vez.
func (uc *UseCase) houseAccount(ctx context.Context, r Repos) (*entity.Client, error) {
	c, err := r.Clients.GetByRUT(ctx, uc.cfg.HouseRUT)
	if err != nil || c != nil {
		return c, err
	}
	c = &entity.Client{LegalName: uc.cfg.HouseName, RUT: uc.cfg.HouseRUT}
	if err := r.Clients.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// resolveOrCreateSite reutiliza la obra con el mismo nombre (completando la dirección si le falta)
// o crea una nueva. Nombre vacío devuelve nil.
func resolveOrCreateSite(ctx context.Context, r Repos, name, address string) (*entity.Site, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" {
		return nil, nil
	}
	s, err := r.Sites.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if s != nil {
		if s.Address == "" && address != "" {
			s.Address = address
			if err := r.Sites.Update(ctx, s); err != nil {
				return nil, err
			}
		}
		return s, nil
	}
	s = &entity.Site{Name: name, Address: address}
	if err := r.Sites.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// inferMachine máquina ya enlazada a la OT, o la de la primera serie de las líneas.
func inferMachine(ctx context.Context, r Repos, o *entity.WorkOrder) (*entity.Machine, error) {
	if o.MachineID != nil {
		return r.Machines.GetByID(ctx, *o.MachineID)
	}
	serial := o.FirstSerial()
	if serial == "" {
		return nil, nil
	}
	return r.Machines.GetBySerial(ctx, serial)
}

// inferDates rango de la primera línea; lo que falte es today.
func inferDates(o *entity.WorkOrder, today time.Time) (start, end time.Time) {
	start, end = today, today
	if len(o.Lines) == 0 {
		return start, end
	}
	if d, ok := entity.ParseDate(o.Lines[0].From); ok {
		start = d
	}
	if d, ok := entity.ParseDate(o.Lines[0].To); ok {
		end = d
	}
	return start, end
}

// inferPeriod unidad de la primera línea si es un periodo válido; si no, Dia.
func inferPeriod(o *entity.WorkOrder) string {
	if len(o.Lines) > 0 && entity.ValidPeriod(o.Lines[0].Unit) {
		return o.Lines[0].Unit
	}
	return entity.PeriodDay
}

// openRental crea el arriendo Activo de una OT de inicio, prolongación o traslado que no lo trae:
// fechas, periodo y tarifa de la primera línea, obra resuelta desde los datos de la OT.
// Sin "hasta" en la línea el arriendo queda abierto.
func (uc *UseCase) openRental(ctx context.Context, r Repos, o *entity.WorkOrder) (*entity.Rental, error) {
	site, err := resolveOrCreateSite(ctx, r, o.SiteName, o.Address)
	if err != nil {
		return nil, err
	}
	m, err := inferMachine(ctx, r, o)
	if err != nil {
		return nil, err
	}
	start, _ := inferDates(o, uc.today())
	clientID := o.ClientID
	a := &entity.Rental{
		ClientID:  &clientID,
		StartDate: start,
		Period:    inferPeriod(o),
		Rate:      o.NetAmount,
		State:     entity.RentalActive,
	}
	if len(o.Lines) > 0 {
		if end, ok := entity.ParseDate(o.Lines[0].To); ok {
			a.EndDate = &end
		}
		if o.Lines[0].Value.IsPositive() {
			a.Rate = o.Lines[0].Value
		}
	}
	if m != nil {
		a.MachineID = &m.ID
	}
	if site != nil {
		a.SiteID = &site.ID
	}
	if err := r.Rentals.Create(ctx, a); err != nil {
		return nil, err
	}
	o.RentalID = &a.ID
	if o.MachineID == nil {
		o.MachineID = a.MachineID
	}
	return a, nil
}

// phantomRental arriendo ya terminado que solo existe para enlazar la factura de una venta.
func (uc *UseCase) phantomRental(ctx context.Context, r Repos, o *entity.WorkOrder) (*entity.Rental, error) {
	m, err := inferMachine(ctx, r, o)
	if err != nil {
		return nil, err
	}
	start, end := inferDates(o, uc.today())
	clientID := o.ClientID
	a := &entity.Rental{
		ClientID:  &clientID,
		StartDate: start,
		EndDate:   &end,
		Period:    entity.PeriodDay,
		Rate:      o.NetAmount,
		State:     entity.RentalTerminated,
	}
	if m != nil {
		a.MachineID = &m.ID
	}
	if err := r.Rentals.Create(ctx, a); err != nil {
		return nil, err
	}
	o.RentalID = &a.ID
	return a, nil
}

// nextNumber correlativo del tipo a partir del último documento emitido.
// Lectura y escritura no se bloquean: dos emisiones simultáneas pueden repetir número.
func nextNumber(ctx context.Context, r Repos, docType string) (string, error) {
	last, err := r.Documents.LastByType(ctx, docType)
	if err != nil {
		return "", err
	}
	if last == nil {
		return documents.FirstNumber, nil
	}
	return documents.NextNumber(last.Number)
}

func precondition(detail string) error { return domain.Detail(domain.ErrPrecondition, detail) }

func invalid(detail string) error { return domain.Detail(domain.ErrInvalidInput, detail) }
