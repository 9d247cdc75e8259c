package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
	"github.com/jhoicas/Arriendos-api/pkg/rut"
)

var (
	_ repository.MachineRepository = (*MachineRepo)(nil)
	_ repository.ClientRepository  = (*ClientRepo)(nil)
	_ repository.SiteRepository    = (*SiteRepo)(nil)
	_ repository.RentalRepository  = (*RentalRepo)(nil)
)

// ─── Maquinarias ─────────────────────────────────────────────────────────────

// MachineRepo maquinarias en memoria.
type MachineRepo struct{ a access }

func serialTaken(d *state, serial string, exceptID int64) bool {
	if serial == "" {
		return false
	}
	for id, m := range d.machines {
		if id != exceptID && equalFold(m.Serial, serial) {
			return true
		}
	}
	return false
}

func (r *MachineRepo) Create(_ context.Context, m *entity.Machine) error {
	return r.a.with(func(d *state) error {
		if serialTaken(d, m.Serial, 0) {
			return domain.ErrDuplicate
		}
		m.ID = d.nextID("machines")
		d.machines[m.ID] = cloneMachine(*m)
		return nil
	})
}

func (r *MachineRepo) GetByID(_ context.Context, id int64) (*entity.Machine, error) {
	var out *entity.Machine
	err := r.a.with(func(d *state) error {
		if m, ok := d.machines[id]; ok {
			c := cloneMachine(m)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *MachineRepo) GetBySerial(_ context.Context, serial string) (*entity.Machine, error) {
	var out *entity.Machine
	err := r.a.with(func(d *state) error {
		for _, m := range sortedValues(d.machines, machineByID) {
			if m.Serial != "" && equalFold(m.Serial, serial) {
				c := cloneMachine(*m)
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *MachineRepo) Search(_ context.Context, query string) ([]*entity.Machine, error) {
	var out []*entity.Machine
	err := r.a.with(func(d *state) error {
		all := sortedValues(d.machines, machineByID)
		if query == "" {
			out = cloneMachines(all)
			return nil
		}
		var exact, partial []*entity.Machine
		for _, m := range sortedValues(d.machines, machineByBrand) {
			switch {
			case m.Serial != "" && equalFold(m.Serial, query):
				exact = append(exact, m)
			case containsFold(m.Brand, query) || containsFold(m.Model, query):
				partial = append(partial, m)
			}
		}
		out = cloneMachines(append(exact, partial...))
		return nil
	})
	return out, err
}

func (r *MachineRepo) ListByState(_ context.Context, st, query string) ([]*entity.Machine, error) {
	var out []*entity.Machine
	err := r.a.with(func(d *state) error {
		var list []*entity.Machine
		for _, m := range sortedValues(d.machines, machineByBrand) {
			if !equalFold(m.State, st) {
				continue
			}
			if query != "" && !containsFold(m.Brand, query) && !containsFold(m.Model, query) && !containsFold(m.Serial, query) {
				continue
			}
			list = append(list, m)
		}
		out = cloneMachines(list)
		return nil
	})
	return out, err
}

func (r *MachineRepo) Update(_ context.Context, m *entity.Machine) error {
	return r.a.with(func(d *state) error {
		if _, ok := d.machines[m.ID]; !ok {
			return domain.ErrNotFound
		}
		if serialTaken(d, m.Serial, m.ID) {
			return domain.ErrDuplicate
		}
		d.machines[m.ID] = cloneMachine(*m)
		return nil
	})
}

func (r *MachineRepo) Delete(_ context.Context, id int64) error {
	return r.a.with(func(d *state) error {
		if _, ok := d.machines[id]; !ok {
			return domain.ErrNotFound
		}
		for _, a := range d.rentals {
			if a.MachineID != nil && *a.MachineID == id {
				return domain.ErrConflict
			}
		}
		for _, o := range d.workOrders {
			if o.MachineID != nil && *o.MachineID == id {
				return domain.ErrConflict
			}
		}
		delete(d.machines, id)
		return nil
	})
}

func machineByID(a, b *entity.Machine) bool { return a.ID < b.ID }

func machineByBrand(a, b *entity.Machine) bool {
	if a.Brand != b.Brand {
		return a.Brand < b.Brand
	}
	if a.Model != b.Model {
		return a.Model < b.Model
	}
	if a.Serial != b.Serial {
		return a.Serial < b.Serial
	}
	return a.ID < b.ID
}

func cloneMachine(m entity.Machine) entity.Machine {
	m.Year = ptr(m.Year)
	return m
}

func cloneMachines(list []*entity.Machine) []*entity.Machine {
	out := make([]*entity.Machine, 0, len(list))
	for _, m := range list {
		c := cloneMachine(*m)
		out = append(out, &c)
	}
	return out
}

// ─── Clientes ────────────────────────────────────────────────────────────────

// ClientRepo clientes en memoria.
type ClientRepo struct{ a access }

func rutTaken(d *state, value string, exceptID int64) bool {
	for id, c := range d.clients {
		if id != exceptID && equalFold(c.RUT, value) {
			return true
		}
	}
	return false
}

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	return r.a.with(func(d *state) error {
		if rutTaken(d, c.RUT, 0) {
			return domain.ErrDuplicate
		}
		c.ID = d.nextID("clients")
		d.clients[c.ID] = *c
		return nil
	})
}

func (r *ClientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	var out *entity.Client
	err := r.a.with(func(d *state) error {
		if c, ok := d.clients[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ClientRepo) GetByRUT(_ context.Context, value string) (*entity.Client, error) {
	return r.first(func(c *entity.Client) bool { return equalFold(c.RUT, value) })
}

func (r *ClientRepo) FindFirstByText(_ context.Context, text string) (*entity.Client, error) {
	return r.first(func(c *entity.Client) bool {
		return containsFold(c.LegalName, text) || containsFold(c.RUT, text)
	})
}

func (r *ClientRepo) first(match func(c *entity.Client) bool) (*entity.Client, error) {
	var out *entity.Client
	err := r.a.with(func(d *state) error {
		for _, c := range sortedValues(d.clients, clientByID) {
			if match(c) {
				out = c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ClientRepo) Search(_ context.Context, query string) ([]*entity.Client, error) {
	var out []*entity.Client
	err := r.a.with(func(d *state) error {
		digits := query != "" && rut.IsDigits(query)
		for _, c := range sortedValues(d.clients, clientByID) {
			switch {
			case query == "":
			case digits:
				if !strings.HasPrefix(rut.StripSeparators(c.RUT), query) {
					continue
				}
			default:
				if !containsFold(c.LegalName, query) && !containsFold(c.RUT, query) {
					continue
				}
			}
			out = append(out, c)
		}
		return nil
	})
	return out, err
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	return r.a.with(func(d *state) error {
		if _, ok := d.clients[c.ID]; !ok {
			return domain.ErrNotFound
		}
		if rutTaken(d, c.RUT, c.ID) {
			return domain.ErrDuplicate
		}
		d.clients[c.ID] = *c
		return nil
	})
}

func (r *ClientRepo) Delete(_ context.Context, id int64) error {
	return r.a.with(func(d *state) error {
		if _, ok := d.clients[id]; !ok {
			return domain.ErrNotFound
		}
		for _, a := range d.rentals {
			if a.ClientID != nil && *a.ClientID == id {
				return domain.ErrConflict
			}
		}
		for _, doc := range d.documents {
			if doc.ClientID != nil && *doc.ClientID == id {
				return domain.ErrConflict
			}
		}
		for _, o := range d.workOrders {
			if o.ClientID == id {
				return domain.ErrConflict
			}
		}
		delete(d.clients, id)
		return nil
	})
}

func clientByID(a, b *entity.Client) bool { return a.ID < b.ID }

// ─── Obras ───────────────────────────────────────────────────────────────────

// SiteRepo obras en memoria.
type SiteRepo struct{ a access }

func (r *SiteRepo) Create(_ context.Context, s *entity.Site) error {
	return r.a.with(func(d *state) error {
		s.ID = d.nextID("sites")
		d.sites[s.ID] = *s
		return nil
	})
}

func (r *SiteRepo) GetByID(_ context.Context, id int64) (*entity.Site, error) {
	var out *entity.Site
	err := r.a.with(func(d *state) error {
		if s, ok := d.sites[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SiteRepo) GetByName(_ context.Context, name string) (*entity.Site, error) {
	var out *entity.Site
	err := r.a.with(func(d *state) error {
		for _, s := range sortedValues(d.sites, siteByID) {
			if equalFold(s.Name, name) {
				out = s
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *SiteRepo) List(_ context.Context) ([]*entity.Site, error) {
	var out []*entity.Site
	err := r.a.with(func(d *state) error {
		out = sortedValues(d.sites, siteByID)
		return nil
	})
	return out, err
}

func (r *SiteRepo) Update(_ context.Context, s *entity.Site) error {
	return r.a.with(func(d *state) error {
		if _, ok := d.sites[s.ID]; !ok {
			return domain.ErrNotFound
		}
		d.sites[s.ID] = *s
		return nil
	})
}

func (r *SiteRepo) Delete(_ context.Context, id int64) error {
	return r.a.with(func(d *state) error {
		if _, ok := d.sites[id]; !ok {
			return domain.ErrNotFound
		}
		for _, a := range d.rentals {
			if a.SiteID != nil && *a.SiteID == id {
				return domain.ErrConflict
			}
		}
		for _, doc := range d.documents {
			if (doc.OriginSiteID != nil && *doc.OriginSiteID == id) ||
				(doc.DestinationSiteID != nil && *doc.DestinationSiteID == id) {
				return domain.ErrConflict
			}
		}
		delete(d.sites, id)
		return nil
	})
}

func siteByID(a, b *entity.Site) bool { return a.ID < b.ID }

// ─── Arriendos ───────────────────────────────────────────────────────────────

// RentalRepo arriendos en memoria.
type RentalRepo struct{ a access }

func (r *RentalRepo) Create(_ context.Context, a *entity.Rental) error {
	return r.a.with(func(d *state) error {
		if err := checkRentalRefs(d, a); err != nil {
			return err
		}
		a.ID = d.nextID("rentals")
		d.rentals[a.ID] = cloneRental(*a)
		return nil
	})
}

func checkRentalRefs(d *state, a *entity.Rental) error {
	if a.MachineID != nil {
		if _, ok := d.machines[*a.MachineID]; !ok {
			return domain.Detail(domain.ErrInvalidInput, "la maquinaria no existe")
		}
	}
	if a.ClientID != nil {
		if _, ok := d.clients[*a.ClientID]; !ok {
			return domain.Detail(domain.ErrInvalidInput, "el cliente no existe")
		}
	}
	if a.SiteID != nil {
		if _, ok := d.sites[*a.SiteID]; !ok {
			return domain.Detail(domain.ErrInvalidInput, "la obra no existe")
		}
	}
	return nil
}

func (r *RentalRepo) GetByID(_ context.Context, id int64) (*entity.Rental, error) {
	var out *entity.Rental
	err := r.a.with(func(d *state) error {
		if a, ok := d.rentals[id]; ok {
			c := cloneRental(a)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *RentalRepo) List(_ context.Context) ([]*entity.Rental, error) {
	return r.filter(rentalByID, func(*entity.Rental) bool { return true })
}

func (r *RentalRepo) ListActive(_ context.Context, day time.Time) ([]*entity.Rental, error) {
	return r.filter(rentalByID, func(a *entity.Rental) bool { return a.IsActiveOn(day) })
}

func (r *RentalRepo) ListByMachine(_ context.Context, machineID int64) ([]*entity.Rental, error) {
	return r.filter(rentalByStartDesc, func(a *entity.Rental) bool {
		return a.MachineID != nil && *a.MachineID == machineID
	})
}

func (r *RentalRepo) filter(less func(a, b *entity.Rental) bool, keep func(*entity.Rental) bool) ([]*entity.Rental, error) {
	var out []*entity.Rental
	err := r.a.with(func(d *state) error {
		for _, a := range sortedValues(d.rentals, less) {
			if keep(a) {
				c := cloneRental(*a)
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, err
}

func (r *RentalRepo) Update(_ context.Context, a *entity.Rental) error {
	return r.a.with(func(d *state) error {
		if _, ok := d.rentals[a.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := checkRentalRefs(d, a); err != nil {
			return err
		}
		d.rentals[a.ID] = cloneRental(*a)
		return nil
	})
}

func (r *RentalRepo) Delete(_ context.Context, id int64) error {
	return r.a.with(func(d *state) error {
		if _, ok := d.rentals[id]; !ok {
			return domain.ErrNotFound
		}
		for _, doc := range d.documents {
			if doc.RentalID == id {
				return domain.ErrConflict
			}
		}
		for _, o := range d.workOrders {
			if o.RentalID != nil && *o.RentalID == id {
				return domain.ErrConflict
			}
		}
		delete(d.rentals, id)
		return nil
	})
}

func rentalByID(a, b *entity.Rental) bool { return a.ID < b.ID }

func rentalByStartDesc(a, b *entity.Rental) bool {
	if !a.StartDate.Equal(b.StartDate) {
		return a.StartDate.After(b.StartDate)
	}
	return a.ID > b.ID
}

func cloneRental(a entity.Rental) entity.Rental {
	a.MachineID = ptr(a.MachineID)
	a.ClientID = ptr(a.ClientID)
	a.SiteID = ptr(a.SiteID)
	a.EndDate = ptr(a.EndDate)
	return a
}
