package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Arriendos-api/internal/domain"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

var (
	_ repository.DocumentRepository  = (*DocumentRepo)(nil)
	_ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)
	_ repository.UserRepository      = (*UserRepo)(nil)
)

// ─── Documentos ──────────────────────────────────────────────────────────────

// DocumentRepo documentos en memoria.
type DocumentRepo struct{ a access }

func (r *DocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	return r.a.with(func(d *state) error {
		if _, ok := d.rentals[doc.RentalID]; !ok {
			return domain.Detail(domain.ErrInvalidInput, "el documento referencia un registro inexistente")
		}
		doc.ID = d.nextID("documents")
		d.documents[doc.ID] = cloneDocument(*doc)
		return nil
	})
}

func (r *DocumentRepo) GetByID(_ context.Context, id int64) (*entity.Document, error) {
	var out *entity.Document
	err := r.a.with(func(d *state) error {
		if doc, ok := d.documents[id]; ok {
			c := cloneDocument(doc)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *DocumentRepo) LastByType(_ context.Context, docType string) (*entity.Document, error) {
	var out *entity.Document
	err := r.a.with(func(d *state) error {
		for _, doc := range d.documents {
			if doc.Type == docType && (out == nil || doc.ID > out.ID) {
				c := cloneDocument(doc)
				out = &c
			}
		}
		return nil
	})
	return out, err
}

func (r *DocumentRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Document, error) {
	var out []*entity.Document
	err := r.a.with(func(d *state) error {
		for _, doc := range sortedValues(d.documents, documentByIssueDesc) {
			if f.Type != "" && doc.Type != f.Type {
				continue
			}
			if f.Number != "" && !containsFold(doc.Number, f.Number) {
				continue
			}
			if f.Client != "" {
				c, ok := clientOf(d, doc)
				if !ok || (!containsFold(c.LegalName, f.Client) && !containsFold(c.RUT, f.Client)) {
					continue
				}
			}
			if f.From != nil && doc.IssueDate.Before(*f.From) {
				continue
			}
			if f.To != nil && doc.IssueDate.After(*f.To) {
				continue
			}
			out = append(out, cloneDocPtr(doc))
		}
		return nil
	})
	return out, err
}

func clientOf(d *state, doc *entity.Document) (entity.Client, bool) {
	if doc.ClientID == nil {
		return entity.Client{}, false
	}
	c, ok := d.clients[*doc.ClientID]
	return c, ok
}

func (r *DocumentRepo) ListByRental(_ context.Context, rentalID int64) ([]*entity.Document, error) {
	return r.filter(documentByIssueAsc, func(_ *state, doc *entity.Document) bool {
		return doc.RentalID == rentalID
	})
}

func (r *DocumentRepo) ListByMachine(_ context.Context, machineID int64) ([]*entity.Document, error) {
	return r.filter(documentByIssueAsc, func(d *state, doc *entity.Document) bool {
		a, ok := d.rentals[doc.RentalID]
		return ok && a.MachineID != nil && *a.MachineID == machineID
	})
}

func (r *DocumentRepo) ListRelatedTo(_ context.Context, id int64) ([]*entity.Document, error) {
	return r.filter(documentByID, func(_ *state, doc *entity.Document) bool {
		return doc.RelatedID != nil && *doc.RelatedID == id
	})
}

func (r *DocumentRepo) filter(less func(a, b *entity.Document) bool, keep func(*state, *entity.Document) bool) ([]*entity.Document, error) {
	var out []*entity.Document
	err := r.a.with(func(d *state) error {
		for _, doc := range sortedValues(d.documents, less) {
			if keep(d, doc) {
				out = append(out, cloneDocPtr(doc))
			}
		}
		return nil
	})
	return out, err
}

func documentByID(a, b *entity.Document) bool { return a.ID < b.ID }

func documentByIssueAsc(a, b *entity.Document) bool {
	if !a.IssueDate.Equal(b.IssueDate) {
		return a.IssueDate.Before(b.IssueDate)
	}
	return a.ID < b.ID
}

func documentByIssueDesc(a, b *entity.Document) bool { return documentByIssueAsc(b, a) }

func cloneDocument(doc entity.Document) entity.Document {
	doc.ClientID = ptr(doc.ClientID)
	doc.RelatedID = ptr(doc.RelatedID)
	doc.OriginSiteID = ptr(doc.OriginSiteID)
	doc.DestinationSiteID = ptr(doc.DestinationSiteID)
	return doc
}

func cloneDocPtr(doc *entity.Document) *entity.Document {
	c := cloneDocument(*doc)
	return &c
}

// ─── Órdenes de trabajo ──────────────────────────────────────────────────────

// WorkOrderRepo OT en memoria.
type WorkOrderRepo struct{ a access }

func (r *WorkOrderRepo) Create(_ context.Context, o *entity.WorkOrder) error {
	return r.a.with(func(d *state) error {
		if _, ok := d.clients[o.ClientID]; !ok {
			return domain.Detail(domain.ErrInvalidInput, "el cliente no existe")
		}
		o.ID = d.nextID("work_orders")
		d.workOrders[o.ID] = cloneWorkOrder(*o)
		return nil
	})
}

func (r *WorkOrderRepo) GetByID(_ context.Context, id int64) (*entity.WorkOrder, error) {
	var out *entity.WorkOrder
	err := r.a.with(func(d *state) error {
		if o, ok := d.workOrders[id]; ok {
			c := cloneWorkOrder(o)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *WorkOrderRepo) Update(_ context.Context, o *entity.WorkOrder) error {
	return r.a.with(func(d *state) error {
		if _, ok := d.workOrders[o.ID]; !ok {
			return domain.ErrNotFound
		}
		d.workOrders[o.ID] = cloneWorkOrder(*o)
		return nil
	})
}

func (r *WorkOrderRepo) List(_ context.Context, f repository.WorkOrderFilter) ([]*entity.WorkOrder, error) {
	var out []*entity.WorkOrder
	err := r.a.with(func(d *state) error {
		for _, o := range sortedValues(d.workOrders, workOrderByCreatedDesc) {
			if (f.OnlyPending || f.OnlyBillingPending) && o.State != entity.OrderPending {
				continue
			}
			if f.OnlyBillingPending && (!o.Billable || o.InvoiceID != nil) {
				continue
			}
			c := cloneWorkOrder(*o)
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

func (r *WorkOrderRepo) LatestByRental(_ context.Context, rentalID int64) (*entity.WorkOrder, error) {
	return r.latest(func(o *entity.WorkOrder) bool { return o.RentalID != nil && *o.RentalID == rentalID })
}

func (r *WorkOrderRepo) LatestByGuide(_ context.Context, guideID int64) (*entity.WorkOrder, error) {
	return r.latest(func(o *entity.WorkOrder) bool { return o.GuideID != nil && *o.GuideID == guideID })
}

func (r *WorkOrderRepo) LatestByInvoice(_ context.Context, invoiceID int64) (*entity.WorkOrder, error) {
	return r.latest(func(o *entity.WorkOrder) bool { return o.InvoiceID != nil && *o.InvoiceID == invoiceID })
}

func (r *WorkOrderRepo) latest(match func(*entity.WorkOrder) bool) (*entity.WorkOrder, error) {
	var out *entity.WorkOrder
	err := r.a.with(func(d *state) error {
		for _, o := range sortedValues(d.workOrders, workOrderByCreatedDesc) {
			if match(o) {
				c := cloneWorkOrder(*o)
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func workOrderByCreatedDesc(a, b *entity.WorkOrder) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func cloneWorkOrder(o entity.WorkOrder) entity.WorkOrder {
	o.RentalID = ptr(o.RentalID)
	o.MachineID = ptr(o.MachineID)
	o.InvoiceID = ptr(o.InvoiceID)
	o.GuideID = ptr(o.GuideID)
	o.IssueDate = ptr(o.IssueDate)
	o.ClosedAt = ptr(o.ClosedAt)
	if o.Lines != nil {
		o.Lines = append([]entity.LineItem(nil), o.Lines...)
	}
	return o
}

// ─── Usuarios ────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria.
type UserRepo struct{ a access }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.a.with(func(d *state) error {
		for _, other := range d.users {
			if strings.EqualFold(other.Username, u.Username) {
				return domain.ErrUserExists
			}
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.a.with(func(d *state) error {
		if u, ok := d.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.a.with(func(d *state) error {
		for _, u := range d.users {
			if strings.EqualFold(u.Username, username) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.a.with(func(d *state) error {
		out = sortedValues(d.users, func(a, b *entity.User) bool {
			if !a.DateJoined.Equal(b.DateJoined) {
				return a.DateJoined.Before(b.DateJoined)
			}
			return a.Username < b.Username
		})
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.a.with(func(d *state) error {
		if _, ok := d.users[u.ID]; !ok {
			return domain.ErrNotFound
		}
		for id, other := range d.users {
			if id != u.ID && strings.EqualFold(other.Username, u.Username) {
				return domain.ErrUserExists
			}
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	return r.a.with(func(d *state) error {
		if _, ok := d.users[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.users, id)
		delete(d.security, id)
		return nil
	})
}

func (r *UserRepo) GetSecurity(_ context.Context, userID string) (*entity.UserSecurity, error) {
	var out *entity.UserSecurity
	err := r.a.with(func(d *state) error {
		if s, ok := d.security[userID]; ok {
			s.LockedAt = ptr(s.LockedAt)
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) SaveSecurity(_ context.Context, s *entity.UserSecurity) error {
	return r.a.with(func(d *state) error {
		if _, ok := d.users[s.UserID]; !ok {
			return domain.ErrNotFound
		}
		c := *s
		c.LockedAt = ptr(s.LockedAt)
		d.security[s.UserID] = c
		return nil
	})
}
