// Package memory implementa todos los repositorios sobre un estado en memoria con
// transacciones atómicas (copia del estado, commit por reemplazo). Sirve para demos
// locales (APP_STORE=memory) y como doble de prueba de los casos de uso.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Arriendos-api/internal/application/orders"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

var _ orders.TxRunner = (*Store)(nil)

type state struct {
	seq        map[string]int64
	machines   map[int64]entity.Machine
	clients    map[int64]entity.Client
	sites      map[int64]entity.Site
	rentals    map[int64]entity.Rental
	documents  map[int64]entity.Document
	workOrders map[int64]entity.WorkOrder
	users      map[string]entity.User
	security   map[string]entity.UserSecurity
}

func newState() *state {
	return &state{
		seq:        map[string]int64{},
		machines:   map[int64]entity.Machine{},
		clients:    map[int64]entity.Client{},
		sites:      map[int64]entity.Site{},
		rentals:    map[int64]entity.Rental{},
		documents:  map[int64]entity.Document{},
		workOrders: map[int64]entity.WorkOrder{},
		users:      map[string]entity.User{},
		security:   map[string]entity.UserSecurity{},
	}
}

// clone copia los mapas; los valores se guardan ya clonados y nunca se mutan en sitio.
func (s *state) clone() *state {
	return &state{
		seq:        copyMap(s.seq),
		machines:   copyMap(s.machines),
		clients:    copyMap(s.clients),
		sites:      copyMap(s.sites),
		rentals:    copyMap(s.rentals),
		documents:  copyMap(s.documents),
		workOrders: copyMap(s.workOrders),
		users:      copyMap(s.users),
		security:   copyMap(s.security),
	}
}

func (s *state) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// Store estado compartido protegido por mutex.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// access ejecuta fn con acceso exclusivo al estado.
type access interface {
	with(fn func(d *state) error) error
}

type storeAccess struct{ s *Store }

func (a storeAccess) with(fn func(d *state) error) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return fn(a.s.data)
}

// txAccess opera sobre la copia de trabajo; el lock lo mantiene RunOrders.
type txAccess struct{ d *state }

func (a txAccess) with(fn func(d *state) error) error { return fn(a.d) }

// Repos repositorios fuera de transacción.
func (s *Store) Repos() orders.Repos {
	return reposFor(storeAccess{s})
}

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo {
	return &UserRepo{a: storeAccess{s}}
}

// RunOrders ejecuta fn sobre una copia del estado y la publica solo si fn termina sin error.
// Las transacciones se serializan; fn no debe usar los repos de Store.Repos().
func (s *Store) RunOrders(ctx context.Context, fn func(repos orders.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(reposFor(txAccess{work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = work
	return nil
}

func reposFor(a access) orders.Repos {
	return orders.Repos{
		Machines:   &MachineRepo{a: a},
		Clients:    &ClientRepo{a: a},
		Sites:      &SiteRepo{a: a},
		Rentals:    &RentalRepo{a: a},
		Documents:  &DocumentRepo{a: a},
		WorkOrders: &WorkOrderRepo{a: a},
	}
}

// ── helpers ──────────────────────────────────────────────────────────────────

var folder = cases.Fold()

func fold(s string) string { return folder.String(s) }

func equalFold(a, b string) bool { return fold(a) == fold(b) }

func containsFold(s, sub string) bool {
	return strings.Contains(fold(s), fold(sub))
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func ptr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// sortedValues valores del mapa ordenados por less.
func sortedValues[K comparable, V any](m map[K]V, less func(a, b *V) bool) []*V {
	out := make([]*V, 0, len(m))
	for _, v := range m {
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
