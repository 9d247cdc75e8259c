package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Arriendos-api/internal/application/orders"
)

var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunOrders inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Documento, OT, arriendo y máquina quedan todos escritos o ninguno.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(repos orders.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos arma el conjunto de repositorios del flujo de órdenes sobre q (pool o tx).
func NewRepos(q Querier) orders.Repos {
	return orders.Repos{
		Machines:   NewMachineRepository(q),
		Clients:    NewClientRepository(q),
		Sites:      NewSiteRepository(q),
		Rentals:    NewRentalRepository(q),
		Documents:  NewDocumentRepository(q),
		WorkOrders: NewWorkOrderRepository(q),
	}
}
