package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/warehouse-fulfillment/internal/application/fulfillment"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
)

var _ fulfillment.UnitOfWork = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run toma una conexión del pool, inicia una transacción READ COMMITTED, ejecuta fn con
// repos atados a la tx y hace Commit o Rollback. La conexión vuelve al pool en todos los casos.
func (r *TxRunner) Run(ctx context.Context, fn func(repos fulfillment.Repositories) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return domain.Internal("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := fulfillment.Repositories{
		Products:   NewProductRepository(tx),
		Warehouses: NewWarehouseRepository(tx),
		Orders:     NewOrderRepository(tx),
		Movements:  NewProductWarehouseRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Internal("commit transaction", err)
	}
	return nil
}
