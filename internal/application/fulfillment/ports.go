package fulfillment

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain/repository"
)

// Repositories agrupa los repositorios atados a una misma conexión/transacción.
type Repositories struct {
	Products   repository.ProductRepository
	Warehouses repository.WarehouseRepository
	Orders     repository.OrderRepository
	Movements  repository.ProductWarehouseRepository
}

// UnitOfWork ejecuta fn con repositorios atados a una única transacción de BD.
// Hace Commit si fn devuelve nil y Rollback en cualquier otro caso; la conexión
// se libera al salir en todos los caminos.
type UnitOfWork interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}

// Observer recibe el resultado de cada solicitud de cumplimiento (métricas).
type Observer interface {
	Observe(strategy, outcome string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) Observe(string, string, time.Duration) {}
