package repository

import (
	"context"
	"time"
)

// FulfillmentProcedure ejecuta el cumplimiento completo en una sola rutina del servidor de BD.
type FulfillmentProcedure interface {
	AddProductToWarehouse(ctx context.Context, productID, warehouseID int64, amount int, createdAt time.Time) (int64, error)
}
