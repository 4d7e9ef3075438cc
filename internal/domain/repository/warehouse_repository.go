package repository

import "context"

// WarehouseRepository define el puerto de lectura de bodegas (DIP).
type WarehouseRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
