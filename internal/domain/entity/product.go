package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo. Solo lectura para el cumplimiento de órdenes.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal // precio unitario, no negativo
}
