package dto

import "time"

// FulfillmentRequest body para POST /api/warehouse y /api/warehouse/procedure.
// CreatedAt solo se usa para elegir la orden: debe ser posterior a la creación de la orden.
type FulfillmentRequest struct {
	ProductID   int64     `json:"product_id"`
	WarehouseID int64     `json:"warehouse_id"`
	Amount      int       `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// FulfillmentResponse devuelve el ID del registro de entrada a bodega creado.
type FulfillmentResponse struct {
	ID int64 `json:"id"`
}
