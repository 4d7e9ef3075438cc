package entity

// Warehouse representa una bodega donde se recibe la mercancía de una orden.
type Warehouse struct {
	ID      int64
	Name    string
	Address string
}
