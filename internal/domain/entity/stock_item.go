package entity

import "time"

// StockItem es la existencia de un producto en una posición (par único).
// Se crea la primera vez que ingresa mercadería en ese par; la cantidad
// nunca es negativa.
type StockItem struct {
	ID         string
	ProductoID string
	PosicionID string
	Cantidad   int
	UpdatedAt  time.Time
}
