package dto

import "time"

// CreateStockRequest entrada para crear un registro de stock (ajuste manual).
type CreateStockRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	PosicionID string `json:"posicion_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad" validate:"min=0"`
}

// UpdateStockRequest entrada para ajustar la cantidad de un registro de stock.
type UpdateStockRequest struct {
	Cantidad int `json:"cantidad" validate:"min=0"`
}

// StockResponse salida de un registro de stock, con la proyección compuesta
// (código de producto y etiqueta de ubicación) que consume el frontend.
type StockResponse struct {
	ID             string    `json:"id"`
	ProductoID     string    `json:"producto_id"`
	CodigoProducto string    `json:"codigo_producto"`
	PosicionID     string    `json:"posicion_id"`
	Ubicacion      string    `json:"ubicacion"`
	Cantidad       int       `json:"cantidad"`
	UpdatedAt      time.Time `json:"updated_at"`
}
