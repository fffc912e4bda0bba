package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductoRequest entrada para dar de alta un producto.
type CreateProductoRequest struct {
	Codigo        string          `json:"codigo" validate:"required,min=1,max=50"`
	Descripcion   string          `json:"descripcion" validate:"required,min=1,max=200"`
	AltoCm        decimal.Decimal `json:"alto_cm"`
	AnchoCm       decimal.Decimal `json:"ancho_cm"`
	ProfundidadCm decimal.Decimal `json:"profundidad_cm"`
}

// UpdateProductoRequest entrada para actualizar un producto. El código es inmutable.
type UpdateProductoRequest struct {
	Descripcion   *string          `json:"descripcion" validate:"omitempty,min=1,max=200"`
	AltoCm        *decimal.Decimal `json:"alto_cm"`
	AnchoCm       *decimal.Decimal `json:"ancho_cm"`
	ProfundidadCm *decimal.Decimal `json:"profundidad_cm"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID            string          `json:"id"`
	Codigo        string          `json:"codigo"`
	Descripcion   string          `json:"descripcion"`
	AltoCm        decimal.Decimal `json:"alto_cm"`
	AnchoCm       decimal.Decimal `json:"ancho_cm"`
	ProfundidadCm decimal.Decimal `json:"profundidad_cm"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
