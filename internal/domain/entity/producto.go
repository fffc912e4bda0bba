package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa una mercadería almacenable. El código es único
// y no se modifica después del alta; las dimensiones se expresan en cm.
type Producto struct {
	ID            string
	Codigo        string
	Descripcion   string
	AltoCm        decimal.Decimal
	AnchoCm       decimal.Decimal
	ProfundidadCm decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
