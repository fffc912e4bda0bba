package entity

import "time"

// Cliente representa una empresa que alquila posiciones en el depósito.
// El CUIT es único y no se modifica después del alta.
type Cliente struct {
	ID          string
	CUIT        string // 11 dígitos
	RazonSocial string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
