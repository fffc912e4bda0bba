package dto

import "time"

// CreateClienteRequest entrada para dar de alta un cliente.
type CreateClienteRequest struct {
	CUIT        string `json:"cuit" validate:"required,len=11,numeric"`
	RazonSocial string `json:"razon_social" validate:"required,min=1,max=100"`
}

// UpdateClienteRequest entrada para actualizar un cliente. El CUIT es inmutable.
type UpdateClienteRequest struct {
	RazonSocial string `json:"razon_social" validate:"required,min=1,max=100"`
}

// ClienteResponse salida de un cliente.
type ClienteResponse struct {
	ID          string    `json:"id"`
	CUIT        string    `json:"cuit"`
	RazonSocial string    `json:"razon_social"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
