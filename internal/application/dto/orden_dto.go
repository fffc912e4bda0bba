package dto

import "time"

// CreateOrdenRequest entrada para dar de alta una orden pendiente.
type CreateOrdenRequest struct {
	Numero                string                   `json:"numero" validate:"required,min=1,max=50"`
	ClienteID             string                   `json:"cliente_id" validate:"required,uuid"`
	NombreDestinatario    string                   `json:"nombre_destinatario" validate:"required,min=1,max=100"`
	DireccionDestinatario string                   `json:"direccion_destinatario" validate:"required,min=1,max=200"`
	Items                 []CreateOrdenItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrdenItemRequest línea solicitada de la orden.
type CreateOrdenItemRequest struct {
	ProductoID         string `json:"producto_id" validate:"required,uuid"`
	CantidadSolicitada int    `json:"cantidad_solicitada" validate:"required,min=1"`
}

// PrepararOrdenRequest confirmación de la preparación: una línea confirmada
// por cada línea de la orden, indicando de qué posición se retira. La
// cantidad a debitar es siempre la solicitada en la línea.
type PrepararOrdenRequest struct {
	Items []PrepararOrdenItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PrepararOrdenItemRequest confirmación de una línea.
type PrepararOrdenItemRequest struct {
	ItemID     string `json:"item_id" validate:"required,uuid"`
	PosicionID string `json:"posicion_id" validate:"required,uuid"`
}

// OrdenResponse salida de una orden con sus líneas.
type OrdenResponse struct {
	ID                    string              `json:"id"`
	Numero                string              `json:"numero"`
	ClienteID             string              `json:"cliente_id"`
	NombreDestinatario    string              `json:"nombre_destinatario"`
	DireccionDestinatario string              `json:"direccion_destinatario"`
	Fecha                 time.Time           `json:"fecha"`
	Estado                string              `json:"estado"`
	DespachoID            *string             `json:"despacho_id"`
	Items                 []OrdenItemResponse `json:"items"`
}

// OrdenItemResponse línea de la orden. PosicionID es null hasta la preparación.
type OrdenItemResponse struct {
	ID                 string  `json:"id"`
	ProductoID         string  `json:"producto_id"`
	CantidadSolicitada int     `json:"cantidad_solicitada"`
	PosicionID         *string `json:"posicion_id"`
}
