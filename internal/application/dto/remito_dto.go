package dto

import "time"

// CreateRemitoRequest entrada para dar de alta un remito pendiente de ingreso.
type CreateRemitoRequest struct {
	ClienteID         string                    `json:"cliente_id" validate:"required,uuid"`
	CUITTransportista string                    `json:"cuit_transportista" validate:"required,len=11,numeric"`
	Items             []CreateRemitoItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateRemitoItemRequest línea declarada del remito.
type CreateRemitoItemRequest struct {
	ProductoID        string `json:"producto_id" validate:"required,uuid"`
	CantidadDeclarada int    `json:"cantidad_declarada" validate:"required,min=1"`
}

// IngresarRemitoRequest confirmación del ingreso físico: una línea confirmada
// por cada línea del remito, con cantidad recibida y posición de guardado.
type IngresarRemitoRequest struct {
	Items []IngresarRemitoItemRequest `json:"items" validate:"required,min=1,dive"`
}

// IngresarRemitoItemRequest confirmación de una línea.
type IngresarRemitoItemRequest struct {
	ItemID            string `json:"item_id" validate:"required,uuid"`
	CantidadIngresada int    `json:"cantidad_ingresada" validate:"required,min=1"`
	PosicionID        string `json:"posicion_id" validate:"required,uuid"`
}

// RemitoResponse salida de un remito con sus líneas.
type RemitoResponse struct {
	ID                string               `json:"id"`
	ClienteID         string               `json:"cliente_id"`
	CUITTransportista string               `json:"cuit_transportista"`
	Fecha             time.Time            `json:"fecha"`
	Estado            string               `json:"estado"`
	Items             []RemitoItemResponse `json:"items"`
}

// RemitoItemResponse línea del remito. CantidadIngresada y PosicionID son
// null hasta el ingreso.
type RemitoItemResponse struct {
	ID                string  `json:"id"`
	ProductoID        string  `json:"producto_id"`
	CantidadDeclarada int     `json:"cantidad_declarada"`
	CantidadIngresada *int    `json:"cantidad_ingresada"`
	PosicionID        *string `json:"posicion_id"`
}
