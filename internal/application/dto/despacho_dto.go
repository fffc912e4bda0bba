package dto

import "time"

// CreateDespachoRequest entrada para iniciar un despacho.
type CreateDespachoRequest struct {
	Numero            string `json:"numero" validate:"required,min=1,max=50"`
	CUITTransportista string `json:"cuit_transportista" validate:"required,len=11,numeric"`
}

// AgregarOrdenRequest entrada para asociar una orden preparada al despacho.
type AgregarOrdenRequest struct {
	NumeroOrden string `json:"numero_orden" validate:"required"`
}

// DespachoResponse salida de un despacho con los números de las órdenes asociadas.
type DespachoResponse struct {
	ID                string    `json:"id"`
	Numero            string    `json:"numero"`
	CUITTransportista string    `json:"cuit_transportista"`
	Fecha             time.Time `json:"fecha"`
	Estado            string    `json:"estado"`
	Ordenes           []string  `json:"ordenes"`
}
