package entity

import "time"

// Estados del despacho. Finalizado es terminal.
type EstadoDespacho string

const (
	DespachoIniciado   EstadoDespacho = "INICIADO"
	DespachoFinalizado EstadoDespacho = "FINALIZADO"
)

// Despacho agrupa órdenes preparadas para un envío con un transportista.
// Al finalizar, las órdenes asociadas pasan a Despachada.
type Despacho struct {
	ID                string
	Numero            string // único
	CUITTransportista string
	Fecha             time.Time
	Estado            EstadoDespacho
}
