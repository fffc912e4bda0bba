package entity

import "time"

// Estados del remito. PendienteDeIngreso es el único estado no terminal.
type EstadoRemito string

const (
	RemitoPendienteDeIngreso EstadoRemito = "PENDIENTE_DE_INGRESO"
	RemitoIngresado          EstadoRemito = "INGRESADO"
	RemitoRechazado          EstadoRemito = "RECHAZADO"
)

// Remito es la declaración de un envío entrante de mercadería de un cliente.
// Al ingresarse acredita stock; al rechazarse no toca el stock.
type Remito struct {
	ID                string
	ClienteID         string
	CUITTransportista string
	Fecha             time.Time
	Estado            EstadoRemito
	Items             []RemitoItem
}

// RemitoItem es una línea del remito. CantidadDeclarada queda fija al alta;
// CantidadIngresada y PosicionID se completan recién al ingresar.
type RemitoItem struct {
	ID                string
	RemitoID          string
	ProductoID        string
	CantidadDeclarada int
	CantidadIngresada *int
	PosicionID        *string
}
