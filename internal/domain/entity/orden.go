package entity

import "time"

// Estados de la orden de egreso. Transición lineal: Pendiente → Preparada → Despachada.
type EstadoOrden string

const (
	OrdenPendiente  EstadoOrden = "PENDIENTE"
	OrdenPreparada  EstadoOrden = "PREPARADA"
	OrdenDespachada EstadoOrden = "DESPACHADA"
)

// Orden es un pedido de egreso de mercadería de un cliente. Al prepararse
// debita stock; al despacharse (vía despacho) termina su ciclo de vida.
type Orden struct {
	ID                    string
	Numero                string // único
	ClienteID             string
	NombreDestinatario    string
	DireccionDestinatario string
	Fecha                 time.Time
	Estado                EstadoOrden
	DespachoID            *string
	Items                 []OrdenItem
}

// OrdenItem es una línea de la orden. CantidadSolicitada queda fija al alta;
// PosicionID (de dónde se retiró) se completa al preparar.
type OrdenItem struct {
	ID                 string
	OrdenID            string
	ProductoID         string
	CantidadSolicitada int
	PosicionID         *string
}
