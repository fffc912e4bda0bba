package entity

import (
	"fmt"
	"time"
)

// Posicion es una ubicación física del depósito identificada por la
// combinación única (pasillo, sección, estantería, nivel). Cada posición
// está alquilada por exactamente un cliente.
type Posicion struct {
	ID         string
	Pasillo    string // letra A-Z
	Seccion    int
	Estanteria int
	Nivel      int
	ClienteID  string
	CreatedAt  time.Time
}

// Ubicacion devuelve la etiqueta legible de la posición, ej. "A.1.2.3".
func (p Posicion) Ubicacion() string {
	return fmt.Sprintf("%s.%d.%d.%d", p.Pasillo, p.Seccion, p.Estanteria, p.Nivel)
}
