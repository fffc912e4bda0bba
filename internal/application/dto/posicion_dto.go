package dto

import "time"

// CreatePosicionRequest entrada para dar de alta una posición.
type CreatePosicionRequest struct {
	Pasillo    string `json:"pasillo" validate:"required,len=1,uppercase,alpha"`
	Seccion    int    `json:"seccion" validate:"required,min=1"`
	Estanteria int    `json:"estanteria" validate:"required,min=1"`
	Nivel      int    `json:"nivel" validate:"required,min=1"`
	ClienteID  string `json:"cliente_id" validate:"required,uuid"`
}

// PosicionResponse salida de una posición.
type PosicionResponse struct {
	ID         string    `json:"id"`
	Pasillo    string    `json:"pasillo"`
	Seccion    int       `json:"seccion"`
	Estanteria int       `json:"estanteria"`
	Nivel      int       `json:"nivel"`
	Ubicacion  string    `json:"ubicacion"`
	ClienteID  string    `json:"cliente_id"`
	CreatedAt  time.Time `json:"created_at"`
}
