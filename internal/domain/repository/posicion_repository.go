package repository

import "github.com/pampazon/wms-api/internal/domain/entity"

// PosicionRepository define el puerto de persistencia para Posicion (DIP).
type PosicionRepository interface {
	Create(posicion *entity.Posicion) error
	GetByID(id string) (*entity.Posicion, error)
	// GetByUbicacion busca por la combinación única (pasillo, sección, estantería, nivel).
	GetByUbicacion(pasillo string, seccion, estanteria, nivel int) (*entity.Posicion, error)
	List() ([]*entity.Posicion, error)
	CountByCliente(clienteID string) (int, error)
	Delete(id string) error
}
