package repository

import "github.com/pampazon/wms-api/internal/domain/entity"

// DespachoRepository define el puerto de persistencia para Despacho (DIP).
type DespachoRepository interface {
	Create(despacho *entity.Despacho) error
	GetByID(id string) (*entity.Despacho, error)
	// GetByIDForUpdate obtiene el despacho bloqueando su fila, para serializar
	// agregados de órdenes y finalización concurrentes.
	GetByIDForUpdate(id string) (*entity.Despacho, error)
	GetByNumero(numero string) (*entity.Despacho, error)
	UpdateEstado(id string, estado entity.EstadoDespacho) error
	List() ([]*entity.Despacho, error)
}
