package repository

import "github.com/pampazon/wms-api/internal/domain/entity"

// RemitoRepository define el puerto de persistencia para Remito y sus items (DIP).
type RemitoRepository interface {
	// Create persiste el remito con todos sus items.
	Create(remito *entity.Remito) error
	GetByID(id string) (*entity.Remito, error)
	// GetByIDForUpdate obtiene el remito bloqueando su fila, para serializar
	// ingresos/rechazos concurrentes sobre el mismo documento.
	GetByIDForUpdate(id string) (*entity.Remito, error)
	UpdateEstado(id string, estado entity.EstadoRemito) error
	// UpdateItemIngreso registra cantidad ingresada y posición de un item.
	UpdateItemIngreso(itemID string, cantidad int, posicionID string) error
	List() ([]*entity.Remito, error)
	ExistsPendienteByCliente(clienteID string) (bool, error)
	ExistsItemByProducto(productoID string) (bool, error)
}
