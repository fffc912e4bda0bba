package repository

import "github.com/pampazon/wms-api/internal/domain/entity"

// OrdenRepository define el puerto de persistencia para Orden y sus items (DIP).
type OrdenRepository interface {
	// Create persiste la orden con todos sus items.
	Create(orden *entity.Orden) error
	GetByID(id string) (*entity.Orden, error)
	// GetByIDForUpdate obtiene la orden bloqueando su fila, para serializar
	// preparaciones/asignaciones concurrentes sobre el mismo documento.
	GetByIDForUpdate(id string) (*entity.Orden, error)
	GetByNumero(numero string) (*entity.Orden, error)
	UpdateEstado(id string, estado entity.EstadoOrden) error
	// UpdateItemEgreso registra la posición de retiro de un item.
	UpdateItemEgreso(itemID string, posicionID string) error
	AsignarDespacho(ordenID, despachoID string) error
	ListByDespacho(despachoID string) ([]*entity.Orden, error)
	List() ([]*entity.Orden, error)
	ExistsActivaByCliente(clienteID string) (bool, error)
	ExistsItemByProducto(productoID string) (bool, error)
}
