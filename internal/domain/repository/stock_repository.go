package repository

import "github.com/pampazon/wms-api/internal/domain/entity"

// StockRepository define el puerto de persistencia para StockItem (DIP).
// Get* devuelven nil (sin error) cuando no existe registro para el par.
type StockRepository interface {
	Get(productoID, posicionID string) (*entity.StockItem, error)
	// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE)
	// para serializar débitos/créditos concurrentes sobre el mismo par.
	GetForUpdate(productoID, posicionID string) (*entity.StockItem, error)
	// Insert crea el registro del par. Devuelve ErrDuplicate si el par ya
	// tiene registro.
	Insert(item *entity.StockItem) error
	Upsert(item *entity.StockItem) error
	// Add acredita item.Cantidad al par (producto, posición): inserta el
	// registro o incrementa la cantidad existente en forma atómica, de modo
	// que dos créditos concurrentes sobre un par sin registro previo nunca
	// se pisen.
	Add(item *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	List() ([]*entity.StockItem, error)
	ExistsByProducto(productoID string) (bool, error)
	// HasStockEnPosicion indica si la posición tiene algún item con cantidad > 0.
	HasStockEnPosicion(posicionID string) (bool, error)
	Delete(id string) error
}
