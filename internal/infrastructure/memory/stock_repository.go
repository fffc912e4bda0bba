package memory

import (
	"sort"

	"github.com/pampazon/wms-api/internal/domain"
	"github.com/pampazon/wms-api/internal/domain/entity"
	"github.com/pampazon/wms-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo repos de stock sobre el store en memoria. GetForUpdate es
// equivalente a Get: el aislamiento lo da el lock global del TxRunner.
type StockRepo struct {
	store *Store
	tx    bool
}

// NewStockRepository construye el repo ligado al store.
func NewStockRepository(store *Store) *StockRepo {
	return &StockRepo{store: store}
}

func (r *StockRepo) lock() func() {
	if r.tx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *StockRepo) Get(productoID, posicionID string) (*entity.StockItem, error) {
	defer r.lock()()
	return r.get(productoID, posicionID), nil
}

func (r *StockRepo) GetForUpdate(productoID, posicionID string) (*entity.StockItem, error) {
	defer r.lock()()
	return r.get(productoID, posicionID), nil
}

func (r *StockRepo) get(productoID, posicionID string) *entity.StockItem {
	for _, s := range r.store.stock {
		if s.ProductoID == productoID && s.PosicionID == posicionID {
			return copyStockItem(s)
		}
	}
	return nil
}

func (r *StockRepo) GetByID(id string) (*entity.StockItem, error) {
	defer r.lock()()
	s, ok := r.store.stock[id]
	if !ok {
		return nil, nil
	}
	return copyStockItem(s), nil
}

// Insert crea el registro del par; ErrDuplicate si ya existe.
func (r *StockRepo) Insert(item *entity.StockItem) error {
	defer r.lock()()
	for _, s := range r.store.stock {
		if s.ProductoID == item.ProductoID && s.PosicionID == item.PosicionID {
			return domain.ErrDuplicate
		}
	}
	r.store.stock[item.ID] = copyStockItem(item)
	return nil
}

// Add acredita item.Cantidad al par: inserta o incrementa la cantidad
// existente, como el ON CONFLICT aditivo del adaptador de PostgreSQL.
func (r *StockRepo) Add(item *entity.StockItem) error {
	defer r.lock()()
	for _, s := range r.store.stock {
		if s.ProductoID == item.ProductoID && s.PosicionID == item.PosicionID {
			s.Cantidad += item.Cantidad
			s.UpdatedAt = item.UpdatedAt
			return nil
		}
	}
	r.store.stock[item.ID] = copyStockItem(item)
	return nil
}

// Upsert inserta o actualiza la cantidad del par (producto, posición),
// como el ON CONFLICT del adaptador de PostgreSQL.
func (r *StockRepo) Upsert(item *entity.StockItem) error {
	defer r.lock()()
	for _, s := range r.store.stock {
		if s.ProductoID == item.ProductoID && s.PosicionID == item.PosicionID {
			s.Cantidad = item.Cantidad
			s.UpdatedAt = item.UpdatedAt
			return nil
		}
	}
	r.store.stock[item.ID] = copyStockItem(item)
	return nil
}

func (r *StockRepo) List() ([]*entity.StockItem, error) {
	defer r.lock()()
	out := make([]*entity.StockItem, 0, len(r.store.stock))
	for _, s := range r.store.stock {
		out = append(out, copyStockItem(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *StockRepo) ExistsByProducto(productoID string) (bool, error) {
	defer r.lock()()
	for _, s := range r.store.stock {
		if s.ProductoID == productoID {
			return true, nil
		}
	}
	return false, nil
}

func (r *StockRepo) HasStockEnPosicion(posicionID string) (bool, error) {
	defer r.lock()()
	for _, s := range r.store.stock {
		if s.PosicionID == posicionID && s.Cantidad > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *StockRepo) Delete(id string) error {
	defer r.lock()()
	delete(r.store.stock, id)
	return nil
}
