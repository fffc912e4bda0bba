package memory

import (
	"sort"

	"github.com/pampazon/wms-api/internal/domain"
	"github.com/pampazon/wms-api/internal/domain/entity"
	"github.com/pampazon/wms-api/internal/domain/repository"
)

var _ repository.RemitoRepository = (*RemitoRepo)(nil)

// RemitoRepo repos de remitos sobre el store en memoria.
type RemitoRepo struct {
	store *Store
	tx    bool
}

// NewRemitoRepository construye el repo ligado al store.
func NewRemitoRepository(store *Store) *RemitoRepo {
	return &RemitoRepo{store: store}
}

func (r *RemitoRepo) lock() func() {
	if r.tx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *RemitoRepo) Create(remito *entity.Remito) error {
	defer r.lock()()
	r.store.remitos[remito.ID] = copyRemito(remito)
	return nil
}

func (r *RemitoRepo) GetByID(id string) (*entity.Remito, error) {
	defer r.lock()()
	rem, ok := r.store.remitos[id]
	if !ok {
		return nil, nil
	}
	return copyRemito(rem), nil
}

func (r *RemitoRepo) GetByIDForUpdate(id string) (*entity.Remito, error) {
	return r.GetByID(id)
}

func (r *RemitoRepo) UpdateEstado(id string, estado entity.EstadoRemito) error {
	defer r.lock()()
	rem, ok := r.store.remitos[id]
	if !ok {
		return domain.ErrNotFound
	}
	rem.Estado = estado
	return nil
}

func (r *RemitoRepo) UpdateItemIngreso(itemID string, cantidad int, posicionID string) error {
	defer r.lock()()
	for _, rem := range r.store.remitos {
		for i := range rem.Items {
			if rem.Items[i].ID == itemID {
				c := cantidad
				p := posicionID
				rem.Items[i].CantidadIngresada = &c
				rem.Items[i].PosicionID = &p
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *RemitoRepo) List() ([]*entity.Remito, error) {
	defer r.lock()()
	out := make([]*entity.Remito, 0, len(r.store.remitos))
	for _, rem := range r.store.remitos {
		out = append(out, copyRemito(rem))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, nil
}

func (r *RemitoRepo) ExistsPendienteByCliente(clienteID string) (bool, error) {
	defer r.lock()()
	for _, rem := range r.store.remitos {
		if rem.ClienteID == clienteID && rem.Estado == entity.RemitoPendienteDeIngreso {
			return true, nil
		}
	}
	return false, nil
}

func (r *RemitoRepo) ExistsItemByProducto(productoID string) (bool, error) {
	defer r.lock()()
	for _, rem := range r.store.remitos {
		for _, it := range rem.Items {
			if it.ProductoID == productoID {
				return true, nil
			}
		}
	}
	return false, nil
}
