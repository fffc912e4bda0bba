package memory

import (
	"sort"

	"github.com/pampazon/wms-api/internal/domain"
	"github.com/pampazon/wms-api/internal/domain/entity"
	"github.com/pampazon/wms-api/internal/domain/repository"
)

var _ repository.OrdenRepository = (*OrdenRepo)(nil)

// OrdenRepo repos de órdenes sobre el store en memoria.
type OrdenRepo struct {
	store *Store
	tx    bool
}

// NewOrdenRepository construye el repo ligado al store.
func NewOrdenRepository(store *Store) *OrdenRepo {
	return &OrdenRepo{store: store}
}

func (r *OrdenRepo) lock() func() {
	if r.tx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *OrdenRepo) Create(orden *entity.Orden) error {
	defer r.lock()()
	for _, o := range r.store.ordenes {
		if o.Numero == orden.Numero {
			return domain.ErrDuplicate
		}
	}
	r.store.ordenes[orden.ID] = copyOrden(orden)
	return nil
}

func (r *OrdenRepo) GetByID(id string) (*entity.Orden, error) {
	defer r.lock()()
	o, ok := r.store.ordenes[id]
	if !ok {
		return nil, nil
	}
	return copyOrden(o), nil
}

func (r *OrdenRepo) GetByIDForUpdate(id string) (*entity.Orden, error) {
	return r.GetByID(id)
}

func (r *OrdenRepo) GetByNumero(numero string) (*entity.Orden, error) {
	defer r.lock()()
	for _, o := range r.store.ordenes {
		if o.Numero == numero {
			return copyOrden(o), nil
		}
	}
	return nil, nil
}

func (r *OrdenRepo) UpdateEstado(id string, estado entity.EstadoOrden) error {
	defer r.lock()()
	o, ok := r.store.ordenes[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Estado = estado
	return nil
}

func (r *OrdenRepo) UpdateItemEgreso(itemID string, posicionID string) error {
	defer r.lock()()
	for _, o := range r.store.ordenes {
		for i := range o.Items {
			if o.Items[i].ID == itemID {
				p := posicionID
				o.Items[i].PosicionID = &p
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *OrdenRepo) AsignarDespacho(ordenID, despachoID string) error {
	defer r.lock()()
	o, ok := r.store.ordenes[ordenID]
	if !ok {
		return domain.ErrNotFound
	}
	d := despachoID
	o.DespachoID = &d
	return nil
}

func (r *OrdenRepo) ListByDespacho(despachoID string) ([]*entity.Orden, error) {
	defer r.lock()()
	var out []*entity.Orden
	for _, o := range r.store.ordenes {
		if o.DespachoID != nil && *o.DespachoID == despachoID {
			out = append(out, copyOrden(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out, nil
}

func (r *OrdenRepo) List() ([]*entity.Orden, error) {
	defer r.lock()()
	out := make([]*entity.Orden, 0, len(r.store.ordenes))
	for _, o := range r.store.ordenes {
		out = append(out, copyOrden(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, nil
}

func (r *OrdenRepo) ExistsActivaByCliente(clienteID string) (bool, error) {
	defer r.lock()()
	for _, o := range r.store.ordenes {
		if o.ClienteID == clienteID && o.Estado != entity.OrdenDespachada {
			return true, nil
		}
	}
	return false, nil
}

func (r *OrdenRepo) ExistsItemByProducto(productoID string) (bool, error) {
	defer r.lock()()
	for _, o := range r.store.ordenes {
		for _, it := range o.Items {
			if it.ProductoID == productoID {
				return true, nil
			}
		}
	}
	return false, nil
}
