package memory

import (
	"sort"

	"github.com/pampazon/wms-api/internal/domain"
	"github.com/pampazon/wms-api/internal/domain/entity"
	"github.com/pampazon/wms-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo repos de productos sobre el store en memoria.
type ProductoRepo struct {
	store *Store
	tx    bool
}

// NewProductoRepository construye el repo ligado al store.
func NewProductoRepository(store *Store) *ProductoRepo {
	return &ProductoRepo{store: store}
}

func (r *ProductoRepo) lock() func() {
	if r.tx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *ProductoRepo) Create(producto *entity.Producto) error {
	defer r.lock()()
	for _, p := range r.store.productos {
		if p.Codigo == producto.Codigo {
			return domain.ErrDuplicate
		}
	}
	r.store.productos[producto.ID] = copyProducto(producto)
	return nil
}

func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	defer r.lock()()
	p, ok := r.store.productos[id]
	if !ok {
		return nil, nil
	}
	return copyProducto(p), nil
}

func (r *ProductoRepo) GetByCodigo(codigo string) (*entity.Producto, error) {
	defer r.lock()()
	for _, p := range r.store.productos {
		if p.Codigo == codigo {
			return copyProducto(p), nil
		}
	}
	return nil, nil
}

func (r *ProductoRepo) Update(producto *entity.Producto) error {
	defer r.lock()()
	if _, ok := r.store.productos[producto.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.productos[producto.ID] = copyProducto(producto)
	return nil
}

func (r *ProductoRepo) List() ([]*entity.Producto, error) {
	defer r.lock()()
	out := make([]*entity.Producto, 0, len(r.store.productos))
	for _, p := range r.store.productos {
		out = append(out, copyProducto(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Codigo < out[j].Codigo })
	return out, nil
}

func (r *ProductoRepo) Delete(id string) error {
	defer r.lock()()
	delete(r.store.productos, id)
	return nil
}
