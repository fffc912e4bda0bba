package memory

import (
	"sort"

	"github.com/pampazon/wms-api/internal/domain"
	"github.com/pampazon/wms-api/internal/domain/entity"
	"github.com/pampazon/wms-api/internal/domain/repository"
)

var _ repository.DespachoRepository = (*DespachoRepo)(nil)

// DespachoRepo repos de despachos sobre el store en memoria.
type DespachoRepo struct {
	store *Store
	tx    bool
}

// NewDespachoRepository construye el repo ligado al store.
func NewDespachoRepository(store *Store) *DespachoRepo {
	return &DespachoRepo{store: store}
}

func (r *DespachoRepo) lock() func() {
	if r.tx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *DespachoRepo) Create(despacho *entity.Despacho) error {
	defer r.lock()()
	for _, d := range r.store.despachos {
		if d.Numero == despacho.Numero {
			return domain.ErrDuplicate
		}
	}
	r.store.despachos[despacho.ID] = copyDespacho(despacho)
	return nil
}

func (r *DespachoRepo) GetByID(id string) (*entity.Despacho, error) {
	defer r.lock()()
	d, ok := r.store.despachos[id]
	if !ok {
		return nil, nil
	}
	return copyDespacho(d), nil
}

func (r *DespachoRepo) GetByIDForUpdate(id string) (*entity.Despacho, error) {
	return r.GetByID(id)
}

func (r *DespachoRepo) GetByNumero(numero string) (*entity.Despacho, error) {
	defer r.lock()()
	for _, d := range r.store.despachos {
		if d.Numero == numero {
			return copyDespacho(d), nil
		}
	}
	return nil, nil
}

func (r *DespachoRepo) UpdateEstado(id string, estado entity.EstadoDespacho) error {
	defer r.lock()()
	d, ok := r.store.despachos[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Estado = estado
	return nil
}

func (r *DespachoRepo) List() ([]*entity.Despacho, error) {
	defer r.lock()()
	out := make([]*entity.Despacho, 0, len(r.store.despachos))
	for _, d := range r.store.despachos {
		out = append(out, copyDespacho(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, nil
}
