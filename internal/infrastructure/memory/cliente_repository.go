package memory

import (
	"sort"

	"github.com/pampazon/wms-api/internal/domain"
	"github.com/pampazon/wms-api/internal/domain/entity"
	"github.com/pampazon/wms-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo repos de clientes sobre el store en memoria. Con tx en true
// asume que el TxRunner ya tiene el lock del store.
type ClienteRepo struct {
	store *Store
	tx    bool
}

// NewClienteRepository construye el repo ligado al store.
func NewClienteRepository(store *Store) *ClienteRepo {
	return &ClienteRepo{store: store}
}

func (r *ClienteRepo) lock() func() {
	if r.tx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *ClienteRepo) Create(cliente *entity.Cliente) error {
	defer r.lock()()
	for _, c := range r.store.clientes {
		if c.CUIT == cliente.CUIT {
			return domain.ErrDuplicate
		}
	}
	r.store.clientes[cliente.ID] = copyCliente(cliente)
	return nil
}

func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	defer r.lock()()
	c, ok := r.store.clientes[id]
	if !ok {
		return nil, nil
	}
	return copyCliente(c), nil
}

func (r *ClienteRepo) GetByCUIT(cuit string) (*entity.Cliente, error) {
	defer r.lock()()
	for _, c := range r.store.clientes {
		if c.CUIT == cuit {
			return copyCliente(c), nil
		}
	}
	return nil, nil
}

func (r *ClienteRepo) Update(cliente *entity.Cliente) error {
	defer r.lock()()
	if _, ok := r.store.clientes[cliente.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.clientes[cliente.ID] = copyCliente(cliente)
	return nil
}

func (r *ClienteRepo) List() ([]*entity.Cliente, error) {
	defer r.lock()()
	out := make([]*entity.Cliente, 0, len(r.store.clientes))
	for _, c := range r.store.clientes {
		out = append(out, copyCliente(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RazonSocial < out[j].RazonSocial })
	return out, nil
}

func (r *ClienteRepo) Delete(id string) error {
	defer r.lock()()
	delete(r.store.clientes, id)
	return nil
}
