package memory

import (
	"sort"

	"github.com/pampazon/wms-api/internal/domain"
	"github.com/pampazon/wms-api/internal/domain/entity"
	"github.com/pampazon/wms-api/internal/domain/repository"
)

var _ repository.PosicionRepository = (*PosicionRepo)(nil)

// PosicionRepo repos de posiciones sobre el store en memoria.
type PosicionRepo struct {
	store *Store
	tx    bool
}

// NewPosicionRepository construye el repo ligado al store.
func NewPosicionRepository(store *Store) *PosicionRepo {
	return &PosicionRepo{store: store}
}

func (r *PosicionRepo) lock() func() {
	if r.tx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *PosicionRepo) Create(posicion *entity.Posicion) error {
	defer r.lock()()
	for _, p := range r.store.posiciones {
		if p.Pasillo == posicion.Pasillo && p.Seccion == posicion.Seccion &&
			p.Estanteria == posicion.Estanteria && p.Nivel == posicion.Nivel {
			return domain.ErrDuplicate
		}
	}
	r.store.posiciones[posicion.ID] = copyPosicion(posicion)
	return nil
}

func (r *PosicionRepo) GetByID(id string) (*entity.Posicion, error) {
	defer r.lock()()
	p, ok := r.store.posiciones[id]
	if !ok {
		return nil, nil
	}
	return copyPosicion(p), nil
}

func (r *PosicionRepo) GetByUbicacion(pasillo string, seccion, estanteria, nivel int) (*entity.Posicion, error) {
	defer r.lock()()
	for _, p := range r.store.posiciones {
		if p.Pasillo == pasillo && p.Seccion == seccion && p.Estanteria == estanteria && p.Nivel == nivel {
			return copyPosicion(p), nil
		}
	}
	return nil, nil
}

func (r *PosicionRepo) List() ([]*entity.Posicion, error) {
	defer r.lock()()
	out := make([]*entity.Posicion, 0, len(r.store.posiciones))
	for _, p := range r.store.posiciones {
		out = append(out, copyPosicion(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ubicacion() < out[j].Ubicacion() })
	return out, nil
}

func (r *PosicionRepo) CountByCliente(clienteID string) (int, error) {
	defer r.lock()()
	count := 0
	for _, p := range r.store.posiciones {
		if p.ClienteID == clienteID {
			count++
		}
	}
	return count, nil
}

func (r *PosicionRepo) Delete(id string) error {
	defer r.lock()()
	delete(r.store.posiciones, id)
	return nil
}
