package memory

import (
	"context"

	"github.com/pampazon/wms-api/internal/application/despacho"
	"github.com/pampazon/wms-api/internal/application/egreso"
	"github.com/pampazon/wms-api/internal/application/ingreso"
	"github.com/pampazon/wms-api/internal/application/usecase"
	"github.com/pampazon/wms-api/internal/domain/repository"
)

var _ ingreso.TxRunner = (*TxRunner)(nil)
var _ egreso.TxRunner = (*TxRunner)(nil)
var _ despacho.TxRunner = (*TxRunner)(nil)
var _ usecase.BajaTxRunner = (*TxRunner)(nil)

// TxRunner serializa los callbacks sobre el lock del store y restaura una
// snapshot si el callback falla, imitando el commit/rollback del adaptador
// de PostgreSQL.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) run(fn func() error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sn := r.store.snapshot()
	if err := fn(); err != nil {
		r.store.restore(sn)
		return err
	}
	return nil
}

func (r *TxRunner) RunIngreso(_ context.Context, fn func(
	remitoRepo repository.RemitoRepository,
	posicionRepo repository.PosicionRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.run(func() error {
		return fn(
			&RemitoRepo{store: r.store, tx: true},
			&PosicionRepo{store: r.store, tx: true},
			&StockRepo{store: r.store, tx: true},
		)
	})
}

func (r *TxRunner) RunEgreso(_ context.Context, fn func(
	ordenRepo repository.OrdenRepository,
	posicionRepo repository.PosicionRepository,
	stockRepo repository.StockRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	return r.run(func() error {
		return fn(
			&OrdenRepo{store: r.store, tx: true},
			&PosicionRepo{store: r.store, tx: true},
			&StockRepo{store: r.store, tx: true},
			&ProductoRepo{store: r.store, tx: true},
		)
	})
}

func (r *TxRunner) RunDespacho(_ context.Context, fn func(
	despachoRepo repository.DespachoRepository,
	ordenRepo repository.OrdenRepository,
) error) error {
	return r.run(func() error {
		return fn(
			&DespachoRepo{store: r.store, tx: true},
			&OrdenRepo{store: r.store, tx: true},
		)
	})
}

func (r *TxRunner) RunBaja(_ context.Context, fn func(
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	posicionRepo repository.PosicionRepository,
	stockRepo repository.StockRepository,
	remitoRepo repository.RemitoRepository,
	ordenRepo repository.OrdenRepository,
) error) error {
	return r.run(func() error {
		return fn(
			&ClienteRepo{store: r.store, tx: true},
			&ProductoRepo{store: r.store, tx: true},
			&PosicionRepo{store: r.store, tx: true},
			&StockRepo{store: r.store, tx: true},
			&RemitoRepo{store: r.store, tx: true},
			&OrdenRepo{store: r.store, tx: true},
		)
	})
}
