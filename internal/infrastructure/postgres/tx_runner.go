package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pampazon/wms-api/internal/application/despacho"
	"github.com/pampazon/wms-api/internal/application/egreso"
	"github.com/pampazon/wms-api/internal/application/ingreso"
	"github.com/pampazon/wms-api/internal/application/usecase"
	"github.com/pampazon/wms-api/internal/domain/repository"
)

// Ensure TxRunner implements los puertos transaccionales de cada protocolo.
var _ ingreso.TxRunner = (*TxRunner)(nil)
var _ egreso.TxRunner = (*TxRunner)(nil)
var _ despacho.TxRunner = (*TxRunner)(nil)
var _ usecase.BajaTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunIngreso inicia una transacción con los repos del protocolo de ingreso
// (remitos) y hace Commit o Rollback según el resultado del callback.
func (r *TxRunner) RunIngreso(ctx context.Context, fn func(
	remitoRepo repository.RemitoRepository,
	posicionRepo repository.PosicionRepository,
	stockRepo repository.StockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRemitoRepository(tx), NewPosicionRepository(tx), NewStockRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunEgreso inicia una transacción con los repos del protocolo de egreso (órdenes).
func (r *TxRunner) RunEgreso(ctx context.Context, fn func(
	ordenRepo repository.OrdenRepository,
	posicionRepo repository.PosicionRepository,
	stockRepo repository.StockRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrdenRepository(tx), NewPosicionRepository(tx), NewStockRepository(tx), NewProductoRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDespacho inicia una transacción con los repos del protocolo de despacho.
func (r *TxRunner) RunDespacho(ctx context.Context, fn func(
	despachoRepo repository.DespachoRepository,
	ordenRepo repository.OrdenRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewDespachoRepository(tx), NewOrdenRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBaja inicia una transacción para bajas de catálogo: la condición que
// bloquea la eliminación se verifica dentro de la misma transacción que el
// DELETE, evitando la carrera entre chequeo y borrado.
func (r *TxRunner) RunBaja(ctx context.Context, fn func(
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	posicionRepo repository.PosicionRepository,
	stockRepo repository.StockRepository,
	remitoRepo repository.RemitoRepository,
	ordenRepo repository.OrdenRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewClienteRepository(tx), NewProductoRepository(tx), NewPosicionRepository(tx),
		NewStockRepository(tx), NewRemitoRepository(tx), NewOrdenRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
