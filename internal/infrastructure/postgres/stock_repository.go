package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pampazon/wms-api/internal/domain"
	"github.com/pampazon/wms-api/internal/domain/entity"
	"github.com/pampazon/wms-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de persistencia para stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el registro del par (producto, posición). Devuelve nil si no existe.
func (r *StockRepo) Get(productoID, posicionID string) (*entity.StockItem, error) {
	query := `
		SELECT id, producto_id, posicion_id, cantidad, updated_at
		FROM stock_items WHERE producto_id = $1 AND posicion_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productoID, posicionID))
}

// GetForUpdate obtiene el registro del par bloqueando la fila. Los débitos y
// créditos concurrentes sobre el mismo par quedan serializados por el lock.
func (r *StockRepo) GetForUpdate(productoID, posicionID string) (*entity.StockItem, error) {
	query := `
		SELECT id, producto_id, posicion_id, cantidad, updated_at
		FROM stock_items WHERE producto_id = $1 AND posicion_id = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productoID, posicionID))
}

// GetByID obtiene un registro de stock por ID. Devuelve nil si no existe.
func (r *StockRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `
		SELECT id, producto_id, posicion_id, cantidad, updated_at
		FROM stock_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *StockRepo) scanOne(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	err := row.Scan(&s.ID, &s.ProductoID, &s.PosicionID, &s.Cantidad, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Insert crea el registro del par. 23505 sobre el índice único del par se
// traduce a ErrDuplicate.
func (r *StockRepo) Insert(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, producto_id, posicion_id, cantidad, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ProductoID, item.PosicionID, item.Cantidad, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// Add acredita item.Cantidad al par (producto, posición). El incremento se
// resuelve en SQL: si dos transacciones acreditan a la vez un par sin registro
// previo, la segunda espera el insert de la primera y suma sobre su valor en
// lugar de pisarlo.
func (r *StockRepo) Add(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, producto_id, posicion_id, cantidad, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (producto_id, posicion_id)
		DO UPDATE SET cantidad = stock_items.cantidad + EXCLUDED.cantidad, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ProductoID, item.PosicionID, item.Cantidad, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	return nil
}

// Upsert inserta el registro del par o actualiza su cantidad si ya existe.
func (r *StockRepo) Upsert(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, producto_id, posicion_id, cantidad, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (producto_id, posicion_id)
		DO UPDATE SET cantidad = EXCLUDED.cantidad, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ProductoID, item.PosicionID, item.Cantidad, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// List lista todos los registros de stock.
func (r *StockRepo) List() ([]*entity.StockItem, error) {
	query := `
		SELECT id, producto_id, posicion_id, cantidad, updated_at
		FROM stock_items ORDER BY updated_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		var s entity.StockItem
		if err := rows.Scan(&s.ID, &s.ProductoID, &s.PosicionID, &s.Cantidad, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ExistsByProducto indica si hay algún registro de stock del producto.
func (r *StockRepo) ExistsByProducto(productoID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM stock_items WHERE producto_id = $1)`, productoID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists stock por producto: %w", err)
	}
	return exists, nil
}

// HasStockEnPosicion indica si la posición tiene algún item con cantidad > 0.
func (r *StockRepo) HasStockEnPosicion(posicionID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM stock_items WHERE posicion_id = $1 AND cantidad > 0)`, posicionID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists stock en posicion: %w", err)
	}
	return exists, nil
}

// Delete elimina un registro de stock por ID.
func (r *StockRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrBlockedByReferences
		}
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}
