package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pampazon/wms-api/internal/domain/entity"
	"github.com/pampazon/wms-api/internal/domain/repository"
)

var _ repository.RemitoRepository = (*RemitoRepo)(nil)

// RemitoRepo implementación del puerto RemitoRepository sobre PostgreSQL (usable con pool o tx).
type RemitoRepo struct {
	q Querier
}

// NewRemitoRepository construye el adaptador de persistencia para remitos. Pasar pool o tx (Querier).
func NewRemitoRepository(q Querier) *RemitoRepo {
	return &RemitoRepo{q: q}
}

// Create persiste el remito con todos sus items.
func (r *RemitoRepo) Create(remito *entity.Remito) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO remitos (id, cliente_id, cuit_transportista, fecha, estado)
		VALUES ($1, $2, $3, $4, $5)`,
		remito.ID, remito.ClienteID, remito.CUITTransportista, remito.Fecha, remito.Estado,
	)
	if err != nil {
		return fmt.Errorf("insert remito: %w", err)
	}
	for _, item := range remito.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO remito_items (id, remito_id, producto_id, cantidad_declarada, cantidad_ingresada, posicion_id)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.RemitoID, item.ProductoID, item.CantidadDeclarada, item.CantidadIngresada, item.PosicionID,
		)
		if err != nil {
			return fmt.Errorf("insert remito item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un remito con sus items.
func (r *RemitoRepo) GetByID(id string) (*entity.Remito, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene el remito bloqueando su fila. Los items no se
// bloquean: sólo se mutan bajo el lock del documento padre.
func (r *RemitoRepo) GetByIDForUpdate(id string) (*entity.Remito, error) {
	return r.getByID(id, true)
}

func (r *RemitoRepo) getByID(id string, forUpdate bool) (*entity.Remito, error) {
	ctx := context.Background()
	query := `SELECT id, cliente_id, cuit_transportista, fecha, estado FROM remitos WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var rem entity.Remito
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rem.ID, &rem.ClienteID, &rem.CUITTransportista, &rem.Fecha, &rem.Estado,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get remito: %w", err)
	}
	items, err := r.loadItems(ctx, rem.ID)
	if err != nil {
		return nil, err
	}
	rem.Items = items
	return &rem, nil
}

func (r *RemitoRepo) loadItems(ctx context.Context, remitoID string) ([]entity.RemitoItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, remito_id, producto_id, cantidad_declarada, cantidad_ingresada, posicion_id
		FROM remito_items WHERE remito_id = $1`, remitoID)
	if err != nil {
		return nil, fmt.Errorf("list remito items: %w", err)
	}
	defer rows.Close()
	var items []entity.RemitoItem
	for rows.Next() {
		var it entity.RemitoItem
		if err := rows.Scan(&it.ID, &it.RemitoID, &it.ProductoID, &it.CantidadDeclarada, &it.CantidadIngresada, &it.PosicionID); err != nil {
			return nil, fmt.Errorf("scan remito item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateEstado cambia el estado del remito.
func (r *RemitoRepo) UpdateEstado(id string, estado entity.EstadoRemito) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE remitos SET estado = $2 WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado remito: %w", err)
	}
	return nil
}

// UpdateItemIngreso registra cantidad ingresada y posición de un item.
func (r *RemitoRepo) UpdateItemIngreso(itemID string, cantidad int, posicionID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE remito_items SET cantidad_ingresada = $2, posicion_id = $3 WHERE id = $1`,
		itemID, cantidad, posicionID)
	if err != nil {
		return fmt.Errorf("update item remito: %w", err)
	}
	return nil
}

// List lista todos los remitos con sus items, más recientes primero.
func (r *RemitoRepo) List() ([]*entity.Remito, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, `
		SELECT id, cliente_id, cuit_transportista, fecha, estado
		FROM remitos ORDER BY fecha DESC`)
	if err != nil {
		return nil, fmt.Errorf("list remitos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Remito
	for rows.Next() {
		var rem entity.Remito
		if err := rows.Scan(&rem.ID, &rem.ClienteID, &rem.CUITTransportista, &rem.Fecha, &rem.Estado); err != nil {
			return nil, fmt.Errorf("scan remito: %w", err)
		}
		list = append(list, &rem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rem := range list {
		items, err := r.loadItems(ctx, rem.ID)
		if err != nil {
			return nil, err
		}
		rem.Items = items
	}
	return list, nil
}

// ExistsPendienteByCliente indica si el cliente tiene remitos pendientes de ingreso.
func (r *RemitoRepo) ExistsPendienteByCliente(clienteID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM remitos WHERE cliente_id = $1 AND estado = $2)`,
		clienteID, entity.RemitoPendienteDeIngreso,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists remito pendiente: %w", err)
	}
	return exists, nil
}

// ExistsItemByProducto indica si algún remito referencia al producto.
func (r *RemitoRepo) ExistsItemByProducto(productoID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM remito_items WHERE producto_id = $1)`, productoID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists remito item por producto: %w", err)
	}
	return exists, nil
}
