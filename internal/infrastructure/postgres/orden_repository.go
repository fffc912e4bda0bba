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

var _ repository.OrdenRepository = (*OrdenRepo)(nil)

// OrdenRepo implementación del puerto OrdenRepository sobre PostgreSQL (usable con pool o tx).
type OrdenRepo struct {
	q Querier
}

// NewOrdenRepository construye el adaptador de persistencia para órdenes. Pasar pool o tx (Querier).
func NewOrdenRepository(q Querier) *OrdenRepo {
	return &OrdenRepo{q: q}
}

const ordenColumns = `id, numero, cliente_id, nombre_destinatario, direccion_destinatario, fecha, estado, despacho_id`

// Create persiste la orden con todos sus items.
func (r *OrdenRepo) Create(orden *entity.Orden) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO ordenes (id, numero, cliente_id, nombre_destinatario, direccion_destinatario, fecha, estado, despacho_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		orden.ID, orden.Numero, orden.ClienteID, orden.NombreDestinatario, orden.DireccionDestinatario,
		orden.Fecha, orden.Estado, orden.DespachoID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orden: %w", err)
	}
	for _, item := range orden.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO orden_items (id, orden_id, producto_id, cantidad_solicitada, posicion_id)
			VALUES ($1, $2, $3, $4, $5)`,
			item.ID, item.OrdenID, item.ProductoID, item.CantidadSolicitada, item.PosicionID,
		)
		if err != nil {
			return fmt.Errorf("insert orden item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus items.
func (r *OrdenRepo) GetByID(id string) (*entity.Orden, error) {
	return r.getOne(`id = $1`, id, false)
}

// GetByIDForUpdate obtiene la orden bloqueando su fila.
func (r *OrdenRepo) GetByIDForUpdate(id string) (*entity.Orden, error) {
	return r.getOne(`id = $1`, id, true)
}

// GetByNumero obtiene una orden por número único.
func (r *OrdenRepo) GetByNumero(numero string) (*entity.Orden, error) {
	return r.getOne(`numero = $1`, numero, false)
}

func (r *OrdenRepo) getOne(where string, arg any, forUpdate bool) (*entity.Orden, error) {
	ctx := context.Background()
	query := `SELECT ` + ordenColumns + ` FROM ordenes WHERE ` + where
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.Orden
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&o.ID, &o.Numero, &o.ClienteID, &o.NombreDestinatario, &o.DireccionDestinatario,
		&o.Fecha, &o.Estado, &o.DespachoID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden: %w", err)
	}
	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrdenRepo) loadItems(ctx context.Context, ordenID string) ([]entity.OrdenItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, orden_id, producto_id, cantidad_solicitada, posicion_id
		FROM orden_items WHERE orden_id = $1`, ordenID)
	if err != nil {
		return nil, fmt.Errorf("list orden items: %w", err)
	}
	defer rows.Close()
	var items []entity.OrdenItem
	for rows.Next() {
		var it entity.OrdenItem
		if err := rows.Scan(&it.ID, &it.OrdenID, &it.ProductoID, &it.CantidadSolicitada, &it.PosicionID); err != nil {
			return nil, fmt.Errorf("scan orden item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateEstado cambia el estado de la orden.
func (r *OrdenRepo) UpdateEstado(id string, estado entity.EstadoOrden) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE ordenes SET estado = $2 WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado orden: %w", err)
	}
	return nil
}

// UpdateItemEgreso registra la posición de retiro de un item.
func (r *OrdenRepo) UpdateItemEgreso(itemID string, posicionID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orden_items SET posicion_id = $2 WHERE id = $1`, itemID, posicionID)
	if err != nil {
		return fmt.Errorf("update item orden: %w", err)
	}
	return nil
}

// AsignarDespacho vincula la orden a un despacho.
func (r *OrdenRepo) AsignarDespacho(ordenID, despachoID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE ordenes SET despacho_id = $2 WHERE id = $1`, ordenID, despachoID)
	if err != nil {
		return fmt.Errorf("asignar despacho a orden: %w", err)
	}
	return nil
}

// ListByDespacho lista las órdenes asociadas a un despacho, con items.
func (r *OrdenRepo) ListByDespacho(despachoID string) ([]*entity.Orden, error) {
	return r.list(`WHERE despacho_id = $1`, despachoID)
}

// List lista todas las órdenes con sus items, más recientes primero.
func (r *OrdenRepo) List() ([]*entity.Orden, error) {
	return r.list(``)
}

func (r *OrdenRepo) list(where string, args ...any) ([]*entity.Orden, error) {
	ctx := context.Background()
	query := `SELECT ` + ordenColumns + ` FROM ordenes ` + where + ` ORDER BY fecha DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ordenes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Orden
	for rows.Next() {
		var o entity.Orden
		if err := rows.Scan(
			&o.ID, &o.Numero, &o.ClienteID, &o.NombreDestinatario, &o.DireccionDestinatario,
			&o.Fecha, &o.Estado, &o.DespachoID,
		); err != nil {
			return nil, fmt.Errorf("scan orden: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		items, err := r.loadItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return list, nil
}

// ExistsActivaByCliente indica si el cliente tiene órdenes no despachadas.
func (r *OrdenRepo) ExistsActivaByCliente(clienteID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM ordenes WHERE cliente_id = $1 AND estado <> $2)`,
		clienteID, entity.OrdenDespachada,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists orden activa: %w", err)
	}
	return exists, nil
}

// ExistsItemByProducto indica si alguna orden referencia al producto.
func (r *OrdenRepo) ExistsItemByProducto(productoID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM orden_items WHERE producto_id = $1)`, productoID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists orden item por producto: %w", err)
	}
	return exists, nil
}
