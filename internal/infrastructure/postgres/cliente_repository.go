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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación del puerto ClienteRepository sobre PostgreSQL (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador de persistencia para clientes. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClienteRepo) Create(cliente *entity.Cliente) error {
	query := `
		INSERT INTO clientes (id, cuit, razon_social, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.CUIT, cliente.RazonSocial, cliente.CreatedAt, cliente.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	return r.getBy(`id = $1`, id)
}

// GetByCUIT obtiene un cliente por CUIT.
func (r *ClienteRepo) GetByCUIT(cuit string) (*entity.Cliente, error) {
	return r.getBy(`cuit = $1`, cuit)
}

func (r *ClienteRepo) getBy(where string, arg any) (*entity.Cliente, error) {
	query := `SELECT id, cuit, razon_social, created_at, updated_at FROM clientes WHERE ` + where
	var c entity.Cliente
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.CUIT, &c.RazonSocial, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// Update actualiza la razón social. El CUIT no se modifica después del alta.
func (r *ClienteRepo) Update(cliente *entity.Cliente) error {
	query := `UPDATE clientes SET razon_social = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, cliente.ID, cliente.RazonSocial, cliente.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// List lista todos los clientes.
func (r *ClienteRepo) List() ([]*entity.Cliente, error) {
	query := `SELECT id, cuit, razon_social, created_at, updated_at FROM clientes ORDER BY razon_social`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(&c.ID, &c.CUIT, &c.RazonSocial, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina un cliente por ID.
func (r *ClienteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrBlockedByReferences
		}
		return fmt.Errorf("delete cliente: %w", err)
	}
	return nil
}
