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

var _ repository.DespachoRepository = (*DespachoRepo)(nil)

// DespachoRepo implementación del puerto DespachoRepository sobre PostgreSQL (usable con pool o tx).
type DespachoRepo struct {
	q Querier
}

// NewDespachoRepository construye el adaptador de persistencia para despachos. Pasar pool o tx (Querier).
func NewDespachoRepository(q Querier) *DespachoRepo {
	return &DespachoRepo{q: q}
}

// Create persiste un nuevo despacho.
func (r *DespachoRepo) Create(despacho *entity.Despacho) error {
	query := `
		INSERT INTO despachos (id, numero, cuit_transportista, fecha, estado)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		despacho.ID, despacho.Numero, despacho.CUITTransportista, despacho.Fecha, despacho.Estado,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert despacho: %w", err)
	}
	return nil
}

// GetByID obtiene un despacho por ID.
func (r *DespachoRepo) GetByID(id string) (*entity.Despacho, error) {
	return r.getOne(`id = $1`, id, false)
}

// GetByIDForUpdate obtiene el despacho bloqueando su fila.
func (r *DespachoRepo) GetByIDForUpdate(id string) (*entity.Despacho, error) {
	return r.getOne(`id = $1`, id, true)
}

// GetByNumero obtiene un despacho por número único.
func (r *DespachoRepo) GetByNumero(numero string) (*entity.Despacho, error) {
	return r.getOne(`numero = $1`, numero, false)
}

func (r *DespachoRepo) getOne(where string, arg any, forUpdate bool) (*entity.Despacho, error) {
	query := `SELECT id, numero, cuit_transportista, fecha, estado FROM despachos WHERE ` + where
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var d entity.Despacho
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&d.ID, &d.Numero, &d.CUITTransportista, &d.Fecha, &d.Estado,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get despacho: %w", err)
	}
	return &d, nil
}

// UpdateEstado cambia el estado del despacho.
func (r *DespachoRepo) UpdateEstado(id string, estado entity.EstadoDespacho) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE despachos SET estado = $2 WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado despacho: %w", err)
	}
	return nil
}

// List lista todos los despachos, más recientes primero.
func (r *DespachoRepo) List() ([]*entity.Despacho, error) {
	query := `SELECT id, numero, cuit_transportista, fecha, estado FROM despachos ORDER BY fecha DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list despachos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Despacho
	for rows.Next() {
		var d entity.Despacho
		if err := rows.Scan(&d.ID, &d.Numero, &d.CUITTransportista, &d.Fecha, &d.Estado); err != nil {
			return nil, fmt.Errorf("scan despacho: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
