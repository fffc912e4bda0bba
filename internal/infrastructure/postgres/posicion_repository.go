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

var _ repository.PosicionRepository = (*PosicionRepo)(nil)

// PosicionRepo implementación del puerto PosicionRepository sobre PostgreSQL (usable con pool o tx).
type PosicionRepo struct {
	q Querier
}

// NewPosicionRepository construye el adaptador de persistencia para posiciones. Pasar pool o tx (Querier).
func NewPosicionRepository(q Querier) *PosicionRepo {
	return &PosicionRepo{q: q}
}

// Create persiste una nueva posición.
func (r *PosicionRepo) Create(posicion *entity.Posicion) error {
	query := `
		INSERT INTO posiciones (id, pasillo, seccion, estanteria, nivel, cliente_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		posicion.ID, posicion.Pasillo, posicion.Seccion, posicion.Estanteria, posicion.Nivel,
		posicion.ClienteID, posicion.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert posicion: %w", err)
	}
	return nil
}

// GetByID obtiene una posición por ID.
func (r *PosicionRepo) GetByID(id string) (*entity.Posicion, error) {
	query := `
		SELECT id, pasillo, seccion, estanteria, nivel, cliente_id, created_at
		FROM posiciones WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByUbicacion busca por la combinación única (pasillo, sección, estantería, nivel).
func (r *PosicionRepo) GetByUbicacion(pasillo string, seccion, estanteria, nivel int) (*entity.Posicion, error) {
	query := `
		SELECT id, pasillo, seccion, estanteria, nivel, cliente_id, created_at
		FROM posiciones
		WHERE pasillo = $1 AND seccion = $2 AND estanteria = $3 AND nivel = $4`
	return r.scanOne(r.q.QueryRow(context.Background(), query, pasillo, seccion, estanteria, nivel))
}

func (r *PosicionRepo) scanOne(row pgx.Row) (*entity.Posicion, error) {
	var p entity.Posicion
	err := row.Scan(&p.ID, &p.Pasillo, &p.Seccion, &p.Estanteria, &p.Nivel, &p.ClienteID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get posicion: %w", err)
	}
	return &p, nil
}

// List lista todas las posiciones ordenadas por ubicación.
func (r *PosicionRepo) List() ([]*entity.Posicion, error) {
	query := `
		SELECT id, pasillo, seccion, estanteria, nivel, cliente_id, created_at
		FROM posiciones ORDER BY pasillo, seccion, estanteria, nivel`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list posiciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Posicion
	for rows.Next() {
		var p entity.Posicion
		if err := rows.Scan(&p.ID, &p.Pasillo, &p.Seccion, &p.Estanteria, &p.Nivel, &p.ClienteID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan posicion: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountByCliente cuenta las posiciones alquiladas por un cliente.
func (r *PosicionRepo) CountByCliente(clienteID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM posiciones WHERE cliente_id = $1`, clienteID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posiciones por cliente: %w", err)
	}
	return count, nil
}

// Delete elimina una posición por ID.
func (r *PosicionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM posiciones WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrBlockedByReferences
		}
		return fmt.Errorf("delete posicion: %w", err)
	}
	return nil
}
