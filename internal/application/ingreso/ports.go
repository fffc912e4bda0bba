package ingreso

import (
	"context"

	"github.com/pampazon/wms-api/internal/domain/repository"
)

// TxRunner ejecuta el callback del protocolo de ingreso dentro de una
// transacción, con repos ligados a ella. Valida-todo-luego-aplica depende
// del rollback: cualquier error del callback deshace todas las mutaciones.
type TxRunner interface {
	RunIngreso(ctx context.Context, fn func(
		remitoRepo repository.RemitoRepository,
		posicionRepo repository.PosicionRepository,
		stockRepo repository.StockRepository,
	) error) error
}
