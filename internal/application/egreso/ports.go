package egreso

import (
	"context"

	"github.com/pampazon/wms-api/internal/domain/repository"
)

// TxRunner ejecuta el callback del protocolo de egreso dentro de una
// transacción, con repos ligados a ella. Un error del callback deshace
// todos los débitos de stock de la llamada.
type TxRunner interface {
	RunEgreso(ctx context.Context, fn func(
		ordenRepo repository.OrdenRepository,
		posicionRepo repository.PosicionRepository,
		stockRepo repository.StockRepository,
		productoRepo repository.ProductoRepository,
	) error) error
}
