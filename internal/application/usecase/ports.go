package usecase

import (
	"context"

	"github.com/pampazon/wms-api/internal/domain/repository"
)

// BajaTxRunner ejecuta el callback de una baja de catálogo dentro de una
// transacción, con repos ligados a ella. La condición que bloquea la
// eliminación se evalúa dentro del callback, en la misma transacción que
// el DELETE.
type BajaTxRunner interface {
	RunBaja(ctx context.Context, fn func(
		clienteRepo repository.ClienteRepository,
		productoRepo repository.ProductoRepository,
		posicionRepo repository.PosicionRepository,
		stockRepo repository.StockRepository,
		remitoRepo repository.RemitoRepository,
		ordenRepo repository.OrdenRepository,
	) error) error
}
