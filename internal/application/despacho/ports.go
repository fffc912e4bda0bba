package despacho

import (
	"context"

	"github.com/pampazon/wms-api/internal/domain/repository"
)

// TxRunner ejecuta el callback del protocolo de despacho dentro de una
// transacción, con repos ligados a ella.
type TxRunner interface {
	RunDespacho(ctx context.Context, fn func(
		despachoRepo repository.DespachoRepository,
		ordenRepo repository.OrdenRepository,
	) error) error
}
