package egreso

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pampazon/wms-api/internal/application/dto"
	"github.com/pampazon/wms-api/internal/domain"
	"github.com/pampazon/wms-api/internal/domain/entity"
	"github.com/pampazon/wms-api/internal/domain/repository"
)

// UseCase protocolo de egreso de mercadería: alta de órdenes y preparación
// (debita stock). El despacho final lo maneja el protocolo de despacho.
type UseCase struct {
	repo         repository.OrdenRepository
	clienteRepo  repository.ClienteRepository
	productoRepo repository.ProductoRepository
	tx           TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repo repository.OrdenRepository,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	tx TxRunner,
) *UseCase {
	return &UseCase{repo: repo, clienteRepo: clienteRepo, productoRepo: productoRepo, tx: tx}
}

// CreateOrden da de alta una orden en estado pendiente. El número debe ser
// único; cada línea debe referenciar un producto existente con cantidad
// solicitada positiva; se exige al menos una línea. Cabecera e items se
// insertan en una misma transacción: si una línea falla no queda orden a
// medio persistir.
func (uc *UseCase) CreateOrden(ctx context.Context, in dto.CreateOrdenRequest) (*dto.OrdenResponse, error) {
	if in.Numero == "" || in.NombreDestinatario == "" || in.DireccionDestinatario == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyItems
	}
	cliente, err := uc.clienteRepo.GetByID(in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.GetByNumero(in.Numero)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	ordenID := uuid.New().String()
	items := make([]entity.OrdenItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.CantidadSolicitada <= 0 {
			return nil, domain.ErrInvalidInput
		}
		producto, err := uc.productoRepo.GetByID(it.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.OrdenItem{
			ID:                 uuid.New().String(),
			OrdenID:            ordenID,
			ProductoID:         it.ProductoID,
			CantidadSolicitada: it.CantidadSolicitada,
		})
	}
	orden := &entity.Orden{
		ID:                    ordenID,
		Numero:                in.Numero,
		ClienteID:             in.ClienteID,
		NombreDestinatario:    in.NombreDestinatario,
		DireccionDestinatario: in.DireccionDestinatario,
		Fecha:                 time.Now(),
		Estado:                entity.OrdenPendiente,
		Items:                 items,
	}
	err = uc.tx.RunEgreso(ctx, func(
		ordenRepo repository.OrdenRepository,
		_ repository.PosicionRepository,
		_ repository.StockRepository,
		_ repository.ProductoRepository,
	) error {
		return ordenRepo.Create(orden)
	})
	if err != nil {
		return nil, err
	}
	return toOrdenResponse(orden), nil
}

// GetByID obtiene una orden por ID. Devuelve nil si no existe.
func (uc *UseCase) GetByID(id string) (*dto.OrdenResponse, error) {
	orden, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, nil
	}
	return toOrdenResponse(orden), nil
}

// List lista todas las órdenes.
func (uc *UseCase) List() ([]dto.OrdenResponse, error) {
	ordenes, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrdenResponse, 0, len(ordenes))
	for _, o := range ordenes {
		out = append(out, *toOrdenResponse(o))
	}
	return out, nil
}

// Preparar confirma la preparación de la orden: valida todas las líneas
// confirmadas, debita de cada posición la cantidad solicitada de la línea
// bajo lock de fila, estampa la posición de retiro y pasa la orden a
// Preparada. Se exige confirmar todas las líneas en una sola llamada. Un
// faltante de stock en cualquier línea deshace todos los débitos de la
// llamada.
func (uc *UseCase) Preparar(ctx context.Context, ordenID string, in dto.PrepararOrdenRequest) (*dto.OrdenResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyItems
	}
	var result *entity.Orden
	err := uc.tx.RunEgreso(ctx, func(
		ordenRepo repository.OrdenRepository,
		posicionRepo repository.PosicionRepository,
		stockRepo repository.StockRepository,
		productoRepo repository.ProductoRepository,
	) error {
		orden, err := ordenRepo.GetByIDForUpdate(ordenID)
		if err != nil {
			return err
		}
		if orden == nil {
			return domain.ErrNotFound
		}
		if orden.Estado != entity.OrdenPendiente {
			return domain.ErrInvalidState
		}

		lineas := make(map[string]*entity.OrdenItem, len(orden.Items))
		for i := range orden.Items {
			lineas[orden.Items[i].ID] = &orden.Items[i]
		}

		// Fase de validación: ninguna mutación hasta que todas las líneas pasen.
		confirmadas := make(map[string]bool, len(in.Items))
		for _, conf := range in.Items {
			if _, ok := lineas[conf.ItemID]; !ok {
				return domain.ErrUnknownItem
			}
			if confirmadas[conf.ItemID] {
				return domain.ErrInvalidInput
			}
			confirmadas[conf.ItemID] = true
			posicion, err := posicionRepo.GetByID(conf.PosicionID)
			if err != nil {
				return err
			}
			if posicion == nil {
				return domain.ErrPositionNotFound
			}
			if posicion.ClienteID != orden.ClienteID {
				return domain.ErrOwnershipMismatch
			}
		}
		if len(confirmadas) != len(orden.Items) {
			return domain.ErrInvalidInput
		}

		// Fase de débito: un faltante acá aborta la transacción y deshace
		// los débitos ya aplicados de esta misma llamada.
		for _, conf := range in.Items {
			linea := lineas[conf.ItemID]
			if err := debitStock(stockRepo, productoRepo, linea.ProductoID, conf.PosicionID, linea.CantidadSolicitada); err != nil {
				return err
			}
			if err := ordenRepo.UpdateItemEgreso(conf.ItemID, conf.PosicionID); err != nil {
				return err
			}
			posicionID := conf.PosicionID
			linea.PosicionID = &posicionID
		}
		if err := ordenRepo.UpdateEstado(orden.ID, entity.OrdenPreparada); err != nil {
			return err
		}
		orden.Estado = entity.OrdenPreparada
		result = orden
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrdenResponse(result), nil
}

// debitStock decrementa el registro del par (producto, posición) bajo el
// lock de fila. Sin registro o con cantidad menor a la solicitada devuelve
// el error estructurado de faltante con solicitado y disponible.
func debitStock(
	stockRepo repository.StockRepository,
	productoRepo repository.ProductoRepository,
	productoID, posicionID string,
	cantidad int,
) error {
	item, err := stockRepo.GetForUpdate(productoID, posicionID)
	if err != nil {
		return err
	}
	disponible := 0
	if item != nil {
		disponible = item.Cantidad
	}
	if item == nil || disponible < cantidad {
		codigo := productoID
		if producto, err := productoRepo.GetByID(productoID); err == nil && producto != nil {
			codigo = producto.Codigo
		}
		return &domain.InsufficientStockError{
			CodigoProducto: codigo,
			PosicionID:     posicionID,
			Solicitado:     cantidad,
			Disponible:     disponible,
		}
	}
	item.Cantidad -= cantidad
	item.UpdatedAt = time.Now()
	return stockRepo.Upsert(item)
}

func toOrdenResponse(o *entity.Orden) *dto.OrdenResponse {
	items := make([]dto.OrdenItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrdenItemResponse{
			ID:                 it.ID,
			ProductoID:         it.ProductoID,
			CantidadSolicitada: it.CantidadSolicitada,
			PosicionID:         it.PosicionID,
		})
	}
	return &dto.OrdenResponse{
		ID:                    o.ID,
		Numero:                o.Numero,
		ClienteID:             o.ClienteID,
		NombreDestinatario:    o.NombreDestinatario,
		DireccionDestinatario: o.DireccionDestinatario,
		Fecha:                 o.Fecha,
		Estado:                string(o.Estado),
		DespachoID:            o.DespachoID,
		Items:                 items,
	}
}
