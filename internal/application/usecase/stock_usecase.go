package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pampazon/wms-api/internal/application/dto"
	"github.com/pampazon/wms-api/internal/domain"
	"github.com/pampazon/wms-api/internal/domain/entity"
	"github.com/pampazon/wms-api/internal/domain/repository"
)

// StockUseCase superficie administrativa del stock: alta manual, ajuste de
// cantidad y baja en cero. Los movimientos normales entran por los
// protocolos de ingreso y egreso, no por acá.
type StockUseCase struct {
	repo         repository.StockRepository
	productoRepo repository.ProductoRepository
	posicionRepo repository.PosicionRepository
	tx           BajaTxRunner
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	repo repository.StockRepository,
	productoRepo repository.ProductoRepository,
	posicionRepo repository.PosicionRepository,
	tx BajaTxRunner,
) *StockUseCase {
	return &StockUseCase{repo: repo, productoRepo: productoRepo, posicionRepo: posicionRepo, tx: tx}
}

// Create crea un registro de stock por ajuste manual. Falla con duplicado si
// el par (producto, posición) ya tiene registro.
func (uc *StockUseCase) Create(in dto.CreateStockRequest) (*dto.StockResponse, error) {
	if in.Cantidad < 0 {
		return nil, domain.ErrInvalidInput
	}
	producto, err := uc.productoRepo.GetByID(in.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	posicion, err := uc.posicionRepo.GetByID(in.PosicionID)
	if err != nil {
		return nil, err
	}
	if posicion == nil {
		return nil, domain.ErrPositionNotFound
	}
	existing, err := uc.repo.Get(in.ProductoID, in.PosicionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	item := &entity.StockItem{
		ID:         uuid.New().String(),
		ProductoID: in.ProductoID,
		PosicionID: in.PosicionID,
		Cantidad:   in.Cantidad,
		UpdatedAt:  time.Now(),
	}
	// Insert plano: si otro alta del mismo par gana la carrera contra el
	// pre-chequeo, el índice único responde ErrDuplicate en vez de pisarlo.
	if err := uc.repo.Insert(item); err != nil {
		return nil, err
	}
	return uc.project(item, producto, posicion), nil
}

// GetByID obtiene un registro de stock con su proyección compuesta.
// Devuelve nil si no existe.
func (uc *StockUseCase) GetByID(id string) (*dto.StockResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return uc.resolve(item)
}

// Update ajusta la cantidad de un registro de stock. Devuelve nil si no existe.
func (uc *StockUseCase) Update(id string, in dto.UpdateStockRequest) (*dto.StockResponse, error) {
	if in.Cantidad < 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	item.Cantidad = in.Cantidad
	item.UpdatedAt = time.Now()
	if err := uc.repo.Upsert(item); err != nil {
		return nil, err
	}
	return uc.resolve(item)
}

// List lista todos los registros de stock con su proyección compuesta.
func (uc *StockUseCase) List() ([]dto.StockResponse, error) {
	items, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(items))
	for _, item := range items {
		resp, err := uc.resolve(item)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Delete elimina un registro de stock. Sólo se permite con cantidad en cero;
// la condición se re-verifica dentro de la transacción del borrado.
func (uc *StockUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.RunBaja(ctx, func(
		_ repository.ClienteRepository,
		_ repository.ProductoRepository,
		_ repository.PosicionRepository,
		stockRepo repository.StockRepository,
		_ repository.RemitoRepository,
		_ repository.OrdenRepository,
	) error {
		item, err := stockRepo.GetByID(id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Cantidad > 0 {
			return domain.ErrBlockedByReferences
		}
		return stockRepo.Delete(id)
	})
}

func (uc *StockUseCase) resolve(item *entity.StockItem) (*dto.StockResponse, error) {
	producto, err := uc.productoRepo.GetByID(item.ProductoID)
	if err != nil {
		return nil, err
	}
	posicion, err := uc.posicionRepo.GetByID(item.PosicionID)
	if err != nil {
		return nil, err
	}
	return uc.project(item, producto, posicion), nil
}

func (uc *StockUseCase) project(item *entity.StockItem, producto *entity.Producto, posicion *entity.Posicion) *dto.StockResponse {
	resp := &dto.StockResponse{
		ID:         item.ID,
		ProductoID: item.ProductoID,
		PosicionID: item.PosicionID,
		Cantidad:   item.Cantidad,
		UpdatedAt:  item.UpdatedAt,
	}
	if producto != nil {
		resp.CodigoProducto = producto.Codigo
	}
	if posicion != nil {
		resp.Ubicacion = posicion.Ubicacion()
	}
	return resp
}
