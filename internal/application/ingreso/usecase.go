package ingreso

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pampazon/wms-api/internal/application/dto"
	"github.com/pampazon/wms-api/internal/domain"
	"github.com/pampazon/wms-api/internal/domain/entity"
	"github.com/pampazon/wms-api/internal/domain/repository"
)

// UseCase protocolo de ingreso de mercadería: alta de remitos, confirmación
// del ingreso físico (acredita stock) y rechazo.
type UseCase struct {
	repo         repository.RemitoRepository
	clienteRepo  repository.ClienteRepository
	productoRepo repository.ProductoRepository
	tx           TxRunner

	// permitirExcedente habilita ingresar más unidades que las declaradas.
	permitirExcedente bool
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repo repository.RemitoRepository,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	tx TxRunner,
	permitirExcedente bool,
) *UseCase {
	return &UseCase{
		repo:              repo,
		clienteRepo:       clienteRepo,
		productoRepo:      productoRepo,
		tx:                tx,
		permitirExcedente: permitirExcedente,
	}
}

// CreateRemito da de alta un remito en estado pendiente de ingreso. Cada
// línea debe referenciar un producto existente con cantidad declarada
// positiva; se exige al menos una línea. Cabecera e items se insertan en una
// misma transacción: si una línea falla no queda remito a medio persistir.
func (uc *UseCase) CreateRemito(ctx context.Context, in dto.CreateRemitoRequest) (*dto.RemitoResponse, error) {
	if len(in.CUITTransportista) != 11 {
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
	remitoID := uuid.New().String()
	items := make([]entity.RemitoItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.CantidadDeclarada <= 0 {
			return nil, domain.ErrInvalidInput
		}
		producto, err := uc.productoRepo.GetByID(it.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.RemitoItem{
			ID:                uuid.New().String(),
			RemitoID:          remitoID,
			ProductoID:        it.ProductoID,
			CantidadDeclarada: it.CantidadDeclarada,
		})
	}
	remito := &entity.Remito{
		ID:                remitoID,
		ClienteID:         in.ClienteID,
		CUITTransportista: in.CUITTransportista,
		Fecha:             time.Now(),
		Estado:            entity.RemitoPendienteDeIngreso,
		Items:             items,
	}
	err = uc.tx.RunIngreso(ctx, func(
		remitoRepo repository.RemitoRepository,
		_ repository.PosicionRepository,
		_ repository.StockRepository,
	) error {
		return remitoRepo.Create(remito)
	})
	if err != nil {
		return nil, err
	}
	return toRemitoResponse(remito), nil
}

// GetByID obtiene un remito por ID. Devuelve nil si no existe.
func (uc *UseCase) GetByID(id string) (*dto.RemitoResponse, error) {
	remito, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if remito == nil {
		return nil, nil
	}
	return toRemitoResponse(remito), nil
}

// List lista todos los remitos.
func (uc *UseCase) List() ([]dto.RemitoResponse, error) {
	remitos, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.RemitoResponse, 0, len(remitos))
	for _, r := range remitos {
		out = append(out, *toRemitoResponse(r))
	}
	return out, nil
}

// IngresarMercaderia confirma el ingreso físico del remito: valida todas las
// líneas confirmadas antes de mutar nada, luego acredita el stock, estampa
// cantidad ingresada y posición por línea y pasa el remito a Ingresado. Se
// exige confirmar todas las líneas del remito en una sola llamada. Cualquier
// falla deshace la operación completa.
func (uc *UseCase) IngresarMercaderia(ctx context.Context, remitoID string, in dto.IngresarRemitoRequest) (*dto.RemitoResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyItems
	}
	var result *entity.Remito
	err := uc.tx.RunIngreso(ctx, func(
		remitoRepo repository.RemitoRepository,
		posicionRepo repository.PosicionRepository,
		stockRepo repository.StockRepository,
	) error {
		remito, err := remitoRepo.GetByIDForUpdate(remitoID)
		if err != nil {
			return err
		}
		if remito == nil {
			return domain.ErrNotFound
		}
		if remito.Estado != entity.RemitoPendienteDeIngreso {
			return domain.ErrInvalidState
		}

		lineas := make(map[string]*entity.RemitoItem, len(remito.Items))
		for i := range remito.Items {
			lineas[remito.Items[i].ID] = &remito.Items[i]
		}

		// Fase de validación: ninguna mutación hasta que todas las líneas pasen.
		confirmadas := make(map[string]bool, len(in.Items))
		for _, conf := range in.Items {
			linea, ok := lineas[conf.ItemID]
			if !ok {
				return domain.ErrUnknownItem
			}
			if confirmadas[conf.ItemID] {
				return domain.ErrInvalidInput
			}
			confirmadas[conf.ItemID] = true
			if conf.CantidadIngresada <= 0 {
				return domain.ErrInvalidInput
			}
			if conf.CantidadIngresada > linea.CantidadDeclarada && !uc.permitirExcedente {
				return domain.ErrInvalidInput
			}
			posicion, err := posicionRepo.GetByID(conf.PosicionID)
			if err != nil {
				return err
			}
			if posicion == nil {
				return domain.ErrPositionNotFound
			}
			if posicion.ClienteID != remito.ClienteID {
				return domain.ErrOwnershipMismatch
			}
		}
		if len(confirmadas) != len(remito.Items) {
			return domain.ErrInvalidInput
		}

		// Fase de aplicación.
		for _, conf := range in.Items {
			linea := lineas[conf.ItemID]
			if err := creditStock(stockRepo, linea.ProductoID, conf.PosicionID, conf.CantidadIngresada); err != nil {
				return err
			}
			if err := remitoRepo.UpdateItemIngreso(conf.ItemID, conf.CantidadIngresada, conf.PosicionID); err != nil {
				return err
			}
			cantidad := conf.CantidadIngresada
			posicionID := conf.PosicionID
			linea.CantidadIngresada = &cantidad
			linea.PosicionID = &posicionID
		}
		if err := remitoRepo.UpdateEstado(remito.ID, entity.RemitoIngresado); err != nil {
			return err
		}
		remito.Estado = entity.RemitoIngresado
		result = remito
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toRemitoResponse(result), nil
}

// Rechazar pasa el remito a Rechazado. Sólo es válido desde pendiente de
// ingreso y nunca toca el stock.
func (uc *UseCase) Rechazar(ctx context.Context, remitoID string) (*dto.RemitoResponse, error) {
	var result *entity.Remito
	err := uc.tx.RunIngreso(ctx, func(
		remitoRepo repository.RemitoRepository,
		_ repository.PosicionRepository,
		_ repository.StockRepository,
	) error {
		remito, err := remitoRepo.GetByIDForUpdate(remitoID)
		if err != nil {
			return err
		}
		if remito == nil {
			return domain.ErrNotFound
		}
		if remito.Estado != entity.RemitoPendienteDeIngreso {
			return domain.ErrInvalidState
		}
		if err := remitoRepo.UpdateEstado(remito.ID, entity.RemitoRechazado); err != nil {
			return err
		}
		remito.Estado = entity.RemitoRechazado
		result = remito
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toRemitoResponse(result), nil
}

// creditStock acredita cantidad al par (producto, posición). El incremento
// es atómico en el repo: leer la cantidad acá y escribir el total dejaría que
// dos créditos concurrentes sobre un par sin registro previo se pisen.
func creditStock(stockRepo repository.StockRepository, productoID, posicionID string, cantidad int) error {
	return stockRepo.Add(&entity.StockItem{
		ID:         uuid.New().String(),
		ProductoID: productoID,
		PosicionID: posicionID,
		Cantidad:   cantidad,
		UpdatedAt:  time.Now(),
	})
}

func toRemitoResponse(r *entity.Remito) *dto.RemitoResponse {
	items := make([]dto.RemitoItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.RemitoItemResponse{
			ID:                it.ID,
			ProductoID:        it.ProductoID,
			CantidadDeclarada: it.CantidadDeclarada,
			CantidadIngresada: it.CantidadIngresada,
			PosicionID:        it.PosicionID,
		})
	}
	return &dto.RemitoResponse{
		ID:                r.ID,
		ClienteID:         r.ClienteID,
		CUITTransportista: r.CUITTransportista,
		Fecha:             r.Fecha,
		Estado:            string(r.Estado),
		Items:             items,
	}
}
