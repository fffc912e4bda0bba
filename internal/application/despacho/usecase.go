package despacho

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pampazon/wms-api/internal/application/dto"
	"github.com/pampazon/wms-api/internal/domain"
	"github.com/pampazon/wms-api/internal/domain/entity"
	"github.com/pampazon/wms-api/internal/domain/repository"
)

// UseCase protocolo de despacho: agrupa órdenes preparadas para un envío y
// finaliza su ciclo de vida. Nunca toca el stock directamente.
type UseCase struct {
	repo      repository.DespachoRepository
	ordenRepo repository.OrdenRepository
	tx        TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.DespachoRepository, ordenRepo repository.OrdenRepository, tx TxRunner) *UseCase {
	return &UseCase{repo: repo, ordenRepo: ordenRepo, tx: tx}
}

// Create inicia un despacho. El número debe ser único.
func (uc *UseCase) Create(in dto.CreateDespachoRequest) (*dto.DespachoResponse, error) {
	if in.Numero == "" || len(in.CUITTransportista) != 11 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByNumero(in.Numero)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	despacho := &entity.Despacho{
		ID:                uuid.New().String(),
		Numero:            in.Numero,
		CUITTransportista: in.CUITTransportista,
		Fecha:             time.Now(),
		Estado:            entity.DespachoIniciado,
	}
	if err := uc.repo.Create(despacho); err != nil {
		return nil, err
	}
	return toDespachoResponse(despacho, nil), nil
}

// GetByID obtiene un despacho con los números de sus órdenes asociadas.
// Devuelve nil si no existe.
func (uc *UseCase) GetByID(id string) (*dto.DespachoResponse, error) {
	despacho, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if despacho == nil {
		return nil, nil
	}
	ordenes, err := uc.ordenRepo.ListByDespacho(id)
	if err != nil {
		return nil, err
	}
	return toDespachoResponse(despacho, ordenes), nil
}

// List lista todos los despachos con los números de sus órdenes asociadas.
func (uc *UseCase) List() ([]dto.DespachoResponse, error) {
	despachos, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.DespachoResponse, 0, len(despachos))
	for _, d := range despachos {
		ordenes, err := uc.ordenRepo.ListByDespacho(d.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toDespachoResponse(d, ordenes))
	}
	return out, nil
}

// AgregarOrden asocia una orden preparada al despacho, referenciada por su
// número. Repetir el agregado al mismo despacho es un éxito sin mutación;
// agregar una orden ya asociada a otro despacho es un conflicto. No cambia
// el estado de la orden.
func (uc *UseCase) AgregarOrden(ctx context.Context, despachoID, numeroOrden string) (*dto.DespachoResponse, error) {
	err := uc.tx.RunDespacho(ctx, func(
		despachoRepo repository.DespachoRepository,
		ordenRepo repository.OrdenRepository,
	) error {
		despacho, err := despachoRepo.GetByIDForUpdate(despachoID)
		if err != nil {
			return err
		}
		if despacho == nil {
			return domain.ErrNotFound
		}
		if despacho.Estado != entity.DespachoIniciado {
			return domain.ErrInvalidState
		}
		orden, err := ordenRepo.GetByNumero(numeroOrden)
		if err != nil {
			return err
		}
		if orden == nil {
			return domain.ErrNotFound
		}
		// Re-lectura bajo lock de la fila de la orden.
		orden, err = ordenRepo.GetByIDForUpdate(orden.ID)
		if err != nil {
			return err
		}
		if orden == nil {
			return domain.ErrNotFound
		}
		if orden.DespachoID != nil {
			if *orden.DespachoID == despacho.ID {
				return nil
			}
			return domain.ErrOrderAlreadyDispatched
		}
		if orden.Estado != entity.OrdenPreparada {
			return domain.ErrOrderNotReady
		}
		return ordenRepo.AsignarDespacho(orden.ID, despacho.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(despachoID)
}

// Finalizar cierra el despacho: pasa cada orden asociada en estado Preparada
// a Despachada y el despacho a Finalizado. Es válido sin órdenes asociadas.
func (uc *UseCase) Finalizar(ctx context.Context, despachoID string) (*dto.DespachoResponse, error) {
	err := uc.tx.RunDespacho(ctx, func(
		despachoRepo repository.DespachoRepository,
		ordenRepo repository.OrdenRepository,
	) error {
		despacho, err := despachoRepo.GetByIDForUpdate(despachoID)
		if err != nil {
			return err
		}
		if despacho == nil {
			return domain.ErrNotFound
		}
		if despacho.Estado != entity.DespachoIniciado {
			return domain.ErrInvalidState
		}
		ordenes, err := ordenRepo.ListByDespacho(despacho.ID)
		if err != nil {
			return err
		}
		for _, orden := range ordenes {
			// Solo se asocian órdenes preparadas; si apareciera otra cosa
			// se deja intacta en lugar de fallar.
			if orden.Estado != entity.OrdenPreparada {
				continue
			}
			if err := ordenRepo.UpdateEstado(orden.ID, entity.OrdenDespachada); err != nil {
				return err
			}
		}
		return despachoRepo.UpdateEstado(despacho.ID, entity.DespachoFinalizado)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(despachoID)
}

func toDespachoResponse(d *entity.Despacho, ordenes []*entity.Orden) *dto.DespachoResponse {
	numeros := make([]string, 0, len(ordenes))
	for _, o := range ordenes {
		numeros = append(numeros, o.Numero)
	}
	return &dto.DespachoResponse{
		ID:                d.ID,
		Numero:            d.Numero,
		CUITTransportista: d.CUITTransportista,
		Fecha:             d.Fecha,
		Estado:            string(d.Estado),
		Ordenes:           numeros,
	}
}
