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

// ClienteUseCase casos de uso CRUD para clientes.
type ClienteUseCase struct {
	repo repository.ClienteRepository
	tx   BajaTxRunner
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository, tx BajaTxRunner) *ClienteUseCase {
	return &ClienteUseCase{repo: repo, tx: tx}
}

// Create da de alta un cliente. El CUIT debe ser único.
func (uc *ClienteUseCase) Create(in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	if len(in.CUIT) != 11 || in.RazonSocial == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCUIT(in.CUIT)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	cliente := &entity.Cliente{
		ID:          uuid.New().String(),
		CUIT:        in.CUIT,
		RazonSocial: in.RazonSocial,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// GetByID obtiene un cliente por ID. Devuelve nil si no existe.
func (uc *ClienteUseCase) GetByID(id string) (*dto.ClienteResponse, error) {
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, nil
	}
	return toClienteResponse(cliente), nil
}

// Update actualiza la razón social. El CUIT no se modifica después del alta.
func (uc *ClienteUseCase) Update(id string, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	if in.RazonSocial == "" {
		return nil, domain.ErrInvalidInput
	}
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, nil
	}
	cliente.RazonSocial = in.RazonSocial
	cliente.UpdatedAt = time.Now()
	if err := uc.repo.Update(cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// List lista todos los clientes.
func (uc *ClienteUseCase) List() ([]dto.ClienteResponse, error) {
	clientes, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		out = append(out, *toClienteResponse(c))
	}
	return out, nil
}

// Delete elimina un cliente. La baja se bloquea mientras el cliente alquile
// posiciones o tenga remitos pendientes u órdenes sin despachar; la condición
// se verifica dentro de la misma transacción que el borrado.
func (uc *ClienteUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.RunBaja(ctx, func(
		clienteRepo repository.ClienteRepository,
		_ repository.ProductoRepository,
		posicionRepo repository.PosicionRepository,
		_ repository.StockRepository,
		remitoRepo repository.RemitoRepository,
		ordenRepo repository.OrdenRepository,
	) error {
		cliente, err := clienteRepo.GetByID(id)
		if err != nil {
			return err
		}
		if cliente == nil {
			return domain.ErrNotFound
		}
		count, err := posicionRepo.CountByCliente(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrBlockedByReferences
		}
		pendiente, err := remitoRepo.ExistsPendienteByCliente(id)
		if err != nil {
			return err
		}
		if pendiente {
			return domain.ErrBlockedByReferences
		}
		activa, err := ordenRepo.ExistsActivaByCliente(id)
		if err != nil {
			return err
		}
		if activa {
			return domain.ErrBlockedByReferences
		}
		return clienteRepo.Delete(id)
	})
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:          c.ID,
		CUIT:        c.CUIT,
		RazonSocial: c.RazonSocial,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
