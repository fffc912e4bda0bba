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

// PosicionUseCase casos de uso para posiciones del depósito.
type PosicionUseCase struct {
	repo        repository.PosicionRepository
	clienteRepo repository.ClienteRepository
	tx          BajaTxRunner
}

// NewPosicionUseCase construye el caso de uso.
func NewPosicionUseCase(repo repository.PosicionRepository, clienteRepo repository.ClienteRepository, tx BajaTxRunner) *PosicionUseCase {
	return &PosicionUseCase{repo: repo, clienteRepo: clienteRepo, tx: tx}
}

// Create da de alta una posición. La combinación (pasillo, sección,
// estantería, nivel) debe ser única y el cliente dueño debe existir.
func (uc *PosicionUseCase) Create(in dto.CreatePosicionRequest) (*dto.PosicionResponse, error) {
	if len(in.Pasillo) != 1 || in.Pasillo[0] < 'A' || in.Pasillo[0] > 'Z' {
		return nil, domain.ErrInvalidInput
	}
	if in.Seccion <= 0 || in.Estanteria <= 0 || in.Nivel <= 0 {
		return nil, domain.ErrInvalidInput
	}
	cliente, err := uc.clienteRepo.GetByID(in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.GetByUbicacion(in.Pasillo, in.Seccion, in.Estanteria, in.Nivel)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	posicion := &entity.Posicion{
		ID:         uuid.New().String(),
		Pasillo:    in.Pasillo,
		Seccion:    in.Seccion,
		Estanteria: in.Estanteria,
		Nivel:      in.Nivel,
		ClienteID:  in.ClienteID,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(posicion); err != nil {
		return nil, err
	}
	return toPosicionResponse(posicion), nil
}

// GetByID obtiene una posición por ID. Devuelve nil si no existe.
func (uc *PosicionUseCase) GetByID(id string) (*dto.PosicionResponse, error) {
	posicion, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if posicion == nil {
		return nil, nil
	}
	return toPosicionResponse(posicion), nil
}

// List lista todas las posiciones.
func (uc *PosicionUseCase) List() ([]dto.PosicionResponse, error) {
	posiciones, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.PosicionResponse, 0, len(posiciones))
	for _, p := range posiciones {
		out = append(out, *toPosicionResponse(p))
	}
	return out, nil
}

// Delete elimina una posición. La baja se bloquea mientras la posición tenga
// stock con cantidad positiva.
func (uc *PosicionUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.RunBaja(ctx, func(
		_ repository.ClienteRepository,
		_ repository.ProductoRepository,
		posicionRepo repository.PosicionRepository,
		stockRepo repository.StockRepository,
		_ repository.RemitoRepository,
		_ repository.OrdenRepository,
	) error {
		posicion, err := posicionRepo.GetByID(id)
		if err != nil {
			return err
		}
		if posicion == nil {
			return domain.ErrNotFound
		}
		conStock, err := stockRepo.HasStockEnPosicion(id)
		if err != nil {
			return err
		}
		if conStock {
			return domain.ErrBlockedByReferences
		}
		return posicionRepo.Delete(id)
	})
}

func toPosicionResponse(p *entity.Posicion) *dto.PosicionResponse {
	return &dto.PosicionResponse{
		ID:         p.ID,
		Pasillo:    p.Pasillo,
		Seccion:    p.Seccion,
		Estanteria: p.Estanteria,
		Nivel:      p.Nivel,
		Ubicacion:  p.Ubicacion(),
		ClienteID:  p.ClienteID,
		CreatedAt:  p.CreatedAt,
	}
}
