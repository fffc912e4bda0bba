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

// ProductoUseCase casos de uso CRUD para productos.
type ProductoUseCase struct {
	repo repository.ProductoRepository
	tx   BajaTxRunner
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository, tx BajaTxRunner) *ProductoUseCase {
	return &ProductoUseCase{repo: repo, tx: tx}
}

// Create da de alta un producto. El código debe ser único y las tres
// dimensiones positivas.
func (uc *ProductoUseCase) Create(in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	if in.Codigo == "" || in.Descripcion == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.AltoCm.IsPositive() || !in.AnchoCm.IsPositive() || !in.ProfundidadCm.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCodigo(in.Codigo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	producto := &entity.Producto{
		ID:            uuid.New().String(),
		Codigo:        in.Codigo,
		Descripcion:   in.Descripcion,
		AltoCm:        in.AltoCm,
		AnchoCm:       in.AnchoCm,
		ProfundidadCm: in.ProfundidadCm,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (uc *ProductoUseCase) GetByID(id string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	return toProductoResponse(producto), nil
}

// Update actualiza descripción y dimensiones. El código no se modifica.
func (uc *ProductoUseCase) Update(id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	if in.Descripcion != nil {
		if *in.Descripcion == "" {
			return nil, domain.ErrInvalidInput
		}
		producto.Descripcion = *in.Descripcion
	}
	if in.AltoCm != nil {
		if !in.AltoCm.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		producto.AltoCm = *in.AltoCm
	}
	if in.AnchoCm != nil {
		if !in.AnchoCm.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		producto.AnchoCm = *in.AnchoCm
	}
	if in.ProfundidadCm != nil {
		if !in.ProfundidadCm.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		producto.ProfundidadCm = *in.ProfundidadCm
	}
	producto.UpdatedAt = time.Now()
	if err := uc.repo.Update(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// List lista todos los productos.
func (uc *ProductoUseCase) List() ([]dto.ProductoResponse, error) {
	productos, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		out = append(out, *toProductoResponse(p))
	}
	return out, nil
}

// Delete elimina un producto. La baja se bloquea mientras exista algún
// registro de stock o alguna línea de remito u orden que lo referencie.
func (uc *ProductoUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.RunBaja(ctx, func(
		_ repository.ClienteRepository,
		productoRepo repository.ProductoRepository,
		_ repository.PosicionRepository,
		stockRepo repository.StockRepository,
		remitoRepo repository.RemitoRepository,
		ordenRepo repository.OrdenRepository,
	) error {
		producto, err := productoRepo.GetByID(id)
		if err != nil {
			return err
		}
		if producto == nil {
			return domain.ErrNotFound
		}
		enStock, err := stockRepo.ExistsByProducto(id)
		if err != nil {
			return err
		}
		if enStock {
			return domain.ErrBlockedByReferences
		}
		enRemito, err := remitoRepo.ExistsItemByProducto(id)
		if err != nil {
			return err
		}
		if enRemito {
			return domain.ErrBlockedByReferences
		}
		enOrden, err := ordenRepo.ExistsItemByProducto(id)
		if err != nil {
			return err
		}
		if enOrden {
			return domain.ErrBlockedByReferences
		}
		return productoRepo.Delete(id)
	})
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:            p.ID,
		Codigo:        p.Codigo,
		Descripcion:   p.Descripcion,
		AltoCm:        p.AltoCm,
		AnchoCm:       p.AnchoCm,
		ProfundidadCm: p.ProfundidadCm,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
