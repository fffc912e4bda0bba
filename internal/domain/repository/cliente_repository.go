package repository

import "github.com/pampazon/wms-api/internal/domain/entity"

// ClienteRepository define el puerto de persistencia para Cliente (DIP).
type ClienteRepository interface {
	Create(cliente *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	GetByCUIT(cuit string) (*entity.Cliente, error)
	Update(cliente *entity.Cliente) error
	List() ([]*entity.Cliente, error)
	Delete(id string) error
}
