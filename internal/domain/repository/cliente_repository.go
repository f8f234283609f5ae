package repository

import "github.com/rentalsur/edp-api/internal/domain/entity"

// ClienteRepository define el puerto de persistencia para Cliente.
type ClienteRepository interface {
	Create(c *entity.Cliente) error
	GetByID(id int64) (*entity.Cliente, error)
	GetByRUT(rut string) (*entity.Cliente, error)
	List(search string, limit, offset int) ([]*entity.Cliente, int64, error)
	Update(c *entity.Cliente) error
	Delete(id int64) error
}

// ObraRepository define el puerto de persistencia para Obra.
type ObraRepository interface {
	Create(o *entity.Obra) error
	GetByID(id int64) (*entity.Obra, error)
	ListByCliente(clienteID int64) ([]*entity.Obra, error)
	List(limit, offset int) ([]*entity.Obra, int64, error)
	Update(o *entity.Obra) error
	Delete(id int64) error
}
