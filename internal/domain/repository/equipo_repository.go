package repository

import "github.com/rentalsur/edp-api/internal/domain/entity"

// EquipoRepository define el puerto de persistencia para el catálogo de equipos.
type EquipoRepository interface {
	Create(e *entity.Equipo) error
	GetByID(id int64) (*entity.Equipo, error)
	List(search string, limit, offset int) ([]*entity.Equipo, int64, error)
	Update(e *entity.Equipo) error
	ListComponentes(equipoID int64) ([]*entity.ComponenteEquipo, error)
	CreateComponente(c *entity.ComponenteEquipo) error
}

// TipoServicioRepository define el puerto para los tipos de servicio.
type TipoServicioRepository interface {
	Create(ts *entity.TipoServicio) error
	GetByID(id int64) (*entity.TipoServicio, error)
	List() ([]*entity.TipoServicio, error)
	Update(ts *entity.TipoServicio) error
}
