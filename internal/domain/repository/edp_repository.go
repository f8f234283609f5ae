package repository

import (
	"github.com/shopspring/decimal"

	"github.com/rentalsur/edp-api/internal/domain/entity"
)

// EDPFilter filtros para listar EDPs.
type EDPFilter struct {
	Estado    *entity.Estado
	ClienteID *int64
	ObraID    *int64
	Search    string // búsqueda por código
	Limit     int
	Offset    int
}

// EDPRepository define el puerto de persistencia para el EDP.
// GetByID retorna (nil, nil) si el EDP no existe.
type EDPRepository interface {
	Create(e *entity.EDP) error
	GetByID(id int64) (*entity.EDP, error)
	// GetByIDForUpdate lee el EDP bloqueando la fila (SELECT ... FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetByIDForUpdate(id int64) (*entity.EDP, error)
	// ExistsCodigo indica si otro EDP (distinto de excludeID) usa el código.
	ExistsCodigo(codigo string, excludeID int64) (bool, error)
	Update(e *entity.EDP) error
	// UpdateEstado cambia el estado solo si el actual coincide con `desde`.
	// Retorna false si la fila no estaba en `desde` (estado obsoleto).
	UpdateEstado(id int64, desde, hacia entity.Estado) (bool, error)
	// UpdateImporteTotal persiste el total derivado de las líneas.
	UpdateImporteTotal(id int64, importe decimal.Decimal) error
	Delete(id int64) error
	List(f EDPFilter) ([]*entity.EDP, int64, error)
}

// EDPEquipoRepository define el puerto para líneas de equipo y sus servicios.
type EDPEquipoRepository interface {
	Create(eq *entity.EDPEquipo) error
	GetByID(id int64) (*entity.EDPEquipo, error)
	// ListByEDP retorna las líneas del EDP con sus servicios cargados.
	ListByEDP(edpID int64) ([]*entity.EDPEquipo, error)
	Delete(id int64) error
	DeleteByEDP(edpID int64) error

	CreateServicio(sv *entity.EDPServicio) error
	GetServicioByID(id int64) (*entity.EDPServicio, error)
	DeleteServicio(id int64) error
	DeleteServiciosByEDP(edpID int64) error
}

// EDPHistoricoRepository define el puerto para el historial de estados.
// Las entradas son inmutables: solo se insertan, se listan y se descartan
// en cascada al eliminar un EDP en Borrador.
type EDPHistoricoRepository interface {
	Create(h *entity.EDPEstadoHistorico) error
	// ListByEDP retorna el historial ordenado por fecha ascendente.
	ListByEDP(edpID int64) ([]*entity.EDPEstadoHistorico, error)
	DeleteByEDP(edpID int64) error
}
