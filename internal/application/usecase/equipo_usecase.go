package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentalsur/edp-api/internal/application/dto"
	"github.com/rentalsur/edp-api/internal/domain"
	"github.com/rentalsur/edp-api/internal/domain/entity"
	"github.com/rentalsur/edp-api/internal/domain/repository"
)

// EquipoUseCase aplica reglas de negocio para el catálogo de equipos.
type EquipoUseCase struct {
	repo repository.EquipoRepository
}

// NewEquipoUseCase construye el caso de uso con el puerto de persistencia.
func NewEquipoUseCase(repo repository.EquipoRepository) *EquipoUseCase {
	return &EquipoUseCase{repo: repo}
}

// Create crea un equipo en el catálogo. La tarifa en UF no puede ser negativa.
func (uc *EquipoUseCase) Create(in dto.CreateEquipoRequest) (*dto.EquipoResponse, error) {
	if in.Codigo == "" || in.Nombre == "" {
		return nil, fmt.Errorf("%w: código y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if in.TarifaUF.IsNegative() {
		return nil, fmt.Errorf("%w: la tarifa en UF no puede ser negativa", domain.ErrInvalidInput)
	}
	now := time.Now()
	e := &entity.Equipo{
		CategoriaID: in.CategoriaID,
		Codigo:      in.Codigo,
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		TarifaUF:    in.TarifaUF,
		EstadoInv:   entity.EquipoDisponible,
		Activo:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(e); err != nil {
		return nil, err
	}
	return toEquipoResponse(e), nil
}

// GetByID obtiene un equipo por ID.
func (uc *EquipoUseCase) GetByID(id int64) (*dto.EquipoResponse, error) {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toEquipoResponse(e), nil
}

// List lista equipos con búsqueda y paginación.
func (uc *EquipoUseCase) List(search string, page dto.PageRequest) ([]dto.EquipoResponse, int64, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(search, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.EquipoResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEquipoResponse(e))
	}
	return items, total, nil
}

// ActualizarTarifa cambia la tarifa vigente del catálogo. Las líneas de
// EDP ya creadas conservan la tarifa que capturaron.
func (uc *EquipoUseCase) ActualizarTarifa(id int64, tarifa decimal.Decimal) (*dto.EquipoResponse, error) {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if tarifa.IsNegative() {
		return nil, fmt.Errorf("%w: la tarifa en UF no puede ser negativa", domain.ErrInvalidInput)
	}
	e.TarifaUF = tarifa
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(e); err != nil {
		return nil, err
	}
	return toEquipoResponse(e), nil
}

func toEquipoResponse(e *entity.Equipo) *dto.EquipoResponse {
	if e == nil {
		return nil
	}
	return &dto.EquipoResponse{
		ID:          e.ID,
		CategoriaID: e.CategoriaID,
		Codigo:      e.Codigo,
		Nombre:      e.Nombre,
		Descripcion: e.Descripcion,
		TarifaUF:    e.TarifaUF,
		EstadoInv:   e.EstadoInv,
		Activo:      e.Activo,
	}
}
