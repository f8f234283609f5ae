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

// TipoServicioUseCase administra el catálogo de tipos de servicio.
type TipoServicioUseCase struct {
	repo repository.TipoServicioRepository
}

// NewTipoServicioUseCase construye el caso de uso.
func NewTipoServicioUseCase(repo repository.TipoServicioRepository) *TipoServicioUseCase {
	return &TipoServicioUseCase{repo: repo}
}

// Create crea un tipo de servicio con su precio sugerido en pesos.
func (uc *TipoServicioUseCase) Create(nombre string, precio decimal.Decimal) (*dto.TipoServicioResponse, error) {
	if nombre == "" {
		return nil, fmt.Errorf("%w: nombre es obligatorio", domain.ErrInvalidInput)
	}
	if precio.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	now := time.Now()
	ts := &entity.TipoServicio{
		Nombre:         nombre,
		PrecioUnitario: precio,
		Activo:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ts); err != nil {
		return nil, err
	}
	return toTipoServicioResponse(ts), nil
}

// List lista todos los tipos de servicio.
func (uc *TipoServicioUseCase) List() ([]dto.TipoServicioResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.TipoServicioResponse, 0, len(list))
	for _, ts := range list {
		items = append(items, *toTipoServicioResponse(ts))
	}
	return items, nil
}

func toTipoServicioResponse(ts *entity.TipoServicio) *dto.TipoServicioResponse {
	if ts == nil {
		return nil
	}
	return &dto.TipoServicioResponse{
		ID:             ts.ID,
		Nombre:         ts.Nombre,
		PrecioUnitario: ts.PrecioUnitario,
		Activo:         ts.Activo,
	}
}
