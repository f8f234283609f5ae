package usecase

import (
	"fmt"
	"time"

	"github.com/rentalsur/edp-api/internal/application/dto"
	"github.com/rentalsur/edp-api/internal/domain"
	"github.com/rentalsur/edp-api/internal/domain/entity"
	"github.com/rentalsur/edp-api/internal/domain/repository"
	"github.com/rentalsur/edp-api/pkg/rut"
)

// ClienteUseCase aplica reglas de negocio para clientes.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso con el puerto de persistencia.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

// Create crea un cliente. El RUT se valida con módulo 11 y se almacena
// formateado; devuelve ErrConflict si ya existe un cliente con ese RUT.
func (uc *ClienteUseCase) Create(in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	if in.Empresa == "" {
		return nil, fmt.Errorf("%w: empresa es obligatoria", domain.ErrInvalidInput)
	}
	formateado, err := normalizarRUT(in.RUT)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByRUT(formateado)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un cliente con RUT %s", domain.ErrConflict, formateado)
	}
	now := time.Now()
	c := &entity.Cliente{
		Empresa:   in.Empresa,
		RUT:       formateado,
		Direccion: in.Direccion,
		Giro:      in.Giro,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return toClienteResponse(c), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClienteUseCase) GetByID(id int64) (*dto.ClienteResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toClienteResponse(c), nil
}

// List lista clientes con búsqueda y paginación.
func (uc *ClienteUseCase) List(search string, page dto.PageRequest) ([]dto.ClienteResponse, int64, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(search, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClienteResponse(c))
	}
	return items, total, nil
}

// Update actualiza un cliente. Campos nulos no se tocan; si viene un RUT
// nuevo se valida y formatea igual que en Create.
func (uc *ClienteUseCase) Update(id int64, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Empresa != nil {
		c.Empresa = *in.Empresa
	}
	if in.RUT != nil {
		formateado, err := normalizarRUT(*in.RUT)
		if err != nil {
			return nil, err
		}
		if formateado != c.RUT {
			existing, err := uc.repo.GetByRUT(formateado)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, fmt.Errorf("%w: ya existe un cliente con RUT %s", domain.ErrConflict, formateado)
			}
		}
		c.RUT = formateado
	}
	if in.Direccion != nil {
		c.Direccion = *in.Direccion
	}
	if in.Giro != nil {
		c.Giro = *in.Giro
	}
	if in.Activo != nil {
		c.Activo = *in.Activo
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return toClienteResponse(c), nil
}

// Delete desactiva un cliente (borrado lógico en el repositorio).
func (uc *ClienteUseCase) Delete(id int64) error {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func normalizarRUT(valor string) (string, error) {
	if !rut.Validate(valor) {
		return "", fmt.Errorf("%w: RUT no válido: %q", domain.ErrInvalidInput, valor)
	}
	return rut.Format(valor), nil
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	if c == nil {
		return nil
	}
	return &dto.ClienteResponse{
		ID:        c.ID,
		Empresa:   c.Empresa,
		RUT:       c.RUT,
		Direccion: c.Direccion,
		Giro:      c.Giro,
		Activo:    c.Activo,
	}
}
