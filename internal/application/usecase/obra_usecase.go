package usecase

import (
	"fmt"
	"time"

	"github.com/rentalsur/edp-api/internal/application/dto"
	"github.com/rentalsur/edp-api/internal/domain"
	"github.com/rentalsur/edp-api/internal/domain/entity"
	"github.com/rentalsur/edp-api/internal/domain/repository"
)

// ObraUseCase aplica reglas de negocio para obras.
type ObraUseCase struct {
	repo        repository.ObraRepository
	clienteRepo repository.ClienteRepository
}

// NewObraUseCase construye el caso de uso con sus puertos.
func NewObraUseCase(repo repository.ObraRepository, clienteRepo repository.ClienteRepository) *ObraUseCase {
	return &ObraUseCase{repo: repo, clienteRepo: clienteRepo}
}

// Create crea una obra. El cliente debe existir.
func (uc *ObraUseCase) Create(in dto.CreateObraRequest) (*dto.ObraResponse, error) {
	if in.Nombre == "" {
		return nil, fmt.Errorf("%w: nombre es obligatorio", domain.ErrInvalidInput)
	}
	cliente, err := uc.clienteRepo.GetByID(in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, fmt.Errorf("%w: cliente %d no existe", domain.ErrNotFound, in.ClienteID)
	}
	now := time.Now()
	o := &entity.Obra{
		ClienteID: in.ClienteID,
		Nombre:    in.Nombre,
		Direccion: in.Direccion,
		Comuna:    in.Comuna,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(o); err != nil {
		return nil, err
	}
	return toObraResponse(o), nil
}

// GetByID obtiene una obra por ID.
func (uc *ObraUseCase) GetByID(id int64) (*dto.ObraResponse, error) {
	o, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return toObraResponse(o), nil
}

// ListByCliente lista las obras de un cliente.
func (uc *ObraUseCase) ListByCliente(clienteID int64) ([]dto.ObraResponse, error) {
	cliente, err := uc.clienteRepo.GetByID(clienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByCliente(clienteID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ObraResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toObraResponse(o))
	}
	return items, nil
}

// List lista obras con paginación.
func (uc *ObraUseCase) List(page dto.PageRequest) ([]dto.ObraResponse, int64, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.ObraResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toObraResponse(o))
	}
	return items, total, nil
}

func toObraResponse(o *entity.Obra) *dto.ObraResponse {
	if o == nil {
		return nil
	}
	return &dto.ObraResponse{
		ID:        o.ID,
		ClienteID: o.ClienteID,
		Nombre:    o.Nombre,
		Direccion: o.Direccion,
		Comuna:    o.Comuna,
		Activo:    o.Activo,
	}
}
