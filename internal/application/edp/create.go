package edp

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentalsur/edp-api/internal/application/dto"
	"github.com/rentalsur/edp-api/internal/domain"
	"github.com/rentalsur/edp-api/internal/domain/entity"
	"github.com/rentalsur/edp-api/internal/domain/repository"
	"github.com/rentalsur/edp-api/internal/observability/metrics"
)

// Create crea un EDP en estado Borrador con importe cero y registra la
// primera entrada del historial en la misma transacción.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateEDPRequest, usuarioID int64) (*dto.EDPResponse, error) {
	if in.Codigo == "" || len(in.Codigo) > 50 {
		return nil, fmt.Errorf("%w: código requerido (máximo 50 caracteres)", domain.ErrInvalidInput)
	}
	if in.ClienteID <= 0 || in.ObraID <= 0 || in.FechaInicio.IsZero() {
		return nil, fmt.Errorf("%w: cliente, obra y fecha de inicio son requeridos", domain.ErrInvalidInput)
	}
	if err := validarFechas(in.FechaInicio, in.FechaTermino); err != nil {
		return nil, err
	}
	unidad := in.UnidadAlquiler
	if unidad == "" {
		unidad = entity.UnidadUF
	}
	if unidad != entity.UnidadUF && unidad != entity.UnidadPesos {
		return nil, fmt.Errorf("%w: unidad de alquiler no válida: %q", domain.ErrInvalidInput, unidad)
	}

	// Cliente y obra deben existir, y la obra pertenecer al cliente
	cliente, err := uc.clienteRepo.GetByID(in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, fmt.Errorf("%w: cliente %d", domain.ErrNotFound, in.ClienteID)
	}
	obra, err := uc.obraRepo.GetByID(in.ObraID)
	if err != nil {
		return nil, err
	}
	if obra == nil {
		return nil, fmt.Errorf("%w: obra %d", domain.ErrNotFound, in.ObraID)
	}
	if obra.ClienteID != in.ClienteID {
		return nil, domain.ErrInvalidRelationship
	}

	// El código debe ser único entre todos los EDPs, pasados o presentes
	existe, err := uc.edpRepo.ExistsCodigo(in.Codigo, 0)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, fmt.Errorf("%w: ya existe un EDP con el código %s", domain.ErrConflict, in.Codigo)
	}

	now := time.Now()
	e := &entity.EDP{
		Codigo:         in.Codigo,
		ClienteID:      in.ClienteID,
		ObraID:         in.ObraID,
		OrdenCompra:    in.OrdenCompra,
		FechaInicio:    in.FechaInicio,
		FechaCorte:     in.FechaCorte,
		FechaTermino:   in.FechaTermino,
		UnidadAlquiler: unidad,
		Estado:         entity.EstadoInicial,
		ImporteTotal:   decimal.Zero,
		UsuarioID:      usuarioID,
		Comentarios:    in.Observaciones,
		URLOrdenCompra: in.URLOrdenCompra,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.RunEDP(ctx, func(
		edpRepo repository.EDPRepository,
		_ repository.EDPEquipoRepository,
		histRepo repository.EDPHistoricoRepository,
	) error {
		if err := edpRepo.Create(e); err != nil {
			return err
		}
		return histRepo.Create(&entity.EDPEstadoHistorico{
			EDPID:       e.ID,
			EstadoNuevo: entity.EstadoInicial,
			Fecha:       now,
			UsuarioID:   usuarioID,
			Comentario:  "EDP creado",
		})
	})
	if err != nil {
		return nil, err
	}
	metrics.EDPCreated()

	return toResponse(e, nil), nil
}

// Update actualiza un EDP en Borrador. Los campos nulos del request no se
// tocan; estado e importe total nunca se modifican por esta vía.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.UpdateEDPRequest) (*dto.EDPResponse, error) {
	e, err := uc.edpRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if e.Estado != entity.EstadoBorrador {
		return nil, fmt.Errorf("%w: solo se pueden editar EDPs en estado Borrador", domain.ErrInvalidState)
	}

	if in.Codigo != nil && *in.Codigo != e.Codigo {
		if *in.Codigo == "" || len(*in.Codigo) > 50 {
			return nil, fmt.Errorf("%w: código requerido (máximo 50 caracteres)", domain.ErrInvalidInput)
		}
		existe, err := uc.edpRepo.ExistsCodigo(*in.Codigo, id)
		if err != nil {
			return nil, err
		}
		if existe {
			return nil, fmt.Errorf("%w: ya existe otro EDP con el código %s", domain.ErrConflict, *in.Codigo)
		}
		e.Codigo = *in.Codigo
	}
	if in.FechaInicio != nil {
		e.FechaInicio = *in.FechaInicio
	}
	if in.FechaCorte != nil {
		e.FechaCorte = in.FechaCorte
	}
	if in.FechaTermino != nil {
		e.FechaTermino = in.FechaTermino
	}
	if err := validarFechas(e.FechaInicio, e.FechaTermino); err != nil {
		return nil, err
	}
	if in.OrdenCompra != nil {
		e.OrdenCompra = *in.OrdenCompra
	}
	if in.Observaciones != nil {
		e.Comentarios = *in.Observaciones
	}
	if in.URLOrdenCompra != nil {
		e.URLOrdenCompra = *in.URLOrdenCompra
	}
	e.UpdatedAt = time.Now()

	if err := uc.edpRepo.Update(e); err != nil {
		return nil, err
	}
	lineas, err := uc.lineaRepo.ListByEDP(id)
	if err != nil {
		return nil, err
	}
	return toResponse(e, lineas), nil
}

// Delete elimina un EDP en Borrador junto con sus líneas, servicios e
// historial, como una sola transacción. Fuera de Borrador nunca se elimina.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	e, err := uc.edpRepo.GetByID(id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	if e.Estado != entity.EstadoBorrador {
		return fmt.Errorf("%w: solo se pueden eliminar EDPs en estado Borrador", domain.ErrInvalidState)
	}

	err = uc.txRunner.RunEDP(ctx, func(
		edpRepo repository.EDPRepository,
		lineaRepo repository.EDPEquipoRepository,
		histRepo repository.EDPHistoricoRepository,
	) error {
		if err := lineaRepo.DeleteServiciosByEDP(id); err != nil {
			return err
		}
		if err := lineaRepo.DeleteByEDP(id); err != nil {
			return err
		}
		if err := histRepo.DeleteByEDP(id); err != nil {
			return err
		}
		return edpRepo.Delete(id)
	})
	if err != nil {
		return err
	}
	metrics.EDPDeleted()
	return nil
}

// validarFechas exige fecha de término estrictamente posterior a la de inicio.
func validarFechas(inicio time.Time, termino *time.Time) error {
	if termino != nil && !termino.After(inicio) {
		return fmt.Errorf("%w: fecha de término debe ser posterior a fecha de inicio", domain.ErrInvalidInput)
	}
	return nil
}
