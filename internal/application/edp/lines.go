package edp

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentalsur/edp-api/internal/application/dto"
	"github.com/rentalsur/edp-api/internal/domain"
	domedp "github.com/rentalsur/edp-api/internal/domain/edp"
	"github.com/rentalsur/edp-api/internal/domain/entity"
	"github.com/rentalsur/edp-api/internal/domain/repository"
)

// AgregarEquipo agrega una línea de equipo a un EDP en Borrador. La tarifa
// del catálogo se captura en la línea; el importe total se recalcula en la
// misma transacción.
func (uc *UseCase) AgregarEquipo(ctx context.Context, edpID int64, in dto.AgregarEquipoRequest) (*dto.EDPResponse, error) {
	if in.Cantidad <= 0 {
		return nil, fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	equipo, err := uc.catalogoRepo.GetByID(in.EquipoID)
	if err != nil {
		return nil, err
	}
	if equipo == nil {
		return nil, fmt.Errorf("%w: equipo %d", domain.ErrNotFound, in.EquipoID)
	}

	now := time.Now()
	linea := &entity.EDPEquipo{
		EDPID:         edpID,
		EquipoID:      in.EquipoID,
		Cantidad:      in.Cantidad,
		Configuracion: in.Configuracion,
		TarifaUF:      equipo.TarifaUF,
		SubtotalUF:    domedp.SubtotalEquipo(in.Cantidad, equipo.TarifaUF),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return uc.mutarLineas(ctx, edpID, func(lineaRepo repository.EDPEquipoRepository) error {
		return lineaRepo.Create(linea)
	})
}

// EliminarEquipo elimina una línea de equipo (y sus servicios) de un EDP en
// Borrador y recalcula el importe total.
func (uc *UseCase) EliminarEquipo(ctx context.Context, edpID, lineaID int64) (*dto.EDPResponse, error) {
	return uc.mutarLineas(ctx, edpID, func(lineaRepo repository.EDPEquipoRepository) error {
		linea, err := lineaRepo.GetByID(lineaID)
		if err != nil {
			return err
		}
		if linea == nil || linea.EDPID != edpID {
			return fmt.Errorf("%w: línea %d", domain.ErrNotFound, lineaID)
		}
		return lineaRepo.Delete(lineaID)
	})
}

// AgregarServicio agrega un servicio a una línea de equipo de un EDP en
// Borrador. Si el precio unitario va en cero se usa el del tipo de servicio.
func (uc *UseCase) AgregarServicio(ctx context.Context, edpID, lineaID int64, in dto.AgregarServicioRequest) (*dto.EDPResponse, error) {
	if !in.Cantidad.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if in.PrecioUnitario.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: precio unitario no puede ser negativo", domain.ErrInvalidInput)
	}
	tipo, err := uc.tipoSvcRepo.GetByID(in.TipoServicioID)
	if err != nil {
		return nil, err
	}
	if tipo == nil {
		return nil, fmt.Errorf("%w: tipo de servicio %d", domain.ErrNotFound, in.TipoServicioID)
	}
	precio := in.PrecioUnitario
	if precio.IsZero() {
		precio = tipo.PrecioUnitario
	}

	now := time.Now()
	return uc.mutarLineas(ctx, edpID, func(lineaRepo repository.EDPEquipoRepository) error {
		linea, err := lineaRepo.GetByID(lineaID)
		if err != nil {
			return err
		}
		if linea == nil || linea.EDPID != edpID {
			return fmt.Errorf("%w: línea %d", domain.ErrNotFound, lineaID)
		}
		return lineaRepo.CreateServicio(&entity.EDPServicio{
			EDPEquipoID:    lineaID,
			TipoServicioID: in.TipoServicioID,
			Cantidad:       in.Cantidad,
			PrecioUnitario: precio,
			Subtotal:       domedp.SubtotalServicio(in.Cantidad, precio),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	})
}

// EliminarServicio quita un servicio de una línea y recalcula el total.
func (uc *UseCase) EliminarServicio(ctx context.Context, edpID, servicioID int64) (*dto.EDPResponse, error) {
	return uc.mutarLineas(ctx, edpID, func(lineaRepo repository.EDPEquipoRepository) error {
		sv, err := lineaRepo.GetServicioByID(servicioID)
		if err != nil {
			return err
		}
		if sv == nil {
			return fmt.Errorf("%w: servicio %d", domain.ErrNotFound, servicioID)
		}
		linea, err := lineaRepo.GetByID(sv.EDPEquipoID)
		if err != nil {
			return err
		}
		if linea == nil || linea.EDPID != edpID {
			return fmt.Errorf("%w: servicio %d", domain.ErrNotFound, servicioID)
		}
		return lineaRepo.DeleteServicio(servicioID)
	})
}

// mutarLineas ejecuta una mutación de líneas dentro de una transacción:
// bloquea el EDP, exige estado Borrador, aplica fn y deja importe_total
// igual a la suma recalculada de las líneas resultantes.
func (uc *UseCase) mutarLineas(ctx context.Context, edpID int64, fn func(repository.EDPEquipoRepository) error) (*dto.EDPResponse, error) {
	var (
		actualizado *entity.EDP
		lineas      []*entity.EDPEquipo
	)
	err := uc.txRunner.RunEDP(ctx, func(
		edpRepo repository.EDPRepository,
		lineaRepo repository.EDPEquipoRepository,
		_ repository.EDPHistoricoRepository,
	) error {
		e, err := edpRepo.GetByIDForUpdate(edpID)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrNotFound
		}
		if e.Estado != entity.EstadoBorrador {
			return fmt.Errorf("%w: las líneas solo se modifican en estado Borrador", domain.ErrInvalidState)
		}

		if err := fn(lineaRepo); err != nil {
			return err
		}

		lineas, err = lineaRepo.ListByEDP(edpID)
		if err != nil {
			return err
		}
		totales := domedp.CalcularTotales(lineas)
		if err := edpRepo.UpdateImporteTotal(edpID, totales.ImporteTotal); err != nil {
			return err
		}
		e.ImporteTotal = totales.ImporteTotal
		actualizado = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(actualizado, lineas), nil
}
