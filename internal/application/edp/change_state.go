package edp

import (
	"context"
	"fmt"
	"time"

	"github.com/rentalsur/edp-api/internal/application/dto"
	"github.com/rentalsur/edp-api/internal/domain"
	"github.com/rentalsur/edp-api/internal/domain/entity"
	"github.com/rentalsur/edp-api/internal/domain/repository"
	"github.com/rentalsur/edp-api/internal/observability/metrics"
)

// CambiarEstado transiciona un EDP validando contra la máquina de estados y
// registra la entrada de historial en la misma transacción. El estado se
// relee con bloqueo de fila dentro de la transacción, de modo que dos
// transiciones concurrentes sobre el mismo EDP no puedan pisarse.
func (uc *UseCase) CambiarEstado(ctx context.Context, id int64, nuevoEstado, comentario string, usuarioID int64) (*dto.EDPResponse, error) {
	nuevo, err := entity.ParseEstado(nuevoEstado)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	inicio := time.Now()
	var desde entity.Estado
	var actualizado *entity.EDP
	err = uc.txRunner.RunEDP(ctx, func(
		edpRepo repository.EDPRepository,
		_ repository.EDPEquipoRepository,
		histRepo repository.EDPHistoricoRepository,
	) error {
		e, err := edpRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrNotFound
		}
		actual := e.Estado
		desde = actual

		if err := uc.maquina.ValidateTransition(actual, nuevo); err != nil {
			return err
		}

		ok, err := edpRepo.UpdateEstado(id, actual, nuevo)
		if err != nil {
			return err
		}
		if !ok {
			// La fila ya no estaba en el estado leído: otra transición ganó.
			return fmt.Errorf("%w: el estado del EDP cambió durante la operación", domain.ErrConflict)
		}

		if comentario == "" {
			comentario = fmt.Sprintf("Cambio de estado de %s a %s", actual, nuevo)
		}
		now := time.Now()
		if err := histRepo.Create(&entity.EDPEstadoHistorico{
			EDPID:          id,
			EstadoAnterior: &actual,
			EstadoNuevo:    nuevo,
			Fecha:          now,
			UsuarioID:      usuarioID,
			Comentario:     comentario,
		}); err != nil {
			return err
		}

		e.Estado = nuevo
		e.UpdatedAt = now
		actualizado = e
		return nil
	})
	if desde != "" {
		metrics.Transition(string(desde), string(nuevo), err == nil, time.Since(inicio))
	}
	if err != nil {
		return nil, err
	}

	lineas, err := uc.lineaRepo.ListByEDP(id)
	if err != nil {
		return nil, err
	}
	return toResponse(actualizado, lineas), nil
}
