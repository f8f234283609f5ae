package postgres

import (
	"context"
	"fmt"

	"github.com/rentalsur/edp-api/internal/domain/entity"
	"github.com/rentalsur/edp-api/internal/domain/repository"
)

var _ repository.EDPHistoricoRepository = (*EDPHistoricoRepo)(nil)

// EDPHistoricoRepo implementación del puerto EDPHistoricoRepository sobre
// PostgreSQL. Las entradas son inmutables: no hay Update.
type EDPHistoricoRepo struct {
	q Querier
}

// NewEDPHistoricoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEDPHistoricoRepository(q Querier) *EDPHistoricoRepo {
	return &EDPHistoricoRepo{q: q}
}

// Create persiste una entrada del historial y asigna el ID generado.
func (r *EDPHistoricoRepo) Create(h *entity.EDPEstadoHistorico) error {
	query := `
		INSERT INTO edp_estados_historico (edp_id, estado_anterior, estado_nuevo, fecha, usuario_id, comentario, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		h.EDPID, h.EstadoAnterior, h.EstadoNuevo, h.Fecha, h.UsuarioID, h.Comentario, h.CreatedAt,
	).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("insert edp_estados_historico: %w", err)
	}
	return nil
}

// ListByEDP retorna el historial ordenado por fecha ascendente.
func (r *EDPHistoricoRepo) ListByEDP(edpID int64) ([]*entity.EDPEstadoHistorico, error) {
	query := `
		SELECT id, edp_id, estado_anterior, estado_nuevo, fecha, usuario_id, comentario, created_at
		FROM edp_estados_historico WHERE edp_id = $1 ORDER BY fecha, id`
	rows, err := r.q.Query(context.Background(), query, edpID)
	if err != nil {
		return nil, fmt.Errorf("list historial: %w", err)
	}
	defer rows.Close()
	var list []*entity.EDPEstadoHistorico
	for rows.Next() {
		var h entity.EDPEstadoHistorico
		if err := rows.Scan(&h.ID, &h.EDPID, &h.EstadoAnterior, &h.EstadoNuevo, &h.Fecha,
			&h.UsuarioID, &h.Comentario, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan historial: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// DeleteByEDP descarta el historial de un EDP (solo al eliminar un Borrador).
func (r *EDPHistoricoRepo) DeleteByEDP(edpID int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM edp_estados_historico WHERE edp_id = $1`, edpID)
	if err != nil {
		return fmt.Errorf("delete historial: %w", err)
	}
	return nil
}
