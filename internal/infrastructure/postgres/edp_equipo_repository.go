package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rentalsur/edp-api/internal/domain/entity"
	"github.com/rentalsur/edp-api/internal/domain/repository"
)

var _ repository.EDPEquipoRepository = (*EDPEquipoRepo)(nil)

// EDPEquipoRepo implementación del puerto EDPEquipoRepository sobre PostgreSQL.
// Maneja las líneas de equipo y sus servicios asociados.
type EDPEquipoRepo struct {
	q Querier
}

// NewEDPEquipoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEDPEquipoRepository(q Querier) *EDPEquipoRepo {
	return &EDPEquipoRepo{q: q}
}

// Create persiste una línea de equipo y asigna el ID generado.
func (r *EDPEquipoRepo) Create(eq *entity.EDPEquipo) error {
	query := `
		INSERT INTO edp_equipos (edp_id, equipo_id, cantidad, configuracion, tarifa_uf, subtotal_uf, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		eq.EDPID, eq.EquipoID, eq.Cantidad, eq.Configuracion, eq.TarifaUF, eq.SubtotalUF,
		eq.CreatedAt, eq.UpdatedAt,
	).Scan(&eq.ID)
	if err != nil {
		return fmt.Errorf("insert edp_equipo: %w", err)
	}
	return nil
}

// GetByID obtiene una línea de equipo por ID (sin servicios).
func (r *EDPEquipoRepo) GetByID(id int64) (*entity.EDPEquipo, error) {
	query := `
		SELECT id, edp_id, equipo_id, cantidad, configuracion, tarifa_uf, subtotal_uf, created_at, updated_at
		FROM edp_equipos WHERE id = $1`
	var eq entity.EDPEquipo
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&eq.ID, &eq.EDPID, &eq.EquipoID, &eq.Cantidad, &eq.Configuracion, &eq.TarifaUF, &eq.SubtotalUF,
		&eq.CreatedAt, &eq.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get edp_equipo: %w", err)
	}
	return &eq, nil
}

// ListByEDP retorna las líneas del EDP con sus servicios cargados,
// en orden de inserción.
func (r *EDPEquipoRepo) ListByEDP(edpID int64) ([]*entity.EDPEquipo, error) {
	query := `
		SELECT id, edp_id, equipo_id, cantidad, configuracion, tarifa_uf, subtotal_uf, created_at, updated_at
		FROM edp_equipos WHERE edp_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, edpID)
	if err != nil {
		return nil, fmt.Errorf("list edp_equipos: %w", err)
	}
	defer rows.Close()
	var list []*entity.EDPEquipo
	byID := map[int64]*entity.EDPEquipo{}
	for rows.Next() {
		var eq entity.EDPEquipo
		if err := rows.Scan(&eq.ID, &eq.EDPID, &eq.EquipoID, &eq.Cantidad, &eq.Configuracion,
			&eq.TarifaUF, &eq.SubtotalUF, &eq.CreatedAt, &eq.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan edp_equipo: %w", err)
		}
		list = append(list, &eq)
		byID[eq.ID] = &eq
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	svQuery := `
		SELECT s.id, s.edp_equipo_id, s.tipo_servicio_id, s.cantidad, s.precio_unitario, s.subtotal, s.created_at, s.updated_at
		FROM edp_servicios s
		JOIN edp_equipos e ON e.id = s.edp_equipo_id
		WHERE e.edp_id = $1 ORDER BY s.id`
	svRows, err := r.q.Query(context.Background(), svQuery, edpID)
	if err != nil {
		return nil, fmt.Errorf("list edp_servicios: %w", err)
	}
	defer svRows.Close()
	for svRows.Next() {
		var sv entity.EDPServicio
		if err := svRows.Scan(&sv.ID, &sv.EDPEquipoID, &sv.TipoServicioID, &sv.Cantidad,
			&sv.PrecioUnitario, &sv.Subtotal, &sv.CreatedAt, &sv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan edp_servicio: %w", err)
		}
		if eq, ok := byID[sv.EDPEquipoID]; ok {
			eq.Servicios = append(eq.Servicios, &sv)
		}
	}
	return list, svRows.Err()
}

// Delete elimina una línea de equipo y sus servicios.
func (r *EDPEquipoRepo) Delete(id int64) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM edp_servicios WHERE edp_equipo_id = $1`, id); err != nil {
		return fmt.Errorf("delete edp_servicios de línea: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM edp_equipos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete edp_equipo: %w", err)
	}
	return nil
}

// DeleteByEDP elimina todas las líneas de equipo de un EDP.
func (r *EDPEquipoRepo) DeleteByEDP(edpID int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM edp_equipos WHERE edp_id = $1`, edpID)
	if err != nil {
		return fmt.Errorf("delete edp_equipos: %w", err)
	}
	return nil
}

// CreateServicio persiste un servicio de una línea y asigna el ID generado.
func (r *EDPEquipoRepo) CreateServicio(sv *entity.EDPServicio) error {
	query := `
		INSERT INTO edp_servicios (edp_equipo_id, tipo_servicio_id, cantidad, precio_unitario, subtotal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		sv.EDPEquipoID, sv.TipoServicioID, sv.Cantidad, sv.PrecioUnitario, sv.Subtotal,
		sv.CreatedAt, sv.UpdatedAt,
	).Scan(&sv.ID)
	if err != nil {
		return fmt.Errorf("insert edp_servicio: %w", err)
	}
	return nil
}

// GetServicioByID obtiene un servicio por ID.
func (r *EDPEquipoRepo) GetServicioByID(id int64) (*entity.EDPServicio, error) {
	query := `
		SELECT id, edp_equipo_id, tipo_servicio_id, cantidad, precio_unitario, subtotal, created_at, updated_at
		FROM edp_servicios WHERE id = $1`
	var sv entity.EDPServicio
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&sv.ID, &sv.EDPEquipoID, &sv.TipoServicioID, &sv.Cantidad, &sv.PrecioUnitario, &sv.Subtotal,
		&sv.CreatedAt, &sv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get edp_servicio: %w", err)
	}
	return &sv, nil
}

// DeleteServicio elimina un servicio por ID.
func (r *EDPEquipoRepo) DeleteServicio(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM edp_servicios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete edp_servicio: %w", err)
	}
	return nil
}

// DeleteServiciosByEDP elimina los servicios de todas las líneas de un EDP.
func (r *EDPEquipoRepo) DeleteServiciosByEDP(edpID int64) error {
	query := `
		DELETE FROM edp_servicios s
		USING edp_equipos e
		WHERE e.id = s.edp_equipo_id AND e.edp_id = $1`
	_, err := r.q.Exec(context.Background(), query, edpID)
	if err != nil {
		return fmt.Errorf("delete edp_servicios: %w", err)
	}
	return nil
}
