package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rentalsur/edp-api/internal/domain"
	"github.com/rentalsur/edp-api/internal/domain/entity"
	"github.com/rentalsur/edp-api/internal/domain/repository"
)

var _ repository.TipoServicioRepository = (*TipoServicioRepo)(nil)

// TipoServicioRepo implementación del puerto TipoServicioRepository sobre PostgreSQL.
type TipoServicioRepo struct {
	q Querier
}

// NewTipoServicioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTipoServicioRepository(q Querier) *TipoServicioRepo {
	return &TipoServicioRepo{q: q}
}

// Create persiste un tipo de servicio y asigna el ID generado.
func (r *TipoServicioRepo) Create(ts *entity.TipoServicio) error {
	query := `
		INSERT INTO tipos_servicio (nombre, precio_unitario, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		ts.Nombre, ts.PrecioUnitario, ts.Activo, ts.CreatedAt, ts.UpdatedAt,
	).Scan(&ts.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tipo de servicio %s ya existe", domain.ErrConflict, ts.Nombre)
		}
		return fmt.Errorf("insert tipo_servicio: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de servicio por ID.
func (r *TipoServicioRepo) GetByID(id int64) (*entity.TipoServicio, error) {
	query := `
		SELECT id, nombre, precio_unitario, activo, created_at, updated_at
		FROM tipos_servicio WHERE id = $1`
	var ts entity.TipoServicio
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&ts.ID, &ts.Nombre, &ts.PrecioUnitario, &ts.Activo, &ts.CreatedAt, &ts.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tipo_servicio: %w", err)
	}
	return &ts, nil
}

// List lista todos los tipos de servicio.
func (r *TipoServicioRepo) List() ([]*entity.TipoServicio, error) {
	query := `
		SELECT id, nombre, precio_unitario, activo, created_at, updated_at
		FROM tipos_servicio ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list tipos_servicio: %w", err)
	}
	defer rows.Close()
	var list []*entity.TipoServicio
	for rows.Next() {
		var ts entity.TipoServicio
		if err := rows.Scan(&ts.ID, &ts.Nombre, &ts.PrecioUnitario, &ts.Activo,
			&ts.CreatedAt, &ts.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tipo_servicio: %w", err)
		}
		list = append(list, &ts)
	}
	return list, rows.Err()
}

// Update actualiza un tipo de servicio existente.
func (r *TipoServicioRepo) Update(ts *entity.TipoServicio) error {
	query := `
		UPDATE tipos_servicio SET nombre = $2, precio_unitario = $3, activo = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		ts.ID, ts.Nombre, ts.PrecioUnitario, ts.Activo, ts.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tipo_servicio: %w", err)
	}
	return nil
}
