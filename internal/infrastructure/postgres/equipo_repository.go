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

var _ repository.EquipoRepository = (*EquipoRepo)(nil)

// EquipoRepo implementación del puerto EquipoRepository sobre PostgreSQL.
type EquipoRepo struct {
	q Querier
}

// NewEquipoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquipoRepository(q Querier) *EquipoRepo {
	return &EquipoRepo{q: q}
}

// Create persiste un equipo del catálogo y asigna el ID generado.
func (r *EquipoRepo) Create(e *entity.Equipo) error {
	query := `
		INSERT INTO equipos (categoria_id, codigo, nombre, descripcion, tarifa_uf, estado_inv, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		e.CategoriaID, e.Codigo, e.Nombre, e.Descripcion, e.TarifaUF, e.EstadoInv, e.Activo,
		e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s ya existe", domain.ErrConflict, e.Codigo)
		}
		return fmt.Errorf("insert equipo: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por ID.
func (r *EquipoRepo) GetByID(id int64) (*entity.Equipo, error) {
	query := `
		SELECT id, categoria_id, codigo, nombre, descripcion, tarifa_uf, estado_inv, activo, created_at, updated_at
		FROM equipos WHERE id = $1`
	var e entity.Equipo
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.CategoriaID, &e.Codigo, &e.Nombre, &e.Descripcion, &e.TarifaUF, &e.EstadoInv,
		&e.Activo, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipo: %w", err)
	}
	return &e, nil
}

// List lista equipos con búsqueda (código o nombre) y paginación.
func (r *EquipoRepo) List(search string, limit, offset int) ([]*entity.Equipo, int64, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = ` WHERE codigo ILIKE $1 OR nombre ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	var total int64
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM equipos`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count equipos: %w", err)
	}
	query := fmt.Sprintf(`
		SELECT id, categoria_id, codigo, nombre, descripcion, tarifa_uf, estado_inv, activo, created_at, updated_at
		FROM equipos%s ORDER BY codigo LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list equipos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Equipo
	for rows.Next() {
		var e entity.Equipo
		if err := rows.Scan(&e.ID, &e.CategoriaID, &e.Codigo, &e.Nombre, &e.Descripcion, &e.TarifaUF,
			&e.EstadoInv, &e.Activo, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan equipo: %w", err)
		}
		list = append(list, &e)
	}
	return list, total, rows.Err()
}

// Update actualiza un equipo existente.
func (r *EquipoRepo) Update(e *entity.Equipo) error {
	query := `
		UPDATE equipos SET categoria_id = $2, codigo = $3, nombre = $4, descripcion = $5,
			tarifa_uf = $6, estado_inv = $7, activo = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.CategoriaID, e.Codigo, e.Nombre, e.Descripcion, e.TarifaUF, e.EstadoInv,
		e.Activo, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update equipo: %w", err)
	}
	return nil
}

// ListComponentes lista los componentes activos de un equipo.
func (r *EquipoRepo) ListComponentes(equipoID int64) ([]*entity.ComponenteEquipo, error) {
	query := `
		SELECT id, equipo_id, nombre, precio_uf, activo, created_at, updated_at
		FROM componentes_equipo WHERE equipo_id = $1 AND activo ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query, equipoID)
	if err != nil {
		return nil, fmt.Errorf("list componentes: %w", err)
	}
	defer rows.Close()
	var list []*entity.ComponenteEquipo
	for rows.Next() {
		var c entity.ComponenteEquipo
		if err := rows.Scan(&c.ID, &c.EquipoID, &c.Nombre, &c.PrecioUF, &c.Activo,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan componente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CreateComponente persiste un componente de equipo y asigna el ID generado.
func (r *EquipoRepo) CreateComponente(c *entity.ComponenteEquipo) error {
	query := `
		INSERT INTO componentes_equipo (equipo_id, nombre, precio_uf, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		c.EquipoID, c.Nombre, c.PrecioUF, c.Activo, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: equipo %d no existe", domain.ErrNotFound, c.EquipoID)
		}
		return fmt.Errorf("insert componente: %w", err)
	}
	return nil
}
