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

var _ repository.ObraRepository = (*ObraRepo)(nil)

// ObraRepo implementación del puerto ObraRepository sobre PostgreSQL.
type ObraRepo struct {
	q Querier
}

// NewObraRepository construye el adaptador. Pasar pool o tx (Querier).
func NewObraRepository(q Querier) *ObraRepo {
	return &ObraRepo{q: q}
}

// Create persiste una obra y asigna el ID generado.
func (r *ObraRepo) Create(o *entity.Obra) error {
	query := `
		INSERT INTO obras (cliente_id, nombre, direccion, comuna, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		o.ClienteID, o.Nombre, o.Direccion, o.Comuna, o.Activo, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente %d no existe", domain.ErrNotFound, o.ClienteID)
		}
		return fmt.Errorf("insert obra: %w", err)
	}
	return nil
}

// GetByID obtiene una obra por ID.
func (r *ObraRepo) GetByID(id int64) (*entity.Obra, error) {
	query := `
		SELECT id, cliente_id, nombre, direccion, comuna, activo, created_at, updated_at
		FROM obras WHERE id = $1`
	var o entity.Obra
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.ClienteID, &o.Nombre, &o.Direccion, &o.Comuna, &o.Activo, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get obra: %w", err)
	}
	return &o, nil
}

// ListByCliente lista las obras de un cliente.
func (r *ObraRepo) ListByCliente(clienteID int64) ([]*entity.Obra, error) {
	query := `
		SELECT id, cliente_id, nombre, direccion, comuna, activo, created_at, updated_at
		FROM obras WHERE cliente_id = $1 ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query, clienteID)
	if err != nil {
		return nil, fmt.Errorf("list obras by cliente: %w", err)
	}
	defer rows.Close()
	return scanObras(rows)
}

// List lista obras con paginación.
func (r *ObraRepo) List(limit, offset int) ([]*entity.Obra, int64, error) {
	var total int64
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM obras`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count obras: %w", err)
	}
	query := `
		SELECT id, cliente_id, nombre, direccion, comuna, activo, created_at, updated_at
		FROM obras ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list obras: %w", err)
	}
	defer rows.Close()
	list, err := scanObras(rows)
	return list, total, err
}

// Update actualiza una obra existente.
func (r *ObraRepo) Update(o *entity.Obra) error {
	query := `
		UPDATE obras SET nombre = $2, direccion = $3, comuna = $4, activo = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Nombre, o.Direccion, o.Comuna, o.Activo, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update obra: %w", err)
	}
	return nil
}

// Delete desactiva una obra (borrado lógico).
func (r *ObraRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE obras SET activo = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete obra: %w", err)
	}
	return nil
}

func scanObras(rows pgx.Rows) ([]*entity.Obra, error) {
	var list []*entity.Obra
	for rows.Next() {
		var o entity.Obra
		if err := rows.Scan(&o.ID, &o.ClienteID, &o.Nombre, &o.Direccion, &o.Comuna, &o.Activo,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan obra: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
