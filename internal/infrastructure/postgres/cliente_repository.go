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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación del puerto ClienteRepository sobre PostgreSQL.
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// Create persiste un cliente y asigna el ID generado.
func (r *ClienteRepo) Create(c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (empresa, rut, direccion, giro, activo, responsable_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		c.Empresa, c.RUT, c.Direccion, c.Giro, c.Activo, c.ResponsableID, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: RUT %s ya existe", domain.ErrConflict, c.RUT)
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(id int64) (*entity.Cliente, error) {
	query := `
		SELECT id, empresa, rut, direccion, giro, activo, responsable_id, created_at, updated_at
		FROM clientes WHERE id = $1`
	var c entity.Cliente
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Empresa, &c.RUT, &c.Direccion, &c.Giro, &c.Activo, &c.ResponsableID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// GetByRUT obtiene un cliente por RUT formateado.
func (r *ClienteRepo) GetByRUT(rut string) (*entity.Cliente, error) {
	query := `
		SELECT id, empresa, rut, direccion, giro, activo, responsable_id, created_at, updated_at
		FROM clientes WHERE rut = $1`
	var c entity.Cliente
	err := r.q.QueryRow(context.Background(), query, rut).Scan(
		&c.ID, &c.Empresa, &c.RUT, &c.Direccion, &c.Giro, &c.Activo, &c.ResponsableID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente by rut: %w", err)
	}
	return &c, nil
}

// List lista clientes con búsqueda (empresa o RUT) y paginación.
func (r *ClienteRepo) List(search string, limit, offset int) ([]*entity.Cliente, int64, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = ` WHERE empresa ILIKE $1 OR rut ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	var total int64
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM clientes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clientes: %w", err)
	}
	query := fmt.Sprintf(`
		SELECT id, empresa, rut, direccion, giro, activo, responsable_id, created_at, updated_at
		FROM clientes%s ORDER BY empresa LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(&c.ID, &c.Empresa, &c.RUT, &c.Direccion, &c.Giro, &c.Activo,
			&c.ResponsableID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

// Update actualiza un cliente existente.
func (r *ClienteRepo) Update(c *entity.Cliente) error {
	query := `
		UPDATE clientes SET empresa = $2, rut = $3, direccion = $4, giro = $5, activo = $6,
			responsable_id = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Empresa, c.RUT, c.Direccion, c.Giro, c.Activo, c.ResponsableID, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: RUT %s ya existe", domain.ErrConflict, c.RUT)
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// Delete desactiva un cliente (borrado lógico; los EDPs lo referencian).
func (r *ClienteRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE clientes SET activo = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	return nil
}
