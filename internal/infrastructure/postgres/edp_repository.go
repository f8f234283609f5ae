package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/rentalsur/edp-api/internal/domain"
	"github.com/rentalsur/edp-api/internal/domain/entity"
	"github.com/rentalsur/edp-api/internal/domain/repository"
)

var _ repository.EDPRepository = (*EDPRepo)(nil)

const edpColumns = `id, codigo, cliente_id, obra_id, orden_compra, fecha_inicio, fecha_corte, fecha_termino,
		unidad_alquiler, estado, importe_total, usuario_id, comentarios, url_orden_compra, created_at, updated_at`

// EDPRepo implementación del puerto EDPRepository sobre PostgreSQL (usable con pool o tx).
type EDPRepo struct {
	q Querier
}

// NewEDPRepository construye el adaptador de persistencia para EDPs. Pasar pool o tx (Querier).
func NewEDPRepository(q Querier) *EDPRepo {
	return &EDPRepo{q: q}
}

// Create persiste un nuevo EDP y asigna el ID generado.
func (r *EDPRepo) Create(e *entity.EDP) error {
	query := `
		INSERT INTO edps (codigo, cliente_id, obra_id, orden_compra, fecha_inicio, fecha_corte, fecha_termino,
			unidad_alquiler, estado, importe_total, usuario_id, comentarios, url_orden_compra, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		e.Codigo, e.ClienteID, e.ObraID, e.OrdenCompra, e.FechaInicio, e.FechaCorte, e.FechaTermino,
		e.UnidadAlquiler, e.Estado, e.ImporteTotal, e.UsuarioID, e.Comentarios, e.URLOrdenCompra,
		e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s ya existe", domain.ErrConflict, e.Codigo)
		}
		return fmt.Errorf("insert edp: %w", err)
	}
	return nil
}

// GetByID obtiene un EDP por ID.
func (r *EDPRepo) GetByID(id int64) (*entity.EDP, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate lee el EDP bloqueando la fila. Solo dentro de una tx.
func (r *EDPRepo) GetByIDForUpdate(id int64) (*entity.EDP, error) {
	return r.getByID(id, true)
}

func (r *EDPRepo) getByID(id int64, forUpdate bool) (*entity.EDP, error) {
	query := `SELECT ` + edpColumns + ` FROM edps WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var e entity.EDP
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.Codigo, &e.ClienteID, &e.ObraID, &e.OrdenCompra, &e.FechaInicio, &e.FechaCorte,
		&e.FechaTermino, &e.UnidadAlquiler, &e.Estado, &e.ImporteTotal, &e.UsuarioID, &e.Comentarios,
		&e.URLOrdenCompra, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get edp: %w", err)
	}
	return &e, nil
}

// ExistsCodigo indica si otro EDP (distinto de excludeID) usa el código.
func (r *EDPRepo) ExistsCodigo(codigo string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM edps WHERE codigo = $1 AND id <> $2)`,
		codigo, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists codigo: %w", err)
	}
	return exists, nil
}

// Update actualiza los campos editables de un EDP. No toca estado ni importe_total.
func (r *EDPRepo) Update(e *entity.EDP) error {
	query := `
		UPDATE edps SET codigo = $2, orden_compra = $3, fecha_inicio = $4, fecha_corte = $5,
			fecha_termino = $6, comentarios = $7, url_orden_compra = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Codigo, e.OrdenCompra, e.FechaInicio, e.FechaCorte, e.FechaTermino,
		e.Comentarios, e.URLOrdenCompra, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s ya existe", domain.ErrConflict, e.Codigo)
		}
		return fmt.Errorf("update edp: %w", err)
	}
	return nil
}

// UpdateEstado cambia el estado solo si el actual coincide con `desde`.
// Retorna false si la fila ya no estaba en `desde`.
func (r *EDPRepo) UpdateEstado(id int64, desde, hacia entity.Estado) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE edps SET estado = $3, updated_at = now() WHERE id = $1 AND estado = $2`,
		id, desde, hacia,
	)
	if err != nil {
		return false, fmt.Errorf("update estado: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// UpdateImporteTotal persiste el total derivado de las líneas.
func (r *EDPRepo) UpdateImporteTotal(id int64, importe decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE edps SET importe_total = $2, updated_at = now() WHERE id = $1`,
		id, importe,
	)
	if err != nil {
		return fmt.Errorf("update importe total: %w", err)
	}
	return nil
}

// Delete elimina un EDP por ID.
func (r *EDPRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM edps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete edp: %w", err)
	}
	return nil
}

// List lista EDPs con filtros y paginación; retorna también el total sin paginar.
func (r *EDPRepo) List(f repository.EDPFilter) ([]*entity.EDP, int64, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Estado != nil {
		conds = append(conds, "estado = "+arg(*f.Estado))
	}
	if f.ClienteID != nil {
		conds = append(conds, "cliente_id = "+arg(*f.ClienteID))
	}
	if f.ObraID != nil {
		conds = append(conds, "obra_id = "+arg(*f.ObraID))
	}
	if f.Search != "" {
		conds = append(conds, "codigo ILIKE "+arg("%"+f.Search+"%"))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM edps`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count edps: %w", err)
	}

	query := `SELECT ` + edpColumns + ` FROM edps` + where +
		` ORDER BY created_at DESC LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list edps: %w", err)
	}
	defer rows.Close()
	var list []*entity.EDP
	for rows.Next() {
		var e entity.EDP
		if err := rows.Scan(&e.ID, &e.Codigo, &e.ClienteID, &e.ObraID, &e.OrdenCompra, &e.FechaInicio,
			&e.FechaCorte, &e.FechaTermino, &e.UnidadAlquiler, &e.Estado, &e.ImporteTotal, &e.UsuarioID,
			&e.Comentarios, &e.URLOrdenCompra, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan edp: %w", err)
		}
		list = append(list, &e)
	}
	return list, total, rows.Err()
}
