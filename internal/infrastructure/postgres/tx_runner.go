package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appedp "github.com/rentalsur/edp-api/internal/application/edp"
	"github.com/rentalsur/edp-api/internal/domain/repository"
)

var _ appedp.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunEDP inicia una transacción, ejecuta fn con los repos del EDP atados a
// la tx y hace Commit o Rollback.
func (r *TxRunner) RunEDP(ctx context.Context, fn func(
	edpRepo repository.EDPRepository,
	lineaRepo repository.EDPEquipoRepository,
	histRepo repository.EDPHistoricoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	edpRepo := NewEDPRepository(tx)
	lineaRepo := NewEDPEquipoRepository(tx)
	histRepo := NewEDPHistoricoRepository(tx)

	if err := fn(edpRepo, lineaRepo, histRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
