package edp

import (
	"context"

	"github.com/rentalsur/edp-api/internal/domain/repository"
)

// TxRunner ejecuta una función con los repositorios del EDP atados a una
// misma transacción. Si fn retorna error se hace rollback; el cambio de
// estado y su entrada de historial nunca divergen.
type TxRunner interface {
	RunEDP(ctx context.Context, fn func(
		edpRepo repository.EDPRepository,
		lineaRepo repository.EDPEquipoRepository,
		histRepo repository.EDPHistoricoRepository,
	) error) error
}
