package edp

import (
	"context"
	"fmt"

	"github.com/rentalsur/edp-api/internal/application/dto"
	"github.com/rentalsur/edp-api/internal/domain"
	domedp "github.com/rentalsur/edp-api/internal/domain/edp"
	"github.com/rentalsur/edp-api/internal/domain/entity"
	"github.com/rentalsur/edp-api/internal/domain/repository"
)

// UseCase orquesta el ciclo de vida de los EDPs: creación, mutación mientras
// están en Borrador, cambios de estado con historial y eliminación.
type UseCase struct {
	txRunner     TxRunner
	edpRepo      repository.EDPRepository
	lineaRepo    repository.EDPEquipoRepository
	histRepo     repository.EDPHistoricoRepository
	clienteRepo  repository.ClienteRepository
	obraRepo     repository.ObraRepository
	catalogoRepo repository.EquipoRepository
	tipoSvcRepo  repository.TipoServicioRepository
	maquina      *domedp.Maquina
}

// NewUseCase construye el caso de uso con la máquina de estados canónica.
func NewUseCase(
	txRunner TxRunner,
	edpRepo repository.EDPRepository,
	lineaRepo repository.EDPEquipoRepository,
	histRepo repository.EDPHistoricoRepository,
	clienteRepo repository.ClienteRepository,
	obraRepo repository.ObraRepository,
	catalogoRepo repository.EquipoRepository,
	tipoSvcRepo repository.TipoServicioRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		edpRepo:      edpRepo,
		lineaRepo:    lineaRepo,
		histRepo:     histRepo,
		clienteRepo:  clienteRepo,
		obraRepo:     obraRepo,
		catalogoRepo: catalogoRepo,
		tipoSvcRepo:  tipoSvcRepo,
		maquina:      domedp.NewMaquina(),
	}
}

// GetByID obtiene un EDP con sus líneas y servicios.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.EDPResponse, error) {
	e, err := uc.edpRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	lineas, err := uc.lineaRepo.ListByEDP(id)
	if err != nil {
		return nil, err
	}
	return toResponse(e, lineas), nil
}

// List lista EDPs con filtros y paginación.
func (uc *UseCase) List(ctx context.Context, in dto.ListEDPRequest) ([]dto.EDPResponse, int64, error) {
	in.DefaultPage()
	f := repository.EDPFilter{
		Search: in.Search,
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if in.Estado != "" {
		estado, err := entity.ParseEstado(in.Estado)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		f.Estado = &estado
	}
	if in.ClienteID > 0 {
		f.ClienteID = &in.ClienteID
	}
	if in.ObraID > 0 {
		f.ObraID = &in.ObraID
	}

	edps, total, err := uc.edpRepo.List(f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.EDPResponse, 0, len(edps))
	for _, e := range edps {
		out = append(out, *toResponse(e, nil))
	}
	return out, total, nil
}

// GetHistorial retorna el historial de estados del EDP, ascendente por fecha.
func (uc *UseCase) GetHistorial(ctx context.Context, id int64) ([]dto.HistorialResponse, error) {
	e, err := uc.edpRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	hist, err := uc.histRepo.ListByEDP(id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistorialResponse, 0, len(hist))
	for _, h := range hist {
		r := dto.HistorialResponse{
			ID:          h.ID,
			EstadoNuevo: string(h.EstadoNuevo),
			Fecha:       h.Fecha.Format("2006-01-02"),
			UsuarioID:   h.UsuarioID,
			Comentario:  h.Comentario,
		}
		if h.EstadoAnterior != nil {
			r.EstadoAnterior = string(*h.EstadoAnterior)
		}
		out = append(out, r)
	}
	return out, nil
}

func toResponse(e *entity.EDP, lineas []*entity.EDPEquipo) *dto.EDPResponse {
	resp := &dto.EDPResponse{
		ID:             e.ID,
		Codigo:         e.Codigo,
		ClienteID:      e.ClienteID,
		ObraID:         e.ObraID,
		OrdenCompra:    e.OrdenCompra,
		FechaInicio:    e.FechaInicio.Format("2006-01-02"),
		UnidadAlquiler: e.UnidadAlquiler,
		Estado:         string(e.Estado),
		ImporteTotal:   e.ImporteTotal,
		UsuarioID:      e.UsuarioID,
		Comentarios:    e.Comentarios,
		URLOrdenCompra: e.URLOrdenCompra,
	}
	if e.FechaCorte != nil {
		resp.FechaCorte = e.FechaCorte.Format("2006-01-02")
	}
	if e.FechaTermino != nil {
		resp.FechaTermino = e.FechaTermino.Format("2006-01-02")
	}
	for _, l := range lineas {
		lr := dto.EDPEquipoResponse{
			ID:            l.ID,
			EquipoID:      l.EquipoID,
			Cantidad:      l.Cantidad,
			Configuracion: l.Configuracion,
			TarifaUF:      l.TarifaUF,
			SubtotalUF:    l.SubtotalUF,
		}
		for _, s := range l.Servicios {
			lr.Servicios = append(lr.Servicios, dto.EDPServicioResponse{
				ID:             s.ID,
				TipoServicioID: s.TipoServicioID,
				Cantidad:       s.Cantidad,
				PrecioUnitario: s.PrecioUnitario,
				Subtotal:       s.Subtotal,
			})
		}
		resp.Equipos = append(resp.Equipos, lr)
	}
	return resp
}
