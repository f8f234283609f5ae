package edp_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appedp "github.com/rentalsur/edp-api/internal/application/edp"
	"github.com/rentalsur/edp-api/internal/application/dto"
	"github.com/rentalsur/edp-api/internal/domain"
	domedp "github.com/rentalsur/edp-api/internal/domain/edp"
	"github.com/rentalsur/edp-api/internal/domain/entity"
	"github.com/rentalsur/edp-api/internal/domain/repository"
)

// ── Fakes en memoria ───────────────────────────────────────────────────────

type fakeEDPRepo struct {
	seq              int64
	edps             map[int64]entity.EDP
	failUpdateEstado bool // simula una transición concurrente que ganó
}

func newFakeEDPRepo() *fakeEDPRepo { return &fakeEDPRepo{edps: map[int64]entity.EDP{}} }

func (r *fakeEDPRepo) Create(e *entity.EDP) error {
	r.seq++
	e.ID = r.seq
	r.edps[e.ID] = *e
	return nil
}

func (r *fakeEDPRepo) GetByID(id int64) (*entity.EDP, error) {
	v, ok := r.edps[id]
	if !ok {
		return nil, nil
	}
	c := v
	return &c, nil
}

func (r *fakeEDPRepo) GetByIDForUpdate(id int64) (*entity.EDP, error) { return r.GetByID(id) }

func (r *fakeEDPRepo) ExistsCodigo(codigo string, excludeID int64) (bool, error) {
	for _, e := range r.edps {
		if e.Codigo == codigo && e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEDPRepo) Update(e *entity.EDP) error {
	r.edps[e.ID] = *e
	return nil
}

func (r *fakeEDPRepo) UpdateEstado(id int64, desde, hacia entity.Estado) (bool, error) {
	if r.failUpdateEstado {
		return false, nil
	}
	v, ok := r.edps[id]
	if !ok || v.Estado != desde {
		return false, nil
	}
	v.Estado = hacia
	r.edps[id] = v
	return true, nil
}

func (r *fakeEDPRepo) UpdateImporteTotal(id int64, importe decimal.Decimal) error {
	v, ok := r.edps[id]
	if ok {
		v.ImporteTotal = importe
		r.edps[id] = v
	}
	return nil
}

func (r *fakeEDPRepo) Delete(id int64) error {
	delete(r.edps, id)
	return nil
}

func (r *fakeEDPRepo) List(f repository.EDPFilter) ([]*entity.EDP, int64, error) {
	var out []*entity.EDP
	for _, e := range r.edps {
		if f.Estado != nil && e.Estado != *f.Estado {
			continue
		}
		c := e
		out = append(out, &c)
	}
	return out, int64(len(out)), nil
}

type fakeLineaRepo struct {
	seqLinea    int64
	seqServicio int64
	lineas      map[int64]entity.EDPEquipo
	servicios   map[int64]entity.EDPServicio
}

func newFakeLineaRepo() *fakeLineaRepo {
	return &fakeLineaRepo{lineas: map[int64]entity.EDPEquipo{}, servicios: map[int64]entity.EDPServicio{}}
}

func (r *fakeLineaRepo) Create(eq *entity.EDPEquipo) error {
	r.seqLinea++
	eq.ID = r.seqLinea
	r.lineas[eq.ID] = *eq
	return nil
}

func (r *fakeLineaRepo) GetByID(id int64) (*entity.EDPEquipo, error) {
	v, ok := r.lineas[id]
	if !ok {
		return nil, nil
	}
	c := v
	return &c, nil
}

func (r *fakeLineaRepo) ListByEDP(edpID int64) ([]*entity.EDPEquipo, error) {
	var out []*entity.EDPEquipo
	for id := int64(1); id <= r.seqLinea; id++ {
		l, ok := r.lineas[id]
		if !ok || l.EDPID != edpID {
			continue
		}
		c := l
		c.Servicios = nil
		for sid := int64(1); sid <= r.seqServicio; sid++ {
			s, ok := r.servicios[sid]
			if ok && s.EDPEquipoID == id {
				sc := s
				c.Servicios = append(c.Servicios, &sc)
			}
		}
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeLineaRepo) Delete(id int64) error {
	for sid, s := range r.servicios {
		if s.EDPEquipoID == id {
			delete(r.servicios, sid)
		}
	}
	delete(r.lineas, id)
	return nil
}

func (r *fakeLineaRepo) DeleteByEDP(edpID int64) error {
	for id, l := range r.lineas {
		if l.EDPID == edpID {
			delete(r.lineas, id)
		}
	}
	return nil
}

func (r *fakeLineaRepo) CreateServicio(sv *entity.EDPServicio) error {
	r.seqServicio++
	sv.ID = r.seqServicio
	r.servicios[sv.ID] = *sv
	return nil
}

func (r *fakeLineaRepo) GetServicioByID(id int64) (*entity.EDPServicio, error) {
	v, ok := r.servicios[id]
	if !ok {
		return nil, nil
	}
	c := v
	return &c, nil
}

func (r *fakeLineaRepo) DeleteServicio(id int64) error {
	delete(r.servicios, id)
	return nil
}

func (r *fakeLineaRepo) DeleteServiciosByEDP(edpID int64) error {
	for sid, s := range r.servicios {
		if l, ok := r.lineas[s.EDPEquipoID]; ok && l.EDPID == edpID {
			delete(r.servicios, sid)
		}
	}
	return nil
}

type fakeHistRepo struct {
	seq        int64
	entries    []entity.EDPEstadoHistorico
	failCreate bool // fuerza un fallo de persistencia del historial
}

func (r *fakeHistRepo) Create(h *entity.EDPEstadoHistorico) error {
	if r.failCreate {
		return errors.New("insert edp_estados_historico: conexión perdida")
	}
	r.seq++
	h.ID = r.seq
	r.entries = append(r.entries, *h)
	return nil
}

func (r *fakeHistRepo) ListByEDP(edpID int64) ([]*entity.EDPEstadoHistorico, error) {
	var out []*entity.EDPEstadoHistorico
	for i := range r.entries {
		if r.entries[i].EDPID == edpID {
			c := r.entries[i]
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeHistRepo) DeleteByEDP(edpID int64) error {
	var keep []entity.EDPEstadoHistorico
	for _, h := range r.entries {
		if h.EDPID != edpID {
			keep = append(keep, h)
		}
	}
	r.entries = keep
	return nil
}

// fakeTxRunner simula el commit/rollback de la transacción: toma un snapshot
// de los repos y lo restaura si fn falla.
type fakeTxRunner struct {
	edp   *fakeEDPRepo
	linea *fakeLineaRepo
	hist  *fakeHistRepo
}

func (r *fakeTxRunner) RunEDP(ctx context.Context, fn func(
	repository.EDPRepository,
	repository.EDPEquipoRepository,
	repository.EDPHistoricoRepository,
) error) error {
	edpSnap := map[int64]entity.EDP{}
	for k, v := range r.edp.edps {
		edpSnap[k] = v
	}
	edpSeq := r.edp.seq
	lineaSnap := map[int64]entity.EDPEquipo{}
	for k, v := range r.linea.lineas {
		lineaSnap[k] = v
	}
	svSnap := map[int64]entity.EDPServicio{}
	for k, v := range r.linea.servicios {
		svSnap[k] = v
	}
	histSnap := append([]entity.EDPEstadoHistorico(nil), r.hist.entries...)

	if err := fn(r.edp, r.linea, r.hist); err != nil {
		r.edp.edps = edpSnap
		r.edp.seq = edpSeq
		r.linea.lineas = lineaSnap
		r.linea.servicios = svSnap
		r.hist.entries = histSnap
		return err
	}
	return nil
}

// Repos de solo lectura para cliente, obra, catálogo y tipos de servicio.

type fakeClienteRepo struct{ clientes map[int64]entity.Cliente }

func (r *fakeClienteRepo) Create(c *entity.Cliente) error { return nil }
func (r *fakeClienteRepo) GetByID(id int64) (*entity.Cliente, error) {
	v, ok := r.clientes[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}
func (r *fakeClienteRepo) GetByRUT(string) (*entity.Cliente, error) { return nil, nil }
func (r *fakeClienteRepo) List(string, int, int) ([]*entity.Cliente, int64, error) {
	return nil, 0, nil
}
func (r *fakeClienteRepo) Update(*entity.Cliente) error { return nil }
func (r *fakeClienteRepo) Delete(int64) error { return nil }

type fakeObraRepo struct{ obras map[int64]entity.Obra }

func (r *fakeObraRepo) Create(o *entity.Obra) error { return nil }
func (r *fakeObraRepo) GetByID(id int64) (*entity.Obra, error) {
	v, ok := r.obras[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}
func (r *fakeObraRepo) ListByCliente(int64) ([]*entity.Obra, error) { return nil, nil }
func (r *fakeObraRepo) List(int, int) ([]*entity.Obra, int64, error) { return nil, 0, nil }
func (r *fakeObraRepo) Update(*entity.Obra) error { return nil }
func (r *fakeObraRepo) Delete(int64) error { return nil }

type fakeCatalogoRepo struct{ equipos map[int64]entity.Equipo }

func (r *fakeCatalogoRepo) Create(e *entity.Equipo) error { return nil }
func (r *fakeCatalogoRepo) GetByID(id int64) (*entity.Equipo, error) {
	v, ok := r.equipos[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}
func (r *fakeCatalogoRepo) List(string, int, int) ([]*entity.Equipo, int64, error) {
	return nil, 0, nil
}
func (r *fakeCatalogoRepo) Update(*entity.Equipo) error { return nil }
func (r *fakeCatalogoRepo) ListComponentes(int64) ([]*entity.ComponenteEquipo, error) {
	return nil, nil
}
func (r *fakeCatalogoRepo) CreateComponente(*entity.ComponenteEquipo) error { return nil }

type fakeTipoSvcRepo struct{ tipos map[int64]entity.TipoServicio }

func (r *fakeTipoSvcRepo) Create(*entity.TipoServicio) error { return nil }
func (r *fakeTipoSvcRepo) GetByID(id int64) (*entity.TipoServicio, error) {
	v, ok := r.tipos[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}
func (r *fakeTipoSvcRepo) List() ([]*entity.TipoServicio, error) { return nil, nil }
func (r *fakeTipoSvcRepo) Update(*entity.TipoServicio) error { return nil }

// ── Entorno de prueba ──────────────────────────────────────────────────────

type env struct {
	uc    *appedp.UseCase
	edp   *fakeEDPRepo
	linea *fakeLineaRepo
	hist  *fakeHistRepo
}

func newEnv() *env {
	edpRepo := newFakeEDPRepo()
	lineaRepo := newFakeLineaRepo()
	histRepo := &fakeHistRepo{}
	tx := &fakeTxRunner{edp: edpRepo, linea: lineaRepo, hist: histRepo}

	clientes := &fakeClienteRepo{clientes: map[int64]entity.Cliente{
		1: {ID: 1, Empresa: "Constructora Andes", RUT: "12.345.678-5"},
		2: {ID: 2, Empresa: "Inmobiliaria Sur", RUT: "9.876.543-3"},
	}}
	obras := &fakeObraRepo{obras: map[int64]entity.Obra{
		1: {ID: 1, ClienteID: 1, Nombre: "Edificio Centro"},
		2: {ID: 2, ClienteID: 2, Nombre: "Bodega Norte"},
	}}
	catalogo := &fakeCatalogoRepo{equipos: map[int64]entity.Equipo{
		1: {ID: 1, Codigo: "AND-001", Nombre: "Andamio fachada", TarifaUF: dec("1.2500")},
	}}
	tipos := &fakeTipoSvcRepo{tipos: map[int64]entity.TipoServicio{
		1: {ID: 1, Nombre: "Montaje", PrecioUnitario: dec("45000.00")},
	}}

	uc := appedp.NewUseCase(tx, edpRepo, lineaRepo, histRepo, clientes, obras, catalogo, tipos)
	return &env{uc: uc, edp: edpRepo, linea: lineaRepo, hist: histRepo}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fecha(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func crearBorrador(t *testing.T, e *env, codigo string) *dto.EDPResponse {
	t.Helper()
	resp, err := e.uc.Create(context.Background(), dto.CreateEDPRequest{
		Codigo:      codigo,
		ClienteID:   1,
		ObraID:      1,
		FechaInicio: fecha("2026-01-01"),
	}, 7)
	require.NoError(t, err)
	return resp
}

// ── Create / Update / Delete ───────────────────────────────────────────────

func TestCreate_EDPEnBorradorConHistorial(t *testing.T) {
	e := newEnv()

	resp := crearBorrador(t, e, "EDP-100")

	assert.Equal(t, "Borrador", resp.Estado)
	assert.True(t, resp.ImporteTotal.IsZero())
	assert.Equal(t, int64(7), resp.UsuarioID)

	hist, err := e.uc.GetHistorial(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Empty(t, hist[0].EstadoAnterior, "la primera entrada no tiene estado anterior")
	assert.Equal(t, "Borrador", hist[0].EstadoNuevo)
	assert.Equal(t, "EDP creado", hist[0].Comentario)
}

func TestCreate_Validaciones(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	base := dto.CreateEDPRequest{
		Codigo:      "EDP-200",
		ClienteID:   1,
		ObraID:      1,
		FechaInicio: fecha("2026-01-01"),
	}

	t.Run("cliente no existe", func(t *testing.T) {
		in := base
		in.ClienteID = 99
		_, err := e.uc.Create(ctx, in, 7)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("obra no existe", func(t *testing.T) {
		in := base
		in.ObraID = 99
		_, err := e.uc.Create(ctx, in, 7)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("obra de otro cliente", func(t *testing.T) {
		in := base
		in.ObraID = 2 // pertenece al cliente 2
		_, err := e.uc.Create(ctx, in, 7)
		assert.ErrorIs(t, err, domain.ErrInvalidRelationship)
	})

	t.Run("código duplicado", func(t *testing.T) {
		crearBorrador(t, e, "EDP-201")
		in := base
		in.Codigo = "EDP-201"
		_, err := e.uc.Create(ctx, in, 7)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("fecha término anterior al inicio", func(t *testing.T) {
		in := base
		ft := fecha("2025-12-31")
		in.FechaTermino = &ft
		_, err := e.uc.Create(ctx, in, 7)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unidad de alquiler desconocida", func(t *testing.T) {
		in := base
		in.Codigo = "EDP-202"
		in.UnidadAlquiler = "Dólares"
		_, err := e.uc.Create(ctx, in, 7)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUpdate_SoloEnBorrador(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	resp := crearBorrador(t, e, "EDP-300")

	// En Borrador se puede editar
	nuevoCodigo := "EDP-300B"
	out, err := e.uc.Update(ctx, resp.ID, dto.UpdateEDPRequest{Codigo: &nuevoCodigo})
	require.NoError(t, err)
	assert.Equal(t, "EDP-300B", out.Codigo)
	assert.Equal(t, "Borrador", out.Estado, "Update nunca toca el estado")

	// En Abierto ya no
	_, err = e.uc.CambiarEstado(ctx, resp.ID, "Abierto", "", 7)
	require.NoError(t, err)
	otro := "EDP-300C"
	_, err = e.uc.Update(ctx, resp.ID, dto.UpdateEDPRequest{Codigo: &otro})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestUpdate_ParcialNoBorraCampos(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	oc := "OC-555"
	resp, err := e.uc.Create(ctx, dto.CreateEDPRequest{
		Codigo:      "EDP-310",
		ClienteID:   1,
		ObraID:      1,
		FechaInicio: fecha("2026-01-01"),
		OrdenCompra: oc,
	}, 7)
	require.NoError(t, err)

	obs := "avance parcial"
	out, err := e.uc.Update(ctx, resp.ID, dto.UpdateEDPRequest{Observaciones: &obs})
	require.NoError(t, err)
	assert.Equal(t, "OC-555", out.OrdenCompra, "campos no enviados quedan intactos")
	assert.Equal(t, "avance parcial", out.Comentarios)
}

func TestUpdate_CodigoDuplicado(t *testing.T) {
	e := newEnv()
	crearBorrador(t, e, "EDP-320")
	resp := crearBorrador(t, e, "EDP-321")

	dup := "EDP-320"
	_, err := e.uc.Update(context.Background(), resp.ID, dto.UpdateEDPRequest{Codigo: &dup})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdate_FechasRevalidadas(t *testing.T) {
	e := newEnv()
	resp := crearBorrador(t, e, "EDP-330")

	ft := fecha("2025-06-01") // anterior a la fecha de inicio vigente
	_, err := e.uc.Update(context.Background(), resp.ID, dto.UpdateEDPRequest{FechaTermino: &ft})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_SoloEnBorradorYCascada(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	resp := crearBorrador(t, e, "EDP-400")

	_, err := e.uc.AgregarEquipo(ctx, resp.ID, dto.AgregarEquipoRequest{EquipoID: 1, Cantidad: 2})
	require.NoError(t, err)

	require.NoError(t, e.uc.Delete(ctx, resp.ID))

	_, err = e.uc.GetByID(ctx, resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, e.hist.entries, "el historial de un borrador eliminado se descarta")
	assert.Empty(t, e.linea.lineas, "las líneas se eliminan en cascada")
}

func TestDelete_FueraDeBorrador(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	resp := crearBorrador(t, e, "EDP-410")

	_, err := e.uc.CambiarEstado(ctx, resp.ID, "Abierto", "", 7)
	require.NoError(t, err)

	err = e.uc.Delete(ctx, resp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ── CambiarEstado ──────────────────────────────────────────────────────────

func TestCambiarEstado_EscenarioCompleto(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	resp := crearBorrador(t, e, "EDP-100")
	require.Equal(t, "Borrador", resp.Estado)
	require.True(t, resp.ImporteTotal.IsZero())

	// Borrador -> Abierto
	out, err := e.uc.CambiarEstado(ctx, resp.ID, "Abierto", "", 7)
	require.NoError(t, err)
	assert.Equal(t, "Abierto", out.Estado)

	hist, err := e.uc.GetHistorial(ctx, resp.ID)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "Borrador", hist[1].EstadoAnterior)
	assert.Equal(t, "Abierto", hist[1].EstadoNuevo)
	assert.Equal(t, "Cambio de estado de Borrador a Abierto", hist[1].Comentario)

	// Abierto -> Validado es ilegal; el error enumera {Cerrado}
	_, err = e.uc.CambiarEstado(ctx, resp.ID, "Validado", "", 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	var te *domedp.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, []entity.Estado{entity.EstadoCerrado}, te.Permitidas)
	assert.Contains(t, err.Error(), "Cerrado")

	// El fallo no dejó rastro: estado intacto, sin historial nuevo
	actual, err := e.uc.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Abierto", actual.Estado)
	hist, _ = e.uc.GetHistorial(ctx, resp.ID)
	assert.Len(t, hist, 2)
}

func TestCambiarEstado_CicloCompletoHastaCobrado(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	resp := crearBorrador(t, e, "EDP-500")

	for _, paso := range []string{"Abierto", "Cerrado", "Validado", "Facturado", "Cobrado"} {
		out, err := e.uc.CambiarEstado(ctx, resp.ID, paso, "", 7)
		require.NoError(t, err, "transición a %s", paso)
		assert.Equal(t, paso, out.Estado)
	}

	// Cobrado es final
	_, err := e.uc.CambiarEstado(ctx, resp.ID, "Abierto", "", 7)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	hist, err := e.uc.GetHistorial(ctx, resp.ID)
	require.NoError(t, err)
	assert.Len(t, hist, 6, "creación + cinco transiciones")
}

func TestCambiarEstado_Reapertura(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	resp := crearBorrador(t, e, "EDP-510")

	for _, paso := range []string{"Abierto", "Cerrado", "Abierto"} {
		_, err := e.uc.CambiarEstado(ctx, resp.ID, paso, "", 7)
		require.NoError(t, err, "transición a %s", paso)
	}

	out, err := e.uc.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Abierto", out.Estado)
}

func TestCambiarEstado_MismoEstado(t *testing.T) {
	e := newEnv()
	resp := crearBorrador(t, e, "EDP-520")

	_, err := e.uc.CambiarEstado(context.Background(), resp.ID, "Borrador", "", 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Contains(t, err.Error(), "ya está en estado")
}

func TestCambiarEstado_EstadoDesconocido(t *testing.T) {
	e := newEnv()
	resp := crearBorrador(t, e, "EDP-530")

	_, err := e.uc.CambiarEstado(context.Background(), resp.ID, "Pendiente", "", 7)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCambiarEstado_NoExiste(t *testing.T) {
	e := newEnv()
	_, err := e.uc.CambiarEstado(context.Background(), 999, "Abierto", "", 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestCambiarEstado_AtomicidadConHistorial fuerza un fallo al persistir el
// historial y verifica que el cambio de estado se revierte completo.
func TestCambiarEstado_AtomicidadConHistorial(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	resp := crearBorrador(t, e, "EDP-540")

	e.hist.failCreate = true
	_, err := e.uc.CambiarEstado(ctx, resp.ID, "Abierto", "", 7)
	require.Error(t, err)

	e.hist.failCreate = false
	out, err := e.uc.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Borrador", out.Estado, "el estado debe quedar como antes del fallo")

	hist, err := e.uc.GetHistorial(ctx, resp.ID)
	require.NoError(t, err)
	assert.Len(t, hist, 1, "solo la entrada de creación")
}

func TestCambiarEstado_EstadoObsoleto(t *testing.T) {
	e := newEnv()
	resp := crearBorrador(t, e, "EDP-550")

	// Simula que otra transición ganó entre la lectura y el update
	e.edp.failUpdateEstado = true
	_, err := e.uc.CambiarEstado(context.Background(), resp.ID, "Abierto", "", 7)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCambiarEstado_ComentarioPersonalizado(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	resp := crearBorrador(t, e, "EDP-560")

	_, err := e.uc.CambiarEstado(ctx, resp.ID, "Abierto", "período listo para carga", 7)
	require.NoError(t, err)

	hist, err := e.uc.GetHistorial(ctx, resp.ID)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "período listo para carga", hist[1].Comentario)
}

// ── Líneas y totales ───────────────────────────────────────────────────────

func TestAgregarEquipo_CapturaTarifaYRecalculaTotal(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	resp := crearBorrador(t, e, "EDP-600")

	out, err := e.uc.AgregarEquipo(ctx, resp.ID, dto.AgregarEquipoRequest{EquipoID: 1, Cantidad: 2})
	require.NoError(t, err)
	require.Len(t, out.Equipos, 1)
	assert.True(t, dec("1.2500").Equal(out.Equipos[0].TarifaUF))
	assert.True(t, dec("2.5000").Equal(out.Equipos[0].SubtotalUF))
	assert.True(t, dec("2.50").Equal(out.ImporteTotal), "importe: %s", out.ImporteTotal)
}

func TestAgregarServicio_PrecioPorDefectoYTotal(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	resp := crearBorrador(t, e, "EDP-610")

	out, err := e.uc.AgregarEquipo(ctx, resp.ID, dto.AgregarEquipoRequest{EquipoID: 1, Cantidad: 2})
	require.NoError(t, err)
	lineaID := out.Equipos[0].ID

	// Sin precio: usa el del tipo de servicio (45000.00)
	out, err = e.uc.AgregarServicio(ctx, resp.ID, lineaID, dto.AgregarServicioRequest{
		TipoServicioID: 1,
		Cantidad:       dec("2"),
	})
	require.NoError(t, err)
	require.Len(t, out.Equipos[0].Servicios, 1)
	assert.True(t, dec("45000.00").Equal(out.Equipos[0].Servicios[0].PrecioUnitario))
	assert.True(t, dec("90000.00").Equal(out.Equipos[0].Servicios[0].Subtotal))
	// Total = 2.5 UF + 90000.00
	assert.True(t, dec("90002.50").Equal(out.ImporteTotal), "importe: %s", out.ImporteTotal)
}

func TestEliminarEquipo_RecalculaTotal(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	resp := crearBorrador(t, e, "EDP-620")

	out, err := e.uc.AgregarEquipo(ctx, resp.ID, dto.AgregarEquipoRequest{EquipoID: 1, Cantidad: 2})
	require.NoError(t, err)

	out, err = e.uc.EliminarEquipo(ctx, resp.ID, out.Equipos[0].ID)
	require.NoError(t, err)
	assert.Empty(t, out.Equipos)
	assert.True(t, out.ImporteTotal.IsZero())
}

func TestLineas_SoloEnBorrador(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	resp := crearBorrador(t, e, "EDP-630")

	_, err := e.uc.CambiarEstado(ctx, resp.ID, "Abierto", "", 7)
	require.NoError(t, err)

	_, err = e.uc.AgregarEquipo(ctx, resp.ID, dto.AgregarEquipoRequest{EquipoID: 1, Cantidad: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestGetHistorial_NoExiste(t *testing.T) {
	e := newEnv()
	_, err := e.uc.GetHistorial(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
