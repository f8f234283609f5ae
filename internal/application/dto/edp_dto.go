package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateEDPRequest body para POST /api/v1/edp.
// El estado inicial siempre es Borrador; no se acepta en el request.
type CreateEDPRequest struct {
	Codigo         string     `json:"codigo"`
	ClienteID      int64      `json:"cliente_id"`
	ObraID         int64      `json:"obra_id"`
	OrdenCompra    string     `json:"orden_compra,omitempty"`
	FechaInicio    time.Time  `json:"fecha_inicio"`
	FechaCorte     *time.Time `json:"fecha_corte,omitempty"`
	FechaTermino   *time.Time `json:"fecha_termino,omitempty"`
	UnidadAlquiler string     `json:"unidad_alquiler,omitempty"` // "Valor UF" (default) | "Pesos"
	Observaciones  string     `json:"observaciones,omitempty"`
	URLOrdenCompra string     `json:"url_orden_compra,omitempty"`
}

// UpdateEDPRequest body para PUT /api/v1/edp/:id (solo en Borrador).
// Campos nulos no se tocan; así una actualización parcial no puede
// borrar campos que el caller no envió.
type UpdateEDPRequest struct {
	Codigo         *string    `json:"codigo,omitempty"`
	OrdenCompra    *string    `json:"orden_compra,omitempty"`
	FechaInicio    *time.Time `json:"fecha_inicio,omitempty"`
	FechaCorte     *time.Time `json:"fecha_corte,omitempty"`
	FechaTermino   *time.Time `json:"fecha_termino,omitempty"`
	Observaciones  *string    `json:"observaciones,omitempty"`
	URLOrdenCompra *string    `json:"url_orden_compra,omitempty"`
}

// CambiarEstadoRequest body para PATCH /api/v1/edp/:id/estado.
type CambiarEstadoRequest struct {
	NuevoEstado string `json:"nuevo_estado"`
	Comentario  string `json:"comentario,omitempty"`
}

// AgregarEquipoRequest body para POST /api/v1/edp/:id/equipos.
// La tarifa se captura del catálogo al momento de agregar la línea.
type AgregarEquipoRequest struct {
	EquipoID      int64           `json:"equipo_id"`
	Cantidad      int64           `json:"cantidad"`
	Configuracion json.RawMessage `json:"configuracion,omitempty"`
}

// AgregarServicioRequest body para POST /api/v1/edp/:id/equipos/:lineaId/servicios.
type AgregarServicioRequest struct {
	TipoServicioID int64           `json:"tipo_servicio_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// ListEDPRequest query params para GET /api/v1/edp.
type ListEDPRequest struct {
	Estado    string `query:"estado"`
	ClienteID int64  `query:"cliente_id"`
	ObraID    int64  `query:"obra_id"`
	Search    string `query:"search"`
	PageRequest
}

// EDPResponse EDP completo en respuestas.
type EDPResponse struct {
	ID             int64                `json:"id"`
	Codigo         string               `json:"codigo"`
	ClienteID      int64                `json:"cliente_id"`
	ObraID         int64                `json:"obra_id"`
	OrdenCompra    string               `json:"orden_compra,omitempty"`
	FechaInicio    string               `json:"fecha_inicio"`
	FechaCorte     string               `json:"fecha_corte,omitempty"`
	FechaTermino   string               `json:"fecha_termino,omitempty"`
	UnidadAlquiler string               `json:"unidad_alquiler"`
	Estado         string               `json:"estado"`
	ImporteTotal   decimal.Decimal      `json:"importe_total"`
	UsuarioID      int64                `json:"usuario_id"`
	Comentarios    string               `json:"comentarios,omitempty"`
	URLOrdenCompra string               `json:"url_orden_compra,omitempty"`
	Equipos        []EDPEquipoResponse  `json:"equipos,omitempty"`
}

// EDPEquipoResponse línea de equipo en la respuesta.
type EDPEquipoResponse struct {
	ID            int64                 `json:"id"`
	EquipoID      int64                 `json:"equipo_id"`
	Cantidad      int64                 `json:"cantidad"`
	Configuracion json.RawMessage       `json:"configuracion,omitempty"`
	TarifaUF      decimal.Decimal       `json:"tarifa_uf"`
	SubtotalUF    decimal.Decimal       `json:"subtotal_uf"`
	Servicios     []EDPServicioResponse `json:"servicios,omitempty"`
}

// EDPServicioResponse servicio de una línea en la respuesta.
type EDPServicioResponse struct {
	ID             int64           `json:"id"`
	TipoServicioID int64           `json:"tipo_servicio_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// HistorialResponse entrada del historial de estados.
type HistorialResponse struct {
	ID             int64  `json:"id"`
	EstadoAnterior string `json:"estado_anterior,omitempty"` // vacío en la entrada de creación
	EstadoNuevo    string `json:"estado_nuevo"`
	Fecha          string `json:"fecha"`
	UsuarioID      int64  `json:"usuario_id"`
	Comentario     string `json:"comentario,omitempty"`
}
