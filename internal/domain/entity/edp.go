package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de alquiler de un EDP.
const (
	UnidadUF    = "Valor UF"
	UnidadPesos = "Pesos"
)

// EDP (Estado de Pago) es el documento de cobro que se tramita por estados.
// ImporteTotal es derivado: siempre es la suma de los subtotales de equipos
// y servicios; se recalcula al mutar las líneas, nunca directamente.
type EDP struct {
	ID             int64
	Codigo         string // código único visible (asignado por el usuario)
	ClienteID      int64
	ObraID         int64
	OrdenCompra    string
	FechaInicio    time.Time
	FechaCorte     *time.Time
	FechaTermino   *time.Time
	UnidadAlquiler string
	Estado         Estado
	ImporteTotal   decimal.Decimal
	UsuarioID      int64 // usuario que creó el EDP
	Comentarios    string
	URLOrdenCompra string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EDPEquipo es una línea de equipo del EDP. TarifaUF se captura al momento
// de agregar la línea; cambios posteriores de tarifa en el catálogo no
// afectan EDPs históricos.
type EDPEquipo struct {
	ID            int64
	EDPID         int64
	EquipoID      int64
	Cantidad      int64
	Configuracion json.RawMessage // componentes opcionales seleccionados y sus cantidades
	TarifaUF      decimal.Decimal
	SubtotalUF    decimal.Decimal
	Servicios     []*EDPServicio
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EDPServicio es un servicio (montaje, desmontaje, flete, etc.) asociado a
// una línea de equipo.
type EDPServicio struct {
	ID             int64
	EDPEquipoID    int64
	TipoServicioID int64
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EDPEstadoHistorico es un registro inmutable del historial de estados.
// EstadoAnterior es nil solo para la entrada de creación.
type EDPEstadoHistorico struct {
	ID             int64
	EDPID          int64
	EstadoAnterior *Estado
	EstadoNuevo    Estado
	Fecha          time.Time
	UsuarioID      int64
	Comentario     string
	CreatedAt      time.Time
}
