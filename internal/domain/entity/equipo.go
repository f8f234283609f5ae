package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de inventario de un equipo.
const (
	EquipoDisponible    = "Disponible"
	EquipoAlquilado     = "Alquilado"
	EquipoMantenimiento = "Mantenimiento"
	EquipoBaja          = "Baja"
)

// Equipo es un equipo del catálogo de arriendo. TarifaUF es la tarifa
// vigente; al agregarlo a un EDP la tarifa se copia a la línea.
type Equipo struct {
	ID          int64
	CategoriaID int64
	Codigo      string
	Nombre      string
	Descripcion string
	TarifaUF    decimal.Decimal // tarifa de arriendo en UF (4 decimales)
	EstadoInv   string
	Activo      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComponenteEquipo es un componente opcional de un equipo (ej. andamio:
// plataformas, barandas) con su precio unitario en UF.
type ComponenteEquipo struct {
	ID        int64
	EquipoID  int64
	Nombre    string
	PrecioUF  decimal.Decimal
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TipoServicio es un servicio facturable (montaje, desmontaje, flete).
type TipoServicio struct {
	ID             int64
	Nombre         string
	PrecioUnitario decimal.Decimal // precio sugerido en pesos
	Activo         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
