package dto

import "github.com/shopspring/decimal"

// CreateEquipoRequest body para POST /api/v1/equipos.
type CreateEquipoRequest struct {
	CategoriaID int64           `json:"categoria_id"`
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion,omitempty"`
	TarifaUF    decimal.Decimal `json:"tarifa_uf"`
}

// EquipoResponse equipo en respuestas.
type EquipoResponse struct {
	ID          int64           `json:"id"`
	CategoriaID int64           `json:"categoria_id"`
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion,omitempty"`
	TarifaUF    decimal.Decimal `json:"tarifa_uf"`
	EstadoInv   string          `json:"estado_inventario"`
	Activo      bool            `json:"activo"`
}

// TipoServicioResponse tipo de servicio en respuestas.
type TipoServicioResponse struct {
	ID             int64           `json:"id"`
	Nombre         string          `json:"nombre"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Activo         bool            `json:"activo"`
}
