package edp

import (
	"github.com/shopspring/decimal"

	"github.com/rentalsur/edp-api/internal/domain/entity"
)

// Precisión monetaria: las tarifas UF se manejan con 4 decimales, los
// totales en pesos con 2.
const (
	DecimalesUF    = 4
	DecimalesPesos = 2
)

// Totales agrupa las cifras derivadas de las líneas de un EDP. El subtotal
// de equipos y el de servicios se informan por separado; ImporteTotal es la
// suma de ambos.
type Totales struct {
	SubtotalEquiposUF decimal.Decimal
	SubtotalServicios decimal.Decimal
	ImporteTotal      decimal.Decimal
}

// SubtotalEquipo calcula el subtotal de una línea de equipo:
// cantidad por la tarifa capturada al momento de agregarla.
func SubtotalEquipo(cantidad int64, tarifaUF decimal.Decimal) decimal.Decimal {
	return tarifaUF.Mul(decimal.NewFromInt(cantidad)).Round(DecimalesUF)
}

// SubtotalServicio calcula el subtotal de un servicio: cantidad por precio unitario.
func SubtotalServicio(cantidad, precioUnitario decimal.Decimal) decimal.Decimal {
	return cantidad.Mul(precioUnitario).Round(DecimalesPesos)
}

// CalcularTotales recorre las líneas de equipo (con sus servicios) y produce
// los totales del EDP. Es una función pura: el mismo conjunto de líneas
// produce siempre el mismo resultado.
func CalcularTotales(equipos []*entity.EDPEquipo) Totales {
	var t Totales
	for _, eq := range equipos {
		t.SubtotalEquiposUF = t.SubtotalEquiposUF.Add(SubtotalEquipo(eq.Cantidad, eq.TarifaUF))
		for _, sv := range eq.Servicios {
			t.SubtotalServicios = t.SubtotalServicios.Add(SubtotalServicio(sv.Cantidad, sv.PrecioUnitario))
		}
	}
	t.SubtotalEquiposUF = t.SubtotalEquiposUF.Round(DecimalesUF)
	t.SubtotalServicios = t.SubtotalServicios.Round(DecimalesPesos)
	t.ImporteTotal = t.SubtotalEquiposUF.Add(t.SubtotalServicios).Round(DecimalesPesos)
	return t
}
