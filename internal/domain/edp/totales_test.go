package edp_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalsur/edp-api/internal/domain/edp"
	"github.com/rentalsur/edp-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalcularTotales_EquiposYServicios(t *testing.T) {
	equipos := []*entity.EDPEquipo{
		{
			Cantidad: 3,
			TarifaUF: dec("1.2500"), // 3 * 1.25 = 3.75
			Servicios: []*entity.EDPServicio{
				{Cantidad: dec("2"), PrecioUnitario: dec("45000.00")}, // 90000.00
			},
		},
		{
			Cantidad: 10,
			TarifaUF: dec("0.4375"), // 10 * 0.4375 = 4.375
		},
	}

	tot := edp.CalcularTotales(equipos)

	assert.True(t, dec("8.1250").Equal(tot.SubtotalEquiposUF), "subtotal equipos: %s", tot.SubtotalEquiposUF)
	assert.True(t, dec("90000.00").Equal(tot.SubtotalServicios), "subtotal servicios: %s", tot.SubtotalServicios)
	assert.True(t, dec("90008.13").Equal(tot.ImporteTotal), "importe total: %s", tot.ImporteTotal)
}

func TestCalcularTotales_SinLineas(t *testing.T) {
	tot := edp.CalcularTotales(nil)
	assert.True(t, tot.ImporteTotal.IsZero())
	assert.True(t, tot.SubtotalEquiposUF.IsZero())
	assert.True(t, tot.SubtotalServicios.IsZero())
}

// TestCalcularTotales_Idempotente verifica que recalcular sobre el mismo
// conjunto de líneas produce exactamente el mismo resultado (sin deriva).
func TestCalcularTotales_Idempotente(t *testing.T) {
	equipos := []*entity.EDPEquipo{
		{Cantidad: 7, TarifaUF: dec("0.3333")},
		{Cantidad: 13, TarifaUF: dec("2.7181"), Servicios: []*entity.EDPServicio{
			{Cantidad: dec("1.5"), PrecioUnitario: dec("33333.33")},
			{Cantidad: dec("3"), PrecioUnitario: dec("12500.50")},
		}},
	}

	a := edp.CalcularTotales(equipos)
	b := edp.CalcularTotales(equipos)

	assert.True(t, a.ImporteTotal.Equal(b.ImporteTotal))
	assert.True(t, a.SubtotalEquiposUF.Equal(b.SubtotalEquiposUF))
	assert.True(t, a.SubtotalServicios.Equal(b.SubtotalServicios))
}

// Muchas líneas pequeñas no deben acumular error de redondeo: 1000 líneas de
// 0.0001 UF suman exactamente 0.1 UF.
func TestCalcularTotales_SinDerivaConMuchasLineas(t *testing.T) {
	equipos := make([]*entity.EDPEquipo, 1000)
	for i := range equipos {
		equipos[i] = &entity.EDPEquipo{Cantidad: 1, TarifaUF: dec("0.0001")}
	}

	tot := edp.CalcularTotales(equipos)
	assert.True(t, dec("0.1000").Equal(tot.SubtotalEquiposUF), "subtotal: %s", tot.SubtotalEquiposUF)
}

func TestSubtotalEquipo_CapturaTarifa(t *testing.T) {
	sub := edp.SubtotalEquipo(4, dec("1.1111"))
	require.True(t, dec("4.4444").Equal(sub), "subtotal: %s", sub)
}

func TestSubtotalServicio_Redondeo(t *testing.T) {
	// 1.5 * 333.333 = 499.9995 -> 500.00 con 2 decimales
	sub := edp.SubtotalServicio(dec("1.5"), dec("333.333"))
	assert.True(t, dec("500.00").Equal(sub), "subtotal: %s", sub)
}
