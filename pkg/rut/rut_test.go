package rut_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalsur/edp-api/pkg/rut"
)

func TestValidate_RUTsConocidos(t *testing.T) {
	// 12.345.678 con pesos 2..7 suma 138; 11 - (138 mod 11) = 5
	assert.True(t, rut.Validate("12345678-5"))
	assert.True(t, rut.Validate("12.345.678-5"))
	assert.True(t, rut.Validate("123456785"))

	assert.False(t, rut.Validate("12345678-9"), "dígito verificador incorrecto")
	assert.False(t, rut.Validate("12345678-K"))
}

func TestValidate_EntradasMalformadas(t *testing.T) {
	casos := []string{"", "5", "-", "ABCDEF-5", "12A45678-5", "  "}
	for _, c := range casos {
		assert.False(t, rut.Validate(c), "entrada %q no debe validar", c)
	}
}

// TestComputeDV_RoundTrip verifica que para cualquier cuerpo numérico el DV
// calculado valida, y que mutar el DV invalida el RUT.
func TestComputeDV_RoundTrip(t *testing.T) {
	cuerpos := []string{"1234567", "12345678", "7654321", "9999999", "10000000", "24965885"}
	for _, cuerpo := range cuerpos {
		dv := rut.ComputeDV(cuerpo)
		require.NotZero(t, dv, "cuerpo %s", cuerpo)

		completo := cuerpo + string(dv)
		assert.True(t, rut.Validate(completo), "RUT %s debe validar", completo)

		// Cualquier otro DV debe invalidar
		for _, otro := range []byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'K'} {
			if otro == dv {
				continue
			}
			assert.False(t, rut.Validate(cuerpo+string(otro)),
				"RUT %s%c no debe validar (DV correcto: %c)", cuerpo, otro, dv)
		}
	}
}

func TestComputeDV_CasosEspeciales(t *testing.T) {
	// DV 'K' (suma mod 11 == 1) y DV '0' (suma mod 11 == 0)
	assert.Equal(t, byte('K'), rut.ComputeDV("20347878"))
	assert.Equal(t, byte('0'), rut.ComputeDV("24965882"))
	assert.Zero(t, rut.ComputeDV(""))
	assert.Zero(t, rut.ComputeDV("12a45"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "12.345.678-5", rut.Format("123456785"))
	assert.Equal(t, "12.345.678-5", rut.Format("12345678-5"))
	assert.Equal(t, "1.234.567-4", rut.Format("12345674"))

	// Entrada no numérica: se retorna sin cambios
	assert.Equal(t, "no-es-rut", rut.Format("no-es-rut"))
	assert.Equal(t, "x", rut.Format("x"))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "12345678K", rut.Clean(" 12.345.678-k "))
	assert.Equal(t, "", rut.Clean(""))
}

func ExampleFormat() {
	fmt.Println(rut.Format("123456785"))
	// Output: 12.345.678-5
}
