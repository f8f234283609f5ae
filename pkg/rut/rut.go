package rut

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Paquete rut implementa la validación del RUT chileno (módulo 11).
// El dígito verificador se calcula recorriendo el cuerpo numérico de derecha
// a izquierda con pesos cíclicos 2..7: 11 - (suma mod 11), donde 11 -> '0'
// y 10 -> 'K'.

// printer con agrupación de miles al estilo es-CL (12.345.678).
var printer = message.NewPrinter(language.Spanish)

// Clean remueve puntos y guiones y convierte a mayúsculas.
func Clean(rut string) string {
	r := strings.NewReplacer(".", "", "-", "")
	return strings.ToUpper(r.Replace(strings.TrimSpace(rut)))
}

// ComputeDV calcula el dígito verificador para un cuerpo numérico.
// Retorna 0 si el cuerpo contiene caracteres no numéricos o está vacío.
func ComputeDV(body string) byte {
	if body == "" {
		return 0
	}
	suma := 0
	multiplo := 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return 0
		}
		suma += int(c-'0') * multiplo
		if multiplo < 7 {
			multiplo++
		} else {
			multiplo = 2
		}
	}
	dv := 11 - (suma % 11)
	switch dv {
	case 11:
		return '0'
	case 10:
		return 'K'
	default:
		return byte('0' + dv)
	}
}

// Validate verifica que el dígito verificador del RUT sea correcto.
// Acepta el RUT con o sin formato ("12.345.678-5", "12345678-5", "123456785").
func Validate(rut string) bool {
	limpio := Clean(rut)
	if len(limpio) < 2 {
		return false
	}
	dv := limpio[len(limpio)-1]
	cuerpo := limpio[:len(limpio)-1]
	esperado := ComputeDV(cuerpo)
	if esperado == 0 {
		return false
	}
	return dv == esperado
}

// Format devuelve el RUT con puntos de miles y guión antes del dígito
// verificador (12.345.678-5). Si el cuerpo no es numérico retorna la
// entrada sin cambios.
func Format(rut string) string {
	limpio := Clean(rut)
	if len(limpio) < 2 {
		return rut
	}
	dv := limpio[len(limpio)-1:]
	cuerpo := limpio[:len(limpio)-1]
	n, err := strconv.ParseInt(cuerpo, 10, 64)
	if err != nil {
		return rut
	}
	return printer.Sprintf("%d", n) + "-" + dv
}
