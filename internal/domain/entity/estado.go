package entity

import "fmt"

// Estado de un EDP (Estado de Pago). Los valores son los que se persisten
// y los que expone la API, por eso se mantienen en español.
type Estado string

const (
	EstadoBorrador  Estado = "Borrador"
	EstadoAbierto   Estado = "Abierto"
	EstadoCerrado   Estado = "Cerrado"
	EstadoValidado  Estado = "Validado"
	EstadoFacturado Estado = "Facturado"
	EstadoCobrado   Estado = "Cobrado" // estado final
)

// EstadoInicial es el estado con que se crea todo EDP.
const EstadoInicial = EstadoBorrador

// Estados devuelve todos los estados válidos en orden de ciclo de vida.
func Estados() []Estado {
	return []Estado{
		EstadoBorrador,
		EstadoAbierto,
		EstadoCerrado,
		EstadoValidado,
		EstadoFacturado,
		EstadoCobrado,
	}
}

// ParseEstado valida que el string corresponda a un estado conocido.
func ParseEstado(s string) (Estado, error) {
	e := Estado(s)
	for _, v := range Estados() {
		if e == v {
			return e, nil
		}
	}
	return "", fmt.Errorf("estado no válido: %q", s)
}
