package edp

import (
	"fmt"
	"strings"

	"github.com/rentalsur/edp-api/internal/domain"
	"github.com/rentalsur/edp-api/internal/domain/entity"
)

// TransitionError indica una transición no permitida e incluye los destinos
// legales desde el estado de origen. Unwrap retorna domain.ErrInvalidTransition
// para que los callers clasifiquen con errors.Is.
type TransitionError struct {
	Desde      entity.Estado
	Hacia      entity.Estado
	Permitidas []entity.Estado
}

func (e *TransitionError) Error() string {
	if len(e.Permitidas) == 0 {
		return fmt.Sprintf("no se puede cambiar de %s a %s: %s es un estado final", e.Desde, e.Hacia, e.Desde)
	}
	permitidas := make([]string, len(e.Permitidas))
	for i, p := range e.Permitidas {
		permitidas[i] = string(p)
	}
	return fmt.Sprintf("no se puede cambiar de %s a %s. Transiciones permitidas: %s",
		e.Desde, e.Hacia, strings.Join(permitidas, ", "))
}

func (e *TransitionError) Unwrap() error { return domain.ErrInvalidTransition }

// Transiciones devuelve la tabla canónica de transiciones del ciclo de vida
// de un EDP. Es la única fuente de verdad sobre qué cambios de estado son
// legales; se retorna una copia nueva en cada llamada para que nadie pueda
// mutar la tabla compartida.
func Transiciones() map[entity.Estado][]entity.Estado {
	return map[entity.Estado][]entity.Estado{
		entity.EstadoBorrador:  {entity.EstadoAbierto},
		entity.EstadoAbierto:   {entity.EstadoCerrado},
		entity.EstadoCerrado:   {entity.EstadoValidado, entity.EstadoAbierto}, // se puede reabrir
		entity.EstadoValidado:  {entity.EstadoFacturado},
		entity.EstadoFacturado: {entity.EstadoCobrado},
		entity.EstadoCobrado:   {}, // estado final
	}
}

// Maquina valida transiciones de estado de EDPs contra una tabla inmutable.
type Maquina struct {
	transiciones map[entity.Estado][]entity.Estado
}

// NewMaquina construye la máquina con la tabla canónica.
func NewMaquina() *Maquina {
	return NewMaquinaCon(Transiciones())
}

// NewMaquinaCon construye la máquina con una tabla inyectada (tests).
func NewMaquinaCon(transiciones map[entity.Estado][]entity.Estado) *Maquina {
	return &Maquina{transiciones: transiciones}
}

// CanTransition indica si la transición de `desde` a `hacia` es legal.
// Una auto-transición nunca es legal.
func (m *Maquina) CanTransition(desde, hacia entity.Estado) bool {
	if desde == hacia {
		return false
	}
	for _, p := range m.transiciones[desde] {
		if p == hacia {
			return true
		}
	}
	return false
}

// AllowedTargets devuelve los estados alcanzables desde `desde`.
func (m *Maquina) AllowedTargets(desde entity.Estado) []entity.Estado {
	permitidas := m.transiciones[desde]
	out := make([]entity.Estado, len(permitidas))
	copy(out, permitidas)
	return out
}

// ValidateTransition retorna nil si la transición es legal.
// Auto-transición -> domain.ErrInvalidState ("ya está en este estado").
// Transición fuera de tabla -> *TransitionError con los destinos permitidos.
func (m *Maquina) ValidateTransition(desde, hacia entity.Estado) error {
	if desde == hacia {
		return fmt.Errorf("%w: el EDP ya está en estado %s", domain.ErrInvalidState, desde)
	}
	if !m.CanTransition(desde, hacia) {
		return &TransitionError{
			Desde:      desde,
			Hacia:      hacia,
			Permitidas: m.AllowedTargets(desde),
		}
	}
	return nil
}
