package edp_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalsur/edp-api/internal/domain"
	"github.com/rentalsur/edp-api/internal/domain/edp"
	"github.com/rentalsur/edp-api/internal/domain/entity"
)

// TestAllowedTargets_TablaExhaustiva verifica que cada estado tiene
// exactamente los destinos de la tabla canónica y ningún otro.
func TestAllowedTargets_TablaExhaustiva(t *testing.T) {
	m := edp.NewMaquina()

	esperado := map[entity.Estado][]entity.Estado{
		entity.EstadoBorrador:  {entity.EstadoAbierto},
		entity.EstadoAbierto:   {entity.EstadoCerrado},
		entity.EstadoCerrado:   {entity.EstadoValidado, entity.EstadoAbierto},
		entity.EstadoValidado:  {entity.EstadoFacturado},
		entity.EstadoFacturado: {entity.EstadoCobrado},
		entity.EstadoCobrado:   {},
	}
	require.Len(t, esperado, len(entity.Estados()), "la tabla esperada debe cubrir todos los estados")

	for _, desde := range entity.Estados() {
		assert.ElementsMatch(t, esperado[desde], m.AllowedTargets(desde),
			"destinos desde %s", desde)

		// Todo par (desde, hacia) fuera de la tabla debe rechazarse
		for _, hacia := range entity.Estados() {
			permitida := false
			for _, p := range esperado[desde] {
				if p == hacia {
					permitida = true
				}
			}
			assert.Equal(t, permitida, m.CanTransition(desde, hacia),
				"CanTransition(%s, %s)", desde, hacia)
		}
	}
}

func TestCanTransition_AutoTransicionRechazada(t *testing.T) {
	m := edp.NewMaquina()
	for _, e := range entity.Estados() {
		assert.False(t, m.CanTransition(e, e), "auto-transición en %s", e)

		err := m.ValidateTransition(e, e)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	}
}

func TestCobrado_EsEstadoFinal(t *testing.T) {
	m := edp.NewMaquina()
	assert.Empty(t, m.AllowedTargets(entity.EstadoCobrado))

	for _, hacia := range entity.Estados() {
		if hacia == entity.EstadoCobrado {
			continue
		}
		err := m.ValidateTransition(entity.EstadoCobrado, hacia)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
}

func TestValidateTransition_MensajeEnumeraDestinos(t *testing.T) {
	m := edp.NewMaquina()

	err := m.ValidateTransition(entity.EstadoAbierto, entity.EstadoValidado)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	var te *edp.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, []entity.Estado{entity.EstadoCerrado}, te.Permitidas)
	assert.Contains(t, err.Error(), "Cerrado")
}

func TestValidateTransition_Reapertura(t *testing.T) {
	m := edp.NewMaquina()
	assert.NoError(t, m.ValidateTransition(entity.EstadoCerrado, entity.EstadoAbierto))
	assert.NoError(t, m.ValidateTransition(entity.EstadoCerrado, entity.EstadoValidado))
}

// TestTransiciones_CopiaInmutable verifica que mutar el mapa retornado no
// afecta a una máquina construida después.
func TestTransiciones_CopiaInmutable(t *testing.T) {
	tabla := edp.Transiciones()
	tabla[entity.EstadoCobrado] = []entity.Estado{entity.EstadoBorrador}

	m := edp.NewMaquina()
	assert.False(t, m.CanTransition(entity.EstadoCobrado, entity.EstadoBorrador))
}

func TestParseEstado(t *testing.T) {
	e, err := entity.ParseEstado("Abierto")
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoAbierto, e)

	_, err = entity.ParseEstado("abierto")
	assert.Error(t, err, "los estados distinguen mayúsculas")

	_, err = entity.ParseEstado("Pendiente")
	assert.Error(t, err)
}
