package entity_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koosco-commerce/inventory-service/internal/domain"
	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Construcción e invariante
// ──────────────────────────────────────────────────────────────────────────────

func TestNewStock_Valido(t *testing.T) {
	s, err := entity.NewStock(10, 3)
	require.NoError(t, err)

	assert.Equal(t, 10, s.Total())
	assert.Equal(t, 3, s.Reserved())
	assert.Equal(t, 7, s.Available(), "disponible = total - reservado")
}

func TestNewStock_TotalNegativo_RetornaError(t *testing.T) {
	_, err := entity.NewStock(-1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestNewStock_ReservadoNegativo_RetornaError(t *testing.T) {
	_, err := entity.NewStock(5, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestNewStock_ReservadoMayorQueTotal_RetornaError(t *testing.T) {
	_, err := entity.NewStock(5, 6)
	assert.ErrorIs(t, err, domain.ErrAdjustNotAllowed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reserve / Confirm / CancelReservation
// ──────────────────────────────────────────────────────────────────────────────

func TestReserve_ApartaDisponible(t *testing.T) {
	s, err := entity.NewStock(10, 0)
	require.NoError(t, err)

	s2, err := s.Reserve(4)
	require.NoError(t, err)

	assert.Equal(t, 10, s2.Total(), "reservar no toca el total")
	assert.Equal(t, 4, s2.Reserved())
	assert.Equal(t, 6, s2.Available())
	assert.Equal(t, 0, s.Reserved(), "el valor original no debe mutar")
}

func TestReserve_DisponibleInsuficiente_RetornaError(t *testing.T) {
	s, err := entity.NewStock(10, 7)
	require.NoError(t, err)

	_, err = s.Reserve(4)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"reservar 4 con solo 3 disponibles debe fallar")
}

func TestReserve_CantidadNoPositiva_RetornaError(t *testing.T) {
	s, err := entity.NewStock(10, 0)
	require.NoError(t, err)

	_, err = s.Reserve(0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = s.Reserve(-2)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestConfirm_DescuentaTotalYReservado(t *testing.T) {
	s, err := entity.NewStock(10, 6)
	require.NoError(t, err)

	s2, err := s.Confirm(4)
	require.NoError(t, err)

	assert.Equal(t, 6, s2.Total())
	assert.Equal(t, 2, s2.Reserved())
	assert.Equal(t, 4, s2.Available(), "confirmar no cambia el disponible")
}

func TestConfirm_ReservadoInsuficiente_RetornaError(t *testing.T) {
	s, err := entity.NewStock(10, 2)
	require.NoError(t, err)

	_, err = s.Confirm(3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCancelReservation_DevuelveAlDisponible(t *testing.T) {
	s, err := entity.NewStock(10, 6)
	require.NoError(t, err)

	s2, err := s.CancelReservation(6)
	require.NoError(t, err)

	assert.Equal(t, 10, s2.Total())
	assert.Equal(t, 0, s2.Reserved())
}

// Reservar y cancelar la misma cantidad debe devolver el stock original.
func TestReserve_CancelReservation_SonInversas(t *testing.T) {
	s, err := entity.NewStock(20, 5)
	require.NoError(t, err)

	for _, q := range []int{1, 3, 15} {
		s2, err := s.Reserve(q)
		require.NoError(t, err)
		s3, err := s2.CancelReservation(q)
		require.NoError(t, err)

		assert.Equal(t, s.Total(), s3.Total(), "cancelar debe deshacer la reserva (q=%d)", q)
		assert.Equal(t, s.Reserved(), s3.Reserved(), "cancelar debe deshacer la reserva (q=%d)", q)
	}
}

func TestCancelReservation_ReservadoInsuficiente_RetornaError(t *testing.T) {
	s, err := entity.NewStock(10, 1)
	require.NoError(t, err)

	_, err = s.CancelReservation(2)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust / Increase / Decrease
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_FijaTotalAbsoluto(t *testing.T) {
	s, err := entity.NewStock(10, 3)
	require.NoError(t, err)

	s2, err := s.Adjust(5)
	require.NoError(t, err)

	assert.Equal(t, 5, s2.Total())
	assert.Equal(t, 3, s2.Reserved(), "ajustar no toca lo reservado")
}

func TestAdjust_PorDebajoDeReservado_RetornaError(t *testing.T) {
	s, err := entity.NewStock(10, 4)
	require.NoError(t, err)

	_, err = s.Adjust(3)
	assert.ErrorIs(t, err, domain.ErrAdjustNotAllowed,
		"no se puede fijar el total por debajo de lo ya reservado")
}

func TestIncrease_SumaAlTotal(t *testing.T) {
	s, err := entity.NewStock(10, 3)
	require.NoError(t, err)

	s2, err := s.Increase(7)
	require.NoError(t, err)

	assert.Equal(t, 17, s2.Total())
	assert.Equal(t, 3, s2.Reserved())
}

func TestDecrease_RestaDelTotal(t *testing.T) {
	s, err := entity.NewStock(10, 3)
	require.NoError(t, err)

	s2, err := s.Decrease(5)
	require.NoError(t, err)

	assert.Equal(t, 5, s2.Total())
	assert.Equal(t, 3, s2.Reserved())
}

func TestDecrease_DejariaTotalBajoReservado_RetornaError(t *testing.T) {
	s, err := entity.NewStock(10, 6)
	require.NoError(t, err)

	_, err = s.Decrease(5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// El invariante 0 <= reservado <= total se mantiene bajo cualquier secuencia
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_InvarianteBajoSecuenciasAleatorias(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		s, err := entity.NewStock(rng.Intn(50), 0)
		require.NoError(t, err)

		for step := 0; step < 50; step++ {
			q := rng.Intn(10) - 2 // incluye cantidades inválidas a propósito
			var next entity.Stock
			switch rng.Intn(6) {
			case 0:
				next, err = s.Reserve(q)
			case 1:
				next, err = s.Confirm(q)
			case 2:
				next, err = s.CancelReservation(q)
			case 3:
				next, err = s.Adjust(q)
			case 4:
				next, err = s.Increase(q)
			case 5:
				next, err = s.Decrease(q)
			}
			if err != nil {
				continue // la operación rechazada no debe haber producido estado
			}
			s = next
			require.GreaterOrEqual(t, s.Reserved(), 0, "reservado nunca negativo")
			require.LessOrEqual(t, s.Reserved(), s.Total(), "reservado nunca supera el total")
		}
	}
}
