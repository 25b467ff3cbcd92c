package order_test

import (
	"testing"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmergencyAlert(t *testing.T) {
	newAlert := func(t *testing.T) *order.EmergencyAlert {
		point, err := kernel.NewGeoPoint(41.0082, 28.9784)
		require.NoError(t, err)
		number, err := kernel.NewOrderNumber(1000)
		require.NoError(t, err)

		a, err := order.NewEmergencyAlert(kernel.NewUUID(), number, kernel.NewUUID(), point)
		require.NoError(t, err)
		return a
	}

	t.Run("new alert starts unresolved", func(t *testing.T) {
		a := newAlert(t)

		require.NoError(t, a.Validate())
		assert.False(t, a.IsResolved())
		assert.False(t, a.CreatedAt().IsZero())
	})

	t.Run("resolve and unresolve toggle the flag", func(t *testing.T) {
		a := newAlert(t)

		a.Resolve()
		assert.True(t, a.IsResolved())

		a.Unresolve()
		assert.False(t, a.IsResolved())
	})

	t.Run("resolve is idempotent", func(t *testing.T) {
		a := newAlert(t)

		a.Resolve()
		a.Resolve()

		assert.True(t, a.IsResolved())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var a order.EmergencyAlert
		require.Error(t, a.Validate())
	})
}

func TestHandoverPhoto(t *testing.T) {
	t.Run("should create photo for each side", func(t *testing.T) {
		number, err := kernel.NewOrderNumber(1000)
		require.NoError(t, err)

		for _, raw := range []string{"front", "back", "left", "right"} {
			side, err := order.ParsePhotoSide(raw)
			require.NoError(t, err)

			p, err := order.NewHandoverPhoto(kernel.NewUUID(), number, side, "https://cdn.example.com/p.jpg")
			require.NoError(t, err)
			require.NoError(t, p.Validate())
			assert.Equal(t, raw, p.Side().String())
		}
	})

	t.Run("should reject unknown side", func(t *testing.T) {
		_, err := order.ParsePhotoSide("top")
		require.Error(t, err)
	})

	t.Run("should reject empty url", func(t *testing.T) {
		number, err := kernel.NewOrderNumber(1000)
		require.NoError(t, err)
		side, err := order.ParsePhotoSide("front")
		require.NoError(t, err)

		_, err = order.NewHandoverPhoto(kernel.NewUUID(), number, side, "")
		require.Error(t, err)
	})
}
