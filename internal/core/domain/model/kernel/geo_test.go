package kernel_test

import (
	"testing"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("should create point with valid coordinates", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(41.0082, 28.9784)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 41.0082, p.Lat(), 1e-9)
		assert.InDelta(t, 28.9784, p.Lng(), 1e-9)
	})

	t.Run("should accept boundary values", func(t *testing.T) {
		for _, pair := range [][2]float64{
			{kernel.LatitudeMin, kernel.LongitudeMin},
			{kernel.LatitudeMax, kernel.LongitudeMax},
			{0, 0},
		} {
			p, err := kernel.NewGeoPoint(pair[0], pair[1])
			require.NoError(t, err)
			require.NoError(t, p.Validate())
		}
	})

	t.Run("should fail with latitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(90.5, 0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should fail with longitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -180.5)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should join both range errors", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(100, 200)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var p kernel.GeoPoint

		require.Error(t, p.Validate())
		require.ErrorIs(t, p.Validate(), errs.ErrValueIsRequired)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	a, _ := kernel.NewGeoPoint(1.5, 2.5)
	b, _ := kernel.NewGeoPoint(1.5, 2.5)
	c, _ := kernel.NewGeoPoint(1.5, 2.6)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
