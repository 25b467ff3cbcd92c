package kernel_test

import (
	"testing"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderNumber(t *testing.T) {
	t.Run("should create number from sequence value", func(t *testing.T) {
		n, err := kernel.NewOrderNumber(1024)

		require.NoError(t, err)
		require.NoError(t, n.Validate())
		assert.Equal(t, "ORD-1024", n.String())
		assert.Equal(t, int64(1024), n.Seq())
	})

	t.Run("should reject values below the sequence start", func(t *testing.T) {
		for _, seq := range []int64{0, -1, 999} {
			_, err := kernel.NewOrderNumber(seq)
			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})
}

func TestParseOrderNumber(t *testing.T) {
	t.Run("should parse canonical form", func(t *testing.T) {
		n, err := kernel.ParseOrderNumber("ORD-1000")

		require.NoError(t, err)
		assert.Equal(t, int64(1000), n.Seq())
	})

	t.Run("round trips through String", func(t *testing.T) {
		n, _ := kernel.NewOrderNumber(54321)
		parsed, err := kernel.ParseOrderNumber(n.String())

		require.NoError(t, err)
		assert.True(t, n.IsEqual(parsed))
	})

	t.Run("should fail without prefix", func(t *testing.T) {
		_, err := kernel.ParseOrderNumber("1024")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail with non-numeric suffix", func(t *testing.T) {
		_, err := kernel.ParseOrderNumber("ORD-abc")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail with suffix below sequence start", func(t *testing.T) {
		_, err := kernel.ParseOrderNumber("ORD-42")

		require.Error(t, err)
	})
}

func TestOrderNumber_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var n kernel.OrderNumber

		require.Error(t, n.Validate())
	})
}
