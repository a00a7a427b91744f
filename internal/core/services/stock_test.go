package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zonebms/zone_backend/internal/apperrors"
	"github.com/zonebms/zone_backend/internal/core/services"
)

func TestReserveStock(t *testing.T) {
	t.Run("sufficient stock", func(t *testing.T) {
		next, err := services.ReserveStock("p1", decimal.NewFromInt(5), decimal.NewFromInt(3))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(2).Equal(next))
	})

	t.Run("exact stock", func(t *testing.T) {
		next, err := services.ReserveStock("p1", decimal.NewFromInt(3), decimal.NewFromInt(3))
		require.NoError(t, err)
		assert.True(t, next.IsZero())
	})

	t.Run("insufficient stock names product and shortfall", func(t *testing.T) {
		_, err := services.ReserveStock("p1", decimal.NewFromInt(2), decimal.NewFromInt(3))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
		assert.Contains(t, err.Error(), "p1")
		assert.Contains(t, err.Error(), "1")
	})
}

func TestRestoreStock(t *testing.T) {
	next := services.RestoreStock(decimal.NewFromInt(2), decimal.NewFromInt(3))
	assert.True(t, decimal.NewFromInt(5).Equal(next))
}
