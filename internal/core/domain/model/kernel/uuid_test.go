package kernel_test

import (
	"testing"

	"studydesk/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	first := kernel.NewUUID()
	second := kernel.NewUUID()

	require.NoError(t, first.Validate())
	assert.False(t, first.IsEqual(second))
	assert.False(t, first.IsZero())
}

func TestUUIDFromString(t *testing.T) {
	const raw = "550e8400-e29b-41d4-a716-446655440000"

	t.Run("parses canonical form", func(t *testing.T) {
		id, err := kernel.UUIDFromString(raw)

		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
	})

	t.Run("parses braced and urn forms", func(t *testing.T) {
		braced, err := kernel.UUIDFromString("{" + raw + "}")
		require.NoError(t, err)

		urn, err := kernel.UUIDFromString("urn:uuid:" + raw)
		require.NoError(t, err)

		assert.True(t, braced.IsEqual(urn))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("rejects nil uuid", func(t *testing.T) {
		_, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	assert.True(t, zero.IsZero())
	require.ErrorIs(t, zero.Validate(), kernel.ErrUUIDIsNotConstructed)
}
