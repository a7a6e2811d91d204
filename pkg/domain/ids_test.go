package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "kyc-gateway/pkg/domain-errors"
)

func TestParseUserID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("accepts valid UUID and round-trips", func(t *testing.T) {
		raw := uuid.NewString()
		id, err := ParseUserID(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
		assert.False(t, id.IsNil())
	})
}

func TestNewIDsAreDistinct(t *testing.T) {
	assert.NotEqual(t, NewUserID(), NewUserID())
	assert.NotEqual(t, NewIssuerID(), NewIssuerID())
	assert.False(t, NewUserID().IsNil())
}

func TestIsNil(t *testing.T) {
	var zero UserID
	assert.True(t, zero.IsNil())
}
