package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationFailedError_MatchesBothSentinels(t *testing.T) {
	v := NewValidator()
	v.Field("quantity", -1, PositiveQuantity)
	err := ValidateAndReturnError(v)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestDatabaseError_Classification(t *testing.T) {
	err := DatabaseError("upsert job part", errors.New("disk I/O error"))

	assert.True(t, errors.Is(err, ErrDatabase))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "disk I/O error")
}
