package apperror

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("claim order: %w", Conflict("insufficient stock", Detail{Item: "Polo/M", Reason: "insufficient"}))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, Is(err, KindConflict))
	assert.Len(t, DetailsOf(err), 1)
	assert.Contains(t, err.Error(), "Polo/M: insufficient")
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("boom")))
	assert.False(t, Is(nil, KindInternal))
	assert.Nil(t, DetailsOf(fmt.Errorf("boom")))
}
