package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Message: "duplicate key"})

	code, ok := ErrorCode(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "23505", code)

	_, ok = ErrorCode(errors.New("connection reset"))
	assert.False(t, ok)
}
