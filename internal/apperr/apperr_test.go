package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad"), KindValidation},
		{"wrapped not found", fmt.Errorf("load: %w", NotFound("missing")), KindNotFound},
		{"plain error", errors.New("boom"), KindInternal},
		{"conflict", Conflict("taken"), KindConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestPublicHidesCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := Internal("failed to create user", cause)

	msg, details := Public(err)
	assert.Equal(t, "failed to create user", msg)
	assert.Empty(t, details)
	assert.ErrorIs(t, err, cause)

	msg, _ = Public(errors.New("raw driver text"))
	assert.Equal(t, "internal server error", msg)
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Forbidden("nope"))
	assert.True(t, Is(err, KindForbidden))
	assert.False(t, Is(err, KindNotFound))
}
