package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want Kind
	}{
		{name: "validation", in: Validation("bad"), want: KindValidation},
		{name: "wrapped conflict", in: fmt.Errorf("signup: %w", Conflict("taken")), want: KindConflict},
		{name: "authentication", in: Authentication(), want: KindAuthentication},
		{name: "invalid token", in: InvalidToken(), want: KindInvalidToken},
		{name: "external", in: ExternalService(errors.New("smtp down")), want: KindExternalService},
		{name: "plain error", in: errors.New("boom"), want: KindInternal},
		{name: "nil", in: nil, want: KindInternal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, KindOf(tt.in))
		})
	}
}

func TestPublicMessage_HidesInternals(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "passwords do not match", PublicMessage(Validation("passwords do not match")))
	assert.Equal(t, "invalid email or password", PublicMessage(Authentication()))
	assert.Equal(t, "invalid or expired recovery code", PublicMessage(InvalidToken()))
	assert.Equal(t, "internal server error", PublicMessage(Internal(errors.New("pq: connection refused"))))
	assert.Equal(t, "internal server error", PublicMessage(errors.New("raw")))
	assert.NotContains(t, PublicMessage(ExternalService(errors.New("535 auth failed"))), "535")
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: timeout")
	err := ExternalService(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "external_service")
}
