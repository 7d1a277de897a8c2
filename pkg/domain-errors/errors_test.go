package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches own code", func(t *testing.T) {
		err := New(CodeNotFound, "member not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeValidation))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		inner := errors.New("map lookup miss")
		err := Wrap(inner, CodeNotFound, "member not found")
		wrapped := fmt.Errorf("list members: %w", err)
		assert.True(t, HasCode(wrapped, CodeNotFound))
		assert.True(t, errors.Is(wrapped, inner))
	})

	t.Run("untyped error has no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, Wrap(nil, CodeInternal, "ignored"))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeNotFound:            http.StatusNotFound,
		CodeInvalidAmount:       http.StatusBadRequest,
		CodeValidation:          http.StatusBadRequest,
		CodeInsufficientFunds:   http.StatusUnprocessableEntity,
		CodeInvalidTransition:   http.StatusConflict,
		CodeDuplicateMembership: http.StatusConflict,
		CodeInternal:            http.StatusInternalServerError,
		Code("unknown"):         http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
}
