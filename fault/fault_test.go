package fault

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindUnauthorized: http.StatusUnauthorized,
		KindValidation:   http.StatusBadRequest,
		KindConflict:     http.StatusConflict,
		KindNotFound:     http.StatusNotFound,
		KindIO:           http.StatusInternalServerError,
	}
	for k, want := range cases {
		assert.Equal(t, want, k.Status(), k.String())
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("handler: %w", Conflict("slug %q taken", "a"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, Is(err, KindConflict))
	assert.False(t, Is(err, KindNotFound))
	assert.Equal(t, `slug "a" taken`, Message(err, "fallback"))
}

func TestUnclassifiedErrorsAreIO(t *testing.T) {
	err := errors.New("open /secret/path: permission denied")
	assert.Equal(t, KindIO, KindOf(err))
	assert.False(t, Is(err, KindIO))
	assert.Equal(t, "Failed", Message(err, "Failed"))
}

func TestIOKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := IO("Failed to save", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to save", Message(err, "other"))
	assert.Contains(t, err.Error(), "disk full")
}
