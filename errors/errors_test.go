package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"collision", NewCollisionError("atom %s declared twice", "sdk://pkg/foo"), ErrCollision},
		{"malformed", NewMalformedManifestError("bad field %q", "deps"), ErrMalformedManifest},
		{"missing dep", Wrap(ErrMissingDependency, "sdk://pkg/bar"), ErrMissingDependency},
		{"category", Wrapf(ErrCategoryViolation, "atom %s", "sdk://pkg/baz"), ErrCategoryViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Is(tt.err, tt.sentinel))
			assert.False(t, Is(tt.err, ErrIncompatible))
		})
	}
}

func TestIsCollisionError(t *testing.T) {
	assert.False(t, IsCollisionError(nil))
	assert.False(t, IsCollisionError(New("unrelated")))
	assert.True(t, IsCollisionError(Wrap(ErrCollision, "context")))
}

func TestIsMalformedManifestError(t *testing.T) {
	assert.False(t, IsMalformedManifestError(nil))
	assert.True(t, IsMalformedManifestError(Wrapf(ErrMalformedManifest, "file %s", "m.json")))
}

func TestHintsSurvive(t *testing.T) {
	err := WithHint(Wrap(ErrCategoryViolation, "atom sdk://pkg/foo"),
		"lower the atom's category or publish its dependency")
	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Contains(t, hints[0], "publish its dependency")
}
