package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTaxonomyHelpers(t *testing.T) {
	verr := NewValidationError("invalid input", ValidationDetail{Field: "name", Message: "name is required"})
	nfe := NewNotFoundError("not found")
	conflict := NewConflictError("duplicate")

	_, ok := IsValidationError(verr)
	assert.True(t, ok)
	_, ok = IsValidationError(nfe)
	assert.False(t, ok)

	_, ok = IsNotFoundError(nfe)
	assert.True(t, ok)

	_, ok = IsConflictError(conflict)
	assert.True(t, ok)
}

func TestAttachmentUploadErrorCarriesFilename(t *testing.T) {
	cause := stderrors.New("bucket unavailable")
	err := NewAttachmentUploadError("upload failed", "123_order_1.jpg", cause)

	ae, ok := IsAttachmentUploadError(err)
	require.True(t, ok)
	assert.Equal(t, "123_order_1.jpg", ae.Filename)
	assert.ErrorIs(t, err, cause)
}

func TestExternalServiceErrorUnwraps(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewExternalServiceError("brasilapi", "lookup failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "brasilapi")

	wrapped := fmt.Errorf("resolving address: %w", err)
	var target *ExternalServiceError
	assert.True(t, stderrors.As(wrapped, &target))
}
