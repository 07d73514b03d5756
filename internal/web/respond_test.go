package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "atelier/internal/errors"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "validation",
			err:            apperrors.NewValidationError("invalid"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "not found",
			err:            apperrors.NewNotFoundError("missing"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:           "conflict",
			err:            apperrors.NewConflictError("duplicate"),
			expectedStatus: http.StatusConflict,
			expectedCode:   "CONFLICT",
		},
		{
			name:           "attachment upload",
			err:            apperrors.NewAttachmentUploadError("upload failed", "photo.jpg", errors.New("io")),
			expectedStatus: http.StatusBadGateway,
			expectedCode:   "ATTACHMENT_UPLOAD_FAILED",
		},
		{
			name:           "external service",
			err:            apperrors.NewExternalServiceError("brasilapi", "timeout", errors.New("net")),
			expectedStatus: http.StatusBadGateway,
			expectedCode:   "EXTERNAL_SERVICE_ERROR",
		},
		{
			name:           "anything else",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			RespondError(rec, zap.NewNop(), tt.err)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCode, body.Error)
		})
	}
}

func TestAttachmentUploadErrorExposesFilename(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondError(rec, zap.NewNop(), apperrors.NewAttachmentUploadError("upload failed", "photo.jpg", nil))

	var body struct {
		Details []apperrors.ValidationDetail `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Details, 1)
	assert.Equal(t, "photo.jpg", body.Details[0].Message)
}
