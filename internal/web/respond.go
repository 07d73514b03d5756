// Package web maps domain errors onto HTTP responses with stable error
// codes, so every controller answers failures the same way.
package web

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "atelier/internal/errors"
)

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

func RespondJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func RespondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		RespondJSON(w, logger, http.StatusBadRequest, errorResponse{
			Error:   "VALIDATION_ERROR",
			Message: ve.Message,
			Details: ve.Details,
		})
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		RespondJSON(w, logger, http.StatusNotFound, errorResponse{
			Error:   "NOT_FOUND",
			Message: nfe.Message,
		})
		return
	}

	if ce, ok := apperrors.IsConflictError(err); ok {
		RespondJSON(w, logger, http.StatusConflict, errorResponse{
			Error:   "CONFLICT",
			Message: ce.Message,
		})
		return
	}

	if ae, ok := apperrors.IsAttachmentUploadError(err); ok {
		RespondJSON(w, logger, http.StatusBadGateway, errorResponse{
			Error:   "ATTACHMENT_UPLOAD_FAILED",
			Message: ae.Message,
			Details: []apperrors.ValidationDetail{{Field: "attachments", Message: ae.Filename}},
		})
		return
	}

	if ee, ok := apperrors.IsExternalServiceError(err); ok {
		logger.Warn("external service failure", zap.String("service", ee.Service), zap.Error(err))
		RespondJSON(w, logger, http.StatusBadGateway, errorResponse{
			Error:   "EXTERNAL_SERVICE_ERROR",
			Message: ee.Message,
		})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	RespondJSON(w, logger, http.StatusInternalServerError, errorResponse{
		Error:   "INTERNAL_ERROR",
		Message: "an unexpected error occurred",
	})
}

func RespondValidationError(w http.ResponseWriter, logger *zap.Logger, message string, details ...apperrors.ValidationDetail) {
	RespondJSON(w, logger, http.StatusBadRequest, errorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}
