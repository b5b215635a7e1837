package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
	"github.com/wadjakorntonsri/fanlink/pkg/validation"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrObjektOwnerNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrProfileExists),
		errors.Is(err, domain.ErrSiteIDTaken),
		errors.Is(err, domain.ErrReorderInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidSiteID),
		errors.Is(err, domain.ErrTemplateNotFound),
		errors.Is(err, domain.ErrInvalidItem):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps domain errors to status codes. Validation failures are
// written as JSON; unknown errors are logged and hidden.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, verr)
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		http.Error(w, "internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
