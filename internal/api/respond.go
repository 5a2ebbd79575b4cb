package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/nishasharma303/NitiVimarsh/domain/core"
	"github.com/nishasharma303/NitiVimarsh/internal/errors"
)

// errorResponse is the envelope for every non-2xx body.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeDomainError translates domain sentinels into HTTP statuses and
// taxonomy codes. Anything unrecognized is reported as internal.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case core.IsNotFoundError(err):
		writeError(w, http.StatusNotFound, errors.CodeNotFound, err.Error())
	case core.IsValidationError(err):
		writeError(w, http.StatusBadRequest, errors.CodeValidationError, err.Error())
	case core.IsBaselineError(err):
		writeError(w, http.StatusUnprocessableEntity, errors.CodeStaleBaseline, err.Error())
	case core.IsSimulationError(err):
		writeError(w, http.StatusInternalServerError, errors.CodeSimulationFailed, err.Error())
	case errors.IsAppError(err):
		writeError(w, http.StatusInternalServerError, errors.GetCode(err), err.Error())
	default:
		writeError(w, http.StatusInternalServerError, errors.CodeInternalError, err.Error())
	}
}
