package server

import (
	"encoding/json"
	"net/http"

	stderrors "errors"

	"github.com/framewright/framewright/pkg/errors"
	"github.com/framewright/framewright/pkg/store"
)

// errorBody is the JSON envelope for all error responses.
type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var body errorBody
	body.Error.Code = errors.GetCode(err)
	body.Error.Message = errors.UserMessage(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
		if stderrors.Is(err, store.ErrNotFound) {
			body.Error.Code = errors.ErrCodeAssemblyNotFound
		}
	}
	writeJSON(w, statusFor(err), body)
}

// statusFor maps structured error codes to HTTP statuses. Unknown
// codes map to 500 so new failures surface loudly.
func statusFor(err error) int {
	if stderrors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidNodeType,
		errors.ErrCodeInvalidPanelType,
		errors.ErrCodeInvalidAssemblyID,
		errors.ErrCodeInvalidDimension,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeDuplicateID:
		return http.StatusConflict
	case errors.ErrCodeNotFound,
		errors.ErrCodeNodeNotFound,
		errors.ErrCodePanelNotFound,
		errors.ErrCodeAssemblyNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
