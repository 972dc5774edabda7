package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jakechorley/ilford-attendance/pkg/core/services"
)

// errorResponse is the body of every failed request.
//
//	{ "success": false, "message": "No tienes permisos para realizar esta acción" }
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Message: msg})
}

// statusOf maps a service error kind to an HTTP status
func statusOf(kind services.ErrorKind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err using its user-facing message. Errors that did not
// come from the services layer are logged and reported as internal.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		h.Log.Error("unexpected error", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeMessage(w, statusOf(services.KindOf(err)), services.MessageOf(err))
}

// decodeBody reads a JSON request body into dst
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
