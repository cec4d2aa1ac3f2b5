package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tasklyhq/taskly-server/internal/errs"
)

// envelope is the uniform JSON response shape.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, e envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(e)
}

// ok writes a success envelope with data.
func ok(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// okMsg writes a success envelope with a message only.
func okMsg(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: msg})
}

// fail writes a failure envelope.
func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg})
}

// validationDetail strips the sentinel prefix from a wrapped validation
// error, leaving the user-facing detail.
func validationDetail(err error) string {
	return strings.TrimPrefix(err.Error(), errs.ErrValidation.Error()+": ")
}
