package res

import (
	"net/http"

	"github.com/goccy/go-json"
)

// UnknownError is reported when a failure carries no usable message.
const UnknownError = "An unknown error occurred"

// ErrorResponse is the envelope for every non-2xx JSON body.
type ErrorResponse struct {
	Error string `json:"error"`
}

func Json(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		message = UnknownError
	}
	Json(w, ErrorResponse{Error: message}, statusCode)
}
