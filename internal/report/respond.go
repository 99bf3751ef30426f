package report

import (
	"errors"
	"fmt"
	"net/http"

	"game-reports/pkg/logger"
	"game-reports/pkg/res"
)

// errUnknown marks failures that carry no usable description.
var errUnknown = errors.New("unknown failure")

// RequestError rejects a request before any query runs.
type RequestError struct {
	Status  int
	Message string
}

func (e RequestError) Error() string { return e.Message }

// BadRequest returns a 400 RequestError.
func BadRequest(message string) error {
	return RequestError{Status: http.StatusBadRequest, Message: message}
}

// Recovered converts a recovered panic value into an error. Values that are
// not errors map to the unknown-error message.
func Recovered(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("%w: %v", errUnknown, v)
}

// ErrorMessage returns the text placed in the error envelope.
func ErrorMessage(err error) string {
	if err == nil || errors.Is(err, errUnknown) || err.Error() == "" {
		return res.UnknownError
	}
	return err.Error()
}

// Respond writes the outcome of one report request: the JSON array on
// success, 400 for rejected input, 500 for everything else.
func Respond[T any](w http.ResponseWriter, r *http.Request, name string, data []T, err error) {
	if err == nil {
		if data == nil {
			data = []T{}
		}
		res.Json(w, data, http.StatusOK)
		return
	}

	var reqErr RequestError
	if errors.As(err, &reqErr) {
		res.Error(w, reqErr.Message, reqErr.Status)
		return
	}

	logger.FromRequest(r).Error().
		Err(err).
		Str("report", name).
		Msg("report query failed")
	res.Error(w, ErrorMessage(err), http.StatusInternalServerError)
}
