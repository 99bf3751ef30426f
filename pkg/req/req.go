package req

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// IsValid checks payload against its validate tags.
func IsValid[T any](payload T) error {
	return validate.Struct(payload)
}
