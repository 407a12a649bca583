package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindingErrorMessage arma el mensaje de validacion reportando el primer
// campo que fallo.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := strings.ToLower(verrs[0].Field())
		switch verrs[0].Tag() {
		case "required":
			return "Bad request: " + field + " is required"
		case "email":
			return "Bad request: " + field + " must be a valid email"
		case "min", "max":
			return "Bad request: " + field + " length is invalid"
		default:
			return "Bad request: " + field + " is invalid"
		}
	}
	return "Bad request"
}
