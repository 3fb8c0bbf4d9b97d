package types

import (
	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance for all request payloads.
var Validate = validator.New()

// ValidationMessage flattens the first validator error into a stable,
// client-facing message.
func ValidationMessage(err error) string {
	if err == nil {
		return ""
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return fe.Field() + " failed validation on '" + fe.Tag() + "'"
	}
	return err.Error()
}
