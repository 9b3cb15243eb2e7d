package apperror

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FromValidation turns ozzo-validation errors into a Validation error with one
// "field: message" entry per failed field, sorted by field name.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}

	var fields validation.Errors
	if !errors.As(err, &fields) {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return Internal(err)
		}
		return Validation(err.Error())
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	details := make([]string, 0, len(keys))
	for _, k := range keys {
		details = append(details, fmt.Sprintf("%s: %s", k, fields[k].Error()))
	}

	appErr := Validation(details...)
	appErr.Err = err
	return appErr
}
