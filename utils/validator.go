package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TranslateValidationError flattens binding failures into a single
// readable message.
func TranslateValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		var messages []string
		for _, fe := range ve {
			field := fe.Field()
			switch fe.Tag() {
			case "required":
				messages = append(messages, field+" is required")
			case "email":
				messages = append(messages, "invalid email format")
			case "min":
				messages = append(messages, field+" must be at least "+fe.Param()+" characters")
			case "max":
				messages = append(messages, field+" must be at most "+fe.Param()+" characters")
			case "len":
				messages = append(messages, field+" must be exactly "+fe.Param()+" characters")
			case "numeric":
				messages = append(messages, field+" must contain only numbers")
			case "oneof":
				messages = append(messages, field+" must be one of: "+fe.Param())
			case "url":
				messages = append(messages, field+" must be a valid URL")
			default:
				messages = append(messages, field+" is invalid")
			}
		}
		return strings.Join(messages, ", ")
	}
	return err.Error()
}
