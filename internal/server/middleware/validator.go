package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator"

	"github.com/kiruna-explorer/backend/pkg/common"
)

// CustomValidator plugs go-playground/validator into echo. Field errors are
// reported with their JSON names.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form", "query"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return &CustomValidator{validator: v}
}

// Validate returns a common.ValidationError naming the first offending field.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return common.ValidationError{Field: fe.Field(), Message: "failed on the '" + fe.Tag() + "' rule"}
	}
	return common.ValidationError{Message: err.Error()}
}
