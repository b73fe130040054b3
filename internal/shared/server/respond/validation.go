package respond

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"wevolve-backend/match/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct runs the `validate` tags of v.
func Struct(v any) error {
	return validate.Struct(v)
}

// BindJSON decodes the request body into dst and validates it. On failure the
// 400 response is already written and false is returned.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		Error(c, http.StatusBadRequest, "invalid_request", "request body must be valid JSON", nil)
		return false
	}
	if err := Struct(dst); err != nil {
		Validation(c, err)
		return false
	}
	return true
}

// Validation writes a 400 validation_error naming the offending field. It
// understands validator errors and *model.ValidationError.
func Validation(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := fe.Field()
		Error(c, http.StatusBadRequest, "validation_error", "invalid "+field+": failed "+fe.Tag(), gin.H{"field": field})
		return
	}
	if verr, ok := model.AsValidationError(err); ok {
		Error(c, http.StatusBadRequest, "validation_error", verr.Error(), gin.H{"field": verr.Field})
		return
	}
	Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
}
