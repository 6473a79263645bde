package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"biogram-server/internal/apperr"
)

var registerTagNames sync.Once

// inputName reports a field by the name the client sent it under.
func inputName(fld reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

func engine() *validator.Validate {
	v, _ := binding.Validator.Engine().(*validator.Validate)
	if v != nil {
		registerTagNames.Do(func() { v.RegisterTagNameFunc(inputName) })
	}
	return v
}

// Validate performs validation on a struct.
func Validate(s interface{}) error {
	if v := engine(); v != nil {
		return toValidationError(v.Struct(s))
	}
	return nil
}

// FormatValidationError formats one validator failure into a readable string.
func FormatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", e.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s.", e.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(e.Param(), " ", ", "))
	case "eqfield":
		return "Values do not match."
	case "gte", "lte":
		return fmt.Sprintf("Value is out of range (%s %s).", e.Tag(), e.Param())
	}
	return fmt.Sprintf("Invalid value (%s).", e.Tag())
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return apperr.Validation(errs[0].Field(), FormatValidationError(errs[0]))
	}
	return apperr.Validation("", "Invalid request payload: "+err.Error())
}

// BindAndValidate binds a JSON or form body to obj and validates it. Failures
// come back as *apperr.ValidationError naming the first offending field.
func BindAndValidate(c *gin.Context, obj interface{}) error {
	engine()
	if err := c.ShouldBind(obj); err != nil {
		return toValidationError(err)
	}
	return nil
}
