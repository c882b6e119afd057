// Package validate turns gin binding failures into the BadRequest shape of
// the API: a list of {path, message} pairs addressing individual fields.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/courseland/backend/apperr"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Setup registers the json tag name resolver and custom validations on gin's
// validator engine. Call once before serving requests.
func Setup() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
}

// Body binds and validates a JSON request body.
func Body(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return badRequest(err)
	}
	return nil
}

// Query binds and validates query parameters.
func Query(c *gin.Context, dst any) error {
	if err := c.ShouldBindQuery(dst); err != nil {
		return badRequest(err)
	}
	return nil
}

// IDParam parses a positive integer path parameter.
func IDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.BadRequest("Validation error", apperr.Detail{
			Path:    name,
			Message: name + " must be a positive integer",
		})
	}
	return uint(id), nil
}

func badRequest(err error) *apperr.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]apperr.Detail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, apperr.Detail{
				Path:    fieldPath(fe),
				Message: messageFor(fe),
			})
		}
		return apperr.BadRequest("Validation error", details...)
	}
	return apperr.BadRequest("Invalid request body")
}

// fieldPath strips the top-level struct name from the namespace, leaving a
// json-tagged path like "questions[0].options".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email format"
	case "url":
		return "Invalid URL format"
	case "username":
		return "Username can only contain letters, numbers, and underscores"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must contain at least %s items", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must not contain more than %s items", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
