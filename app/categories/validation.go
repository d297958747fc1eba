package categories

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationError describes one rejected input location, e.g. loc ["body", "name"].
type ValidationError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type ValidationErrorResponse struct {
	Detail []ValidationError `json:"detail"`
}

var registerTagNames sync.Once

// useJSONFieldNames makes validator report fields by their json name.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
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
	})
}

// bodyErrors converts a gin binding error into 422 detail entries.
func bodyErrors(err error) []ValidationError {
	var (
		fieldErrs validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)

	switch {
	case errors.As(err, &fieldErrs):
		out := make([]ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, fieldError(fe))
		}
		return out
	case errors.As(err, &typeErr):
		return []ValidationError{{
			Loc:  bodyLoc(typeErr.Field),
			Msg:  fmt.Sprintf("Input should be a valid %s", typeErr.Type.Kind()),
			Type: "type_error",
		}}
	case errors.Is(err, io.EOF):
		return []ValidationError{{Loc: []string{"body"}, Msg: "Field required", Type: "missing"}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return []ValidationError{{Loc: []string{"body"}, Msg: "JSON decode error", Type: "json_invalid"}}
	default:
		return []ValidationError{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
	}
}

func fieldError(fe validator.FieldError) ValidationError {
	ve := ValidationError{Loc: bodyLoc(fe.Field()), Type: fe.Tag()}
	switch fe.Tag() {
	case "required":
		ve.Msg = "Field required"
		ve.Type = "missing"
	case "max":
		ve.Msg = fmt.Sprintf("String should have at most %s characters", fe.Param())
		ve.Type = "string_too_long"
	default:
		ve.Msg = fmt.Sprintf("Failed on the '%s' validation", fe.Tag())
	}
	return ve
}

func bodyLoc(field string) []string {
	loc := []string{"body"}
	if field != "" {
		loc = append(loc, strings.Split(field, ".")...)
	}
	return loc
}

func pathError(param string) ValidationErrorResponse {
	return ValidationErrorResponse{Detail: []ValidationError{{
		Loc:  []string{"path", param},
		Msg:  "Input should be a valid integer",
		Type: "int_parsing",
	}}}
}
