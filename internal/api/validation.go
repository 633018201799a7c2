package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// invalidBodyMsg is returned when the body could not be decoded at all.
const invalidBodyMsg = "Invalid request body"

// ValidationErrors converts a gin binding error for req into field errors.
// Messages come from the `msg` struct tag of each field; the param name comes
// from its `json` tag.
func ValidationErrors(err error, req any) ErrorsResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors(invalidBodyMsg)
	}

	t := reflect.TypeOf(req)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		param, msg := fieldMeta(t, fe)
		out = append(out, FieldError{Msg: msg, Param: param, Location: "body"})
	}
	return ErrorsResponse{Errors: out}
}

func fieldMeta(t reflect.Type, fe validator.FieldError) (param, msg string) {
	param = strings.ToLower(fe.Field())
	msg = "Invalid value"
	if t == nil || t.Kind() != reflect.Struct {
		return param, msg
	}
	sf, ok := t.FieldByName(fe.StructField())
	if !ok {
		return param, msg
	}
	if name, _, _ := strings.Cut(sf.Tag.Get("json"), ","); name != "" && name != "-" {
		param = name
	}
	if m := sf.Tag.Get("msg"); m != "" {
		msg = m
	}
	return param, msg
}
