package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/threadhub-lab/backend/pkg/errorx"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

func bind(r *http.Request, req any) error {
	var err error
	switch r.Method {
	case http.MethodGet:
		err = bindQuery(r, req)
	case http.MethodPost:
		err = bindJSON(r, req)
	default:
		return errorx.New(errorx.BadRequest, "Unsupported method %s", r.Method)
	}

	if err != nil {
		return errorx.New(errorx.BadRequest, "Invalid request: %v", err)
	}

	return validateRequest(req)
}

func bindQuery(r *http.Request, req any) error {
	params := map[string]any{}
	for key, values := range r.URL.Query() {
		if len(values) == 1 {
			params[key] = values[0]
		} else {
			params[key] = values
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           req,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(params)
}

func bindJSON(r *http.Request, req any) error {
	if r.Body == nil {
		return nil
	}

	err := json.NewDecoder(r.Body).Decode(req)
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}

func validateRequest(req any) error {
	v := reflect.ValueOf(req)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil
	}

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return errorx.New(errorx.BadRequest, "Field %s failed on the %s rule", fe.Field(), fe.Tag())
	}

	return errorx.New(errorx.BadRequest, "Invalid request: %s", fmt.Sprint(err))
}
