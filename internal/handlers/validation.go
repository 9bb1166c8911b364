package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const maxBodyBytes = 64 << 10

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads a single JSON object into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON: trailing data")
	}
	return nil
}

// validateStruct returns field -> message for every failed rule.
func validateStruct(v any) (map[string]string, bool) {
	err := validate.Struct(v)
	if err == nil {
		return nil, false
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	out := make(map[string]string, len(verrs))
	for _, verr := range verrs {
		field := verr.Field()
		if field == "" {
			continue
		}
		if _, exists := out[field]; exists {
			continue
		}
		out[field] = fieldMessage(verr)
	}
	return out, len(out) > 0
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url", "http_url":
		return "must be a valid URL"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// writeValidationErrors reports the alphabetically first failure as the error.
func writeValidationErrors(w http.ResponseWriter, errs map[string]string) {
	first := lo.Min(lo.Keys(errs))
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  first + " " + errs[first],
		"errors": errs,
	})
}
