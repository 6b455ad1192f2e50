package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/tripscout/internal/domain"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody decodes the JSON request body into dst and validates it.
// It writes the error response and returns false when the request must stop.
// With allowEmpty an absent body leaves dst untouched.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF) && allowEmpty:
			// nothing to decode
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "bad_request", "request body is required")
			return false
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large",
				fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
			return false
		case errors.Is(err, domain.ErrValidation):
			validationFailed(w, err)
			return false
		default:
			writeError(w, http.StatusBadRequest, "bad_request", "malformed JSON body: "+err.Error())
			return false
		}
	}

	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", describeValidation(err))
		return false
	}
	return true
}

// describeValidation turns validator errors into one readable line.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		case "min", "gte":
			parts = append(parts, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max", "lte":
			parts = append(parts, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %q", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
