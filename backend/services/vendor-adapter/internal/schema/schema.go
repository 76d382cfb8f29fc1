// Package schema validates loosely typed action parameters and headers
// against per-vendor struct shapes.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRequest marks every request validation failure.
var ErrInvalidRequest = errors.New("schema: invalid request")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// FieldError names one field that failed validation and the rule it broke.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Section string       `json:"section"`
	Fields  []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}
	return fmt.Sprintf("schema: invalid %s: %s", e.Section, strings.Join(parts, ", "))
}

// Is makes errors.Is(err, ErrInvalidRequest) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// Invalid builds a ValidationError for a single field.
func Invalid(section, field, rule string) *ValidationError {
	return &ValidationError{Section: section, Fields: []FieldError{{Field: field, Rule: rule}}}
}

// Struct validates target's `validate` tags and reports failures under section.
func Struct(section string, target interface{}) error {
	err := validate.Struct(target)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("schema: validate %s: %w", section, err)
	}
	out := &ValidationError{Section: section}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fieldPath(fe.Namespace()), Rule: fe.Tag()})
	}
	return out
}

// fieldPath drops the leading struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// Decode coerces scalar values in raw to strings, decodes them into target
// and validates it. Nested objects and arrays are rejected.
func Decode(section string, raw map[string]json.RawMessage, target interface{}) error {
	flat := make(map[string]*string, len(raw))
	var bad []FieldError
	for key, value := range raw {
		s, ok, err := scalarString(value)
		if err != nil {
			bad = append(bad, FieldError{Field: key, Rule: "scalar"})
			continue
		}
		if ok {
			flat[key] = &s
		} else {
			flat[key] = nil
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Section: section, Fields: bad}
	}

	body, err := json.Marshal(flat)
	if err != nil {
		return fmt.Errorf("schema: encode %s: %w", section, err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("schema: decode %s: %w", section, err)
	}
	return Struct(section, target)
}

// scalarString renders a JSON scalar as text. ok is false for null.
func scalarString(value json.RawMessage) (string, bool, error) {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false, nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return "", false, err
		}
		return strconv.FormatBool(b), true, nil
	case '{', '[':
		return "", false, errors.New("not a scalar")
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return "", false, err
		}
		return n.String(), true, nil
	}
}
