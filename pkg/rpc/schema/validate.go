package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// ValidationError reports the first schema violation found, with the path to
// the offending value ("items[2].name").
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func violation(path, format string, args ...any) *ValidationError {
	return &ValidationError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// ValidateJSON decodes raw JSON and validates it against the schema.
func (s Schema) ValidateJSON(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return violation("", "invalid JSON: %v", err)
	}
	return s.Validate(v)
}

// Validate checks a decoded JSON value (as produced by encoding/json into
// any: map[string]any, []any, string, float64, bool, nil) against the schema.
func (s Schema) Validate(v any) error {
	return s.validate(v, "")
}

func (s Schema) validate(v any, path string) error {
	switch s.Kind {
	case KindString:
		str, ok := v.(string)
		if !ok {
			return violation(path, "expected string, got %s", jsonKind(v))
		}
		return s.validateFormat(str, path)

	case KindInt:
		f, ok := v.(float64)
		if !ok {
			return violation(path, "expected integer, got %s", jsonKind(v))
		}
		if f != math.Trunc(f) {
			return violation(path, "expected integer, got fractional number")
		}
		return nil

	case KindFloat:
		if _, ok := v.(float64); !ok {
			return violation(path, "expected number, got %s", jsonKind(v))
		}
		return nil

	case KindBool:
		if _, ok := v.(bool); !ok {
			return violation(path, "expected boolean, got %s", jsonKind(v))
		}
		return nil

	case KindObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return violation(path, "expected object, got %s", jsonKind(v))
		}
		for _, f := range s.Fields {
			fieldPath := f.Name
			if path != "" {
				fieldPath = path + "." + f.Name
			}
			fv, present := obj[f.Name]
			if !present || fv == nil {
				if f.Optional {
					continue
				}
				return violation(fieldPath, "missing required field")
			}
			if err := f.Schema.validate(fv, fieldPath); err != nil {
				return err
			}
		}
		return nil

	case KindArray:
		arr, ok := v.([]any)
		if !ok {
			return violation(path, "expected array, got %s", jsonKind(v))
		}
		if len(arr) < s.MinItems {
			return violation(path, "expected at least %d items, got %d", s.MinItems, len(arr))
		}
		for i, item := range arr {
			if err := s.Elem.validate(item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil

	default:
		return violation(path, "unknown schema kind %d", s.Kind)
	}
}

func (s Schema) validateFormat(str, path string) error {
	switch s.Format {
	case "":
		return nil
	case FormatEmail:
		if _, err := mail.ParseAddress(str); err != nil {
			return violation(path, "expected email address")
		}
		return nil
	case FormatUUID:
		if _, err := uuid.Parse(str); err != nil {
			return violation(path, "expected UUID")
		}
		return nil
	case FormatDateTime:
		if _, err := time.Parse(time.RFC3339, str); err != nil {
			return violation(path, "expected RFC 3339 timestamp")
		}
		return nil
	default:
		return violation(path, "unknown string format %q", s.Format)
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
