package errdispatch

import (
	"errors"
	"maps"
	"reflect"
)

type (
	// Fielder is implemented by failures that carry structured fields.
	Fielder interface {
		Fields() map[string]any
	}

	fieldsError struct {
		cause  error
		fields map[string]any
	}
)

var _ Fielder = (*fieldsError)(nil)

// WithFields wraps an error with structured fields that Shape matchers can
// classify. Returns nil if cause is nil.
func WithFields(cause error, fields map[string]any) error {
	if cause == nil {
		return nil
	}
	return &fieldsError{
		cause:  cause,
		fields: maps.Clone(fields),
	}
}

// FieldsFrom returns the structured fields of a failure.
//
// A failure is structured when an error in its chain implements Fielder,
// or when the failure itself is a struct-backed error with at least one
// exported field, in which case its exported struct fields are returned
// keyed by field name.
func FieldsFrom(err error) (map[string]any, bool) {
	if err == nil {
		return nil, false
	}

	var f Fielder
	if errors.As(err, &f) {
		return f.Fields(), true
	}
	return structFields(err)
}

func (e *fieldsError) Error() string {
	return e.cause.Error()
}

func (e *fieldsError) Unwrap() error {
	return e.cause
}

func (e *fieldsError) Fields() map[string]any {
	return maps.Clone(e.fields)
}

func structFields(err error) (map[string]any, bool) {
	v := reflect.ValueOf(err)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, false
	}

	t := v.Type()
	fields := make(map[string]any, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fields[f.Name] = v.Field(i).Interface()
	}
	if len(fields) == 0 {
		// Opaque errors like errors.New expose nothing to classify.
		return nil, false
	}
	return fields, true
}
