package flightradar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// dataEnvelope is the {"data": [...]} wrapper most list endpoints return.
type dataEnvelope[T any] struct {
	Data []T `json:"data" validate:"required,dive"`
}

// decodeResponse turns resp into T. Non-success statuses become *APIError,
// success bodies that do not match T become *InvalidResponseError.
func decodeResponse[T any](resp *http.Response) (T, error) {
	var out T

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &APIError{
			StatusCode: resp.StatusCode,
			Kind:       errorKindForStatus(resp.StatusCode),
			Payload:    errorPayload(body),
		}
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, &InvalidResponseError{Err: err}
	}
	if err := validateShape(reflect.ValueOf(out)); err != nil {
		return out, &InvalidResponseError{Err: err}
	}

	return out, nil
}

// errorPayload decodes an error body as JSON, falling back to the raw text.
func errorPayload(body []byte) any {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	var payload any
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return string(trimmed)
	}
	return payload
}

// validateShape runs struct validation on v, descending into slices so bare
// list responses are checked element by element.
func validateShape(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Struct:
		return validate.Struct(v.Interface())
	case reflect.Pointer:
		if v.IsNil() {
			return fmt.Errorf("empty response")
		}
		return validateShape(v.Elem())
	case reflect.Slice:
		if v.IsNil() {
			return fmt.Errorf("expected a list, got null")
		}
		for i := 0; i < v.Len(); i++ {
			if err := validateShape(v.Index(i)); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

// squawk accepts a transponder code sent either as a JSON string or a number.
type squawk string

func (s *squawk) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = squawk(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("squawk must be a string or number: %w", err)
	}
	*s = squawk(n.String())
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp parses an ISO-8601 date-time. Values without a zone are UTC.
func parseTimestamp(field, value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &InvalidResponseError{Err: fmt.Errorf("%s: invalid timestamp %q", field, value)}
}

func parseOptionalTimestamp(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseTimestamp(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
