package rest_err

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	trace := "trace-1"
	tests := []struct {
		name string
		err  *RestErr
		code int
		kind string
	}{
		{"bad request", NewBadRequestError(&trace, "x"), http.StatusBadRequest, ErrBadRequest},
		{"validation", NewBadRequestValidationError(&trace, "x", []Causes{NewCause("f", "m")}), http.StatusBadRequest, ErrBadRequest},
		{"internal", NewInternalServerError(&trace, "x", nil), http.StatusInternalServerError, ErrInternalServerError},
		{"not found", NewNotFoundError(&trace, "x"), http.StatusNotFound, ErrNotFound},
		{"unauthorized", NewUnauthorizedError(&trace, "x"), http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", NewForbiddenError(&trace, "x"), http.StatusForbidden, ErrForbidden},
		{"conflict", NewConflictValidationError(&trace, "x", nil), http.StatusConflict, ErrConflict},
		{"too large", NewPayloadTooLargeError(&trace, "x"), http.StatusRequestEntityTooLarge, ErrPayloadTooLarge},
		{"provider", NewExternalProviderError(&trace, "x", nil), http.StatusBadGateway, ErrExternalProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code || tt.err.Err != tt.kind {
				t.Errorf("got %d/%s, want %d/%s", tt.err.Code, tt.err.Err, tt.code, tt.kind)
			}
			if tt.err.TraceID != trace {
				t.Errorf("TraceID = %q", tt.err.TraceID)
			}
			if tt.err.Error() != "x" {
				t.Errorf("Error() = %q", tt.err.Error())
			}
		})
	}
}

func TestJSONOmitsEmptyTraceAndCauses(t *testing.T) {
	raw, err := json.Marshal(NewNotFoundError(nil, "case not found"))
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	if _, ok := body["trace_id"]; ok {
		t.Error("trace_id should be omitted when nil")
	}
	if _, ok := body["causes"]; ok {
		t.Error("causes should be omitted when empty")
	}
	if body["code"] != float64(http.StatusNotFound) {
		t.Errorf("code = %v", body["code"])
	}
}

func TestNewCausesSorted(t *testing.T) {
	if NewCauses(nil) != nil {
		t.Error("empty map should produce nil causes")
	}
	causes := NewCauses(map[string]string{"titulo": "a", "estado": "b", "fecha": "c"})
	want := []string{"estado", "fecha", "titulo"}
	for i, c := range causes {
		if c.Field != want[i] {
			t.Errorf("causes[%d] = %s, want %s", i, c.Field, want[i])
		}
	}
}
