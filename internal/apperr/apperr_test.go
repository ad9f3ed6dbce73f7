package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{NotFound("Tweet"), "Tweet not found"},
		{Conflict("Tweet", "title"), "Title already exists"},
		{Conflict("Creator", "login"), "Login already exists"},
		{ValidationFailed(map[string]string{"login": "Login is required"}), "Validation Error"},
		{Unavailable("discussion", errors.New("dial tcp: refused")), "Discussion service unavailable"},
	}
	for _, tt := range tests {
		if tt.err.Message != tt.want {
			t.Errorf("Message = %q, want %q", tt.err.Message, tt.want)
		}
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("updating tweet: %w", NotFound("Creator"))

	if KindOf(err) != KindNotFound {
		t.Errorf("Expected not found kind, got %v", KindOf(err))
	}
	if !Is(err, KindNotFound) {
		t.Error("Is should see through wrapping")
	}
	if KindOf(errors.New("boom")) != KindUnexpected {
		t.Error("Plain errors must be unexpected")
	}
	if Is(nil, KindUnexpected) {
		t.Error("nil is never an error kind")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := map[Kind]int{
		KindValidation:  http.StatusBadRequest,
		KindNotFound:    http.StatusNotFound,
		KindConflict:    http.StatusForbidden,
		KindUnavailable: http.StatusServiceUnavailable,
		KindUnexpected:  http.StatusInternalServerError,
	}
	for kind, want := range tests {
		if got := HTTPStatus(kind); got != want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", kind, got, want)
		}
	}
}

func TestUnavailable_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Unavailable("discussion", cause)
	if !errors.Is(err, cause) {
		t.Error("Unavailable should wrap its cause")
	}
}
