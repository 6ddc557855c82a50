package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *DomainError
		want string
	}{
		{
			name: "without cause",
			err:  &DomainError{Code: "CODE", Message: "message"},
			want: "CODE: message",
		},
		{
			name: "with cause",
			err:  &DomainError{Code: "CODE", Message: "message", Cause: errors.New("boom")},
			want: "CODE: message: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapDatabaseOperation("list memos", cause)

	if !errors.Is(err, cause) {
		t.Error("Expected wrapped error to match its cause")
	}
	if RootCause(err) != cause {
		t.Errorf("RootCause() = %v, want %v", RootCause(err), cause)
	}
}

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"sentinel", ErrMemoNotFound, true},
		{"wrapped helper", WrapMemoNotFound(42, nil), true},
		{"fmt wrapped", fmt.Errorf("update: %w", ErrMemoNotFound), true},
		{"database error", WrapDatabaseOperation("save", errors.New("x")), false},
		{"plain error", errors.New("not found"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.want {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsInfrastructureError(t *testing.T) {
	if !IsInfrastructureError(WrapDatabaseOperation("list", errors.New("x"))) {
		t.Error("Expected database error to be infrastructure")
	}
	if !IsInfrastructureError(ErrNetworkOperation) {
		t.Error("Expected network error to be infrastructure")
	}
	if IsInfrastructureError(ErrMemoNotFound) {
		t.Error("Expected not found error not to be infrastructure")
	}
}

func TestWrapMemoNotFound_Message(t *testing.T) {
	err := WrapMemoNotFound(7, nil)
	if err.Error() != "MEMO_NOT_FOUND: memo not found: 7" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}
