package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad width: %v", -5)

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}
	if err.Message != "bad width: -5" {
		t.Errorf("Message = %q, want %q", err.Message, "bad width: -5")
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStoreWrite, cause, "save assembly %s", "VFC001")

	if err.Code != ErrCodeStoreWrite {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStoreWrite)
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeNodeNotFound, "no node abc"),
			want: "NODE_NOT_FOUND: no node abc",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeStoreRead, fmt.Errorf("eof"), "load VFC001"),
			want: "STORE_READ: load VFC001: eof",
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

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{
			name: "matching code",
			err:  New(ErrCodeConstraintClamped, "clamped"),
			code: ErrCodeConstraintClamped,
			want: true,
		},
		{
			name: "different code",
			err:  New(ErrCodeConstraintClamped, "clamped"),
			code: ErrCodeMissingReference,
			want: false,
		},
		{
			name: "wrapped in fmt error",
			err:  fmt.Errorf("outer: %w", New(ErrCodeNotFound, "gone")),
			code: ErrCodeNotFound,
			want: true,
		},
		{
			name: "plain error",
			err:  stderrors.New("plain"),
			code: ErrCodeNotFound,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeDuplicateID, "dup")); got != ErrCodeDuplicateID {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeDuplicateID)
	}
	if got := GetCode(stderrors.New("plain")); got != Code("") {
		t.Errorf("GetCode = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "width must be positive")); got != "width must be positive" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("boom")); got != "boom" {
		t.Errorf("UserMessage = %q", got)
	}
}
