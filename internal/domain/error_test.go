package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "message only",
			err: &Error{
				Code:    EINVALID,
				Message: "invalid input",
			},
			expected: "invalid input",
		},
		{
			name: "with operation",
			err: &Error{
				Code:    EINVALID,
				Op:      "check.form",
				Message: "invalid input",
			},
			expected: "check.form: invalid input",
		},
		{
			name: "with detail",
			err: &Error{
				Code:    EAREARULE,
				Op:      "postcode.area",
				Message: "INVALID: the post code is invalid",
				Detail:  "AB requires a two-digit district",
			},
			expected: "postcode.area: INVALID: the post code is invalid (AB requires a two-digit district)",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EINTERNAL,
				Op:      "check.api",
				Message: "failed to encode",
				Err:     errors.New("broken pipe"),
			},
			expected: "check.api: failed to encode: broken pipe",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EINTERNAL,
				Message: "failed to encode",
				Err:     errors.New("broken pipe"),
			},
			expected: "failed to encode: broken pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{
		Code:    EINTERNAL,
		Message: "wrapped",
		Err:     underlying,
	}

	if unwrapped := err.Unwrap(); unwrapped != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", unwrapped, underlying)
	}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
}

func TestError_IsMatchesCode(t *testing.T) {
	sentinel := &Error{Code: ELENGTH, Message: "ERROR: 5 to 8 characters only"}
	err := &Error{Code: ELENGTH, Op: "postcode.length", Message: "ERROR: 5 to 8 characters only", Detail: "got 3"}

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should match errors with the same code")
	}

	if !errors.Is(fmt.Errorf("batch item 2: %w", err), sentinel) {
		t.Error("errors.Is should match through wrapping")
	}

	if errors.Is(err, &Error{Code: ECHARACTER}) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "domain error",
			err:      &Error{Code: EINVALID, Message: "test"},
			expected: EINVALID,
		},
		{
			name:     "wrapped domain error",
			err:      fmt.Errorf("wrapped: %w", &Error{Code: EPATTERN, Message: "test"}),
			expected: EPATTERN,
		},
		{
			name:     "non-domain error",
			err:      errors.New("some error"),
			expected: EINTERNAL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "domain error with message",
			err:      &Error{Code: ECHARACTER, Message: "ERROR: No special Characters allowed"},
			expected: "ERROR: No special Characters allowed",
		},
		{
			name:     "internal error hides message",
			err:      &Error{Code: EINTERNAL, Message: "template parse failed at line 4"},
			expected: "An internal error occurred. Please try again later.",
		},
		{
			name:     "non-domain error returns generic message",
			err:      errors.New("some internal detail"),
			expected: "An internal error occurred. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.expected {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(ETOOLARGE, "check.form", "too many postcodes: %d", 900)

	var domainErr *Error
	if !errors.As(err, &domainErr) {
		t.Fatal("Errorf should return *Error")
	}

	if domainErr.Code != ETOOLARGE {
		t.Errorf("Code = %q, want %q", domainErr.Code, ETOOLARGE)
	}

	if domainErr.Op != "check.form" {
		t.Errorf("Op = %q, want %q", domainErr.Op, "check.form")
	}

	if domainErr.Message != "too many postcodes: 900" {
		t.Errorf("Message = %q, want %q", domainErr.Message, "too many postcodes: 900")
	}
}

func TestWrapError(t *testing.T) {
	t.Run("wraps non-nil error", func(t *testing.T) {
		underlying := errors.New("unexpected EOF")
		err := WrapError(underlying, EINVALID, "check.api", "malformed JSON body")

		var domainErr *Error
		if !errors.As(err, &domainErr) {
			t.Fatal("WrapError should return *Error")
		}

		if domainErr.Code != EINVALID {
			t.Errorf("Code = %q, want %q", domainErr.Code, EINVALID)
		}

		if !errors.Is(err, underlying) {
			t.Error("should wrap underlying error")
		}
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		err := WrapError(nil, EINTERNAL, "test", "test")
		if err != nil {
			t.Errorf("WrapError(nil) should return nil, got %v", err)
		}
	})
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     string
		expected bool
	}{
		{
			name:     "matching code",
			err:      &Error{Code: EAREARULE, Message: "test"},
			code:     EAREARULE,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      &Error{Code: EINVALID, Message: "test"},
			code:     ENOTFOUND,
			expected: false,
		},
		{
			name:     "non-domain error matches EINTERNAL",
			err:      errors.New("test"),
			code:     EINTERNAL,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Run("single field error", func(t *testing.T) {
		err := AddFieldError(nil, "check.form", "postcodes", "postcodes is required")

		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatal("AddFieldError should return *ValidationError")
		}

		if ve.Op != "check.form" {
			t.Errorf("Op = %q, want %q", ve.Op, "check.form")
		}

		expected := "check.form: postcodes: postcodes is required"
		if ve.Error() != expected {
			t.Errorf("Error() = %q, want %q", ve.Error(), expected)
		}
	})

	t.Run("multiple field errors", func(t *testing.T) {
		err := AddFieldError(nil, "check.api", "postcodes", "too many postcodes")
		err = AddFieldError(err, "check.api", "batch", "too long")

		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatal("should be ValidationError")
		}

		if len(ve.Fields) != 2 {
			t.Errorf("Fields count = %d, want 2", len(ve.Fields))
		}

		expected := "check.api: validation failed for 2 fields"
		if ve.Error() != expected {
			t.Errorf("Error() = %q, want %q", ve.Error(), expected)
		}
	})

	t.Run("add field to non-validation error", func(t *testing.T) {
		err := AddFieldError(errors.New("other"), "", "batch", "required")

		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatal("AddFieldError should return *ValidationError")
		}

		if ve.Error() != "batch: required" {
			t.Errorf("Error() = %q, want %q", ve.Error(), "batch: required")
		}
	})
}

func TestGetValidationFields(t *testing.T) {
	t.Run("validation error", func(t *testing.T) {
		err := AddFieldError(nil, "test", "postcodes", "required")
		fields := GetValidationFields(err)

		if fields == nil {
			t.Fatal("GetValidationFields should return fields map")
		}

		if fields["postcodes"] != "required" {
			t.Errorf("fields[postcodes] = %q, want %q", fields["postcodes"], "required")
		}
	})

	t.Run("non-validation error", func(t *testing.T) {
		if fields := GetValidationFields(errors.New("test")); fields != nil {
			t.Errorf("GetValidationFields should return nil for non-validation error")
		}
	})
}
