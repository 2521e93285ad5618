package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		wantText string
	}{
		{
			name: "transport error",
			err: &Error{
				Kind: KindTransport,
				Op:   "fetch config",
				Err:  fmt.Errorf("connection refused"),
			},
			wantText: "fetch config: transport error: connection refused",
		},
		{
			name: "io error",
			err: &Error{
				Kind: KindIO,
				Op:   "read body",
				Err:  fmt.Errorf("unexpected EOF"),
			},
			wantText: "read body: io error: unexpected EOF",
		},
		{
			name: "xml error",
			err: &Error{
				Kind: KindXML,
				Op:   "find element client",
				Err:  ErrElementNotFound,
			},
			wantText: "find element client: xml error: element not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.wantText {
				t.Errorf("Error() = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlyingErr := fmt.Errorf("underlying error")
	err := &Error{
		Kind: KindIO,
		Op:   "test operation",
		Err:  underlyingErr,
	}

	unwrapped := err.Unwrap()
	if unwrapped != underlyingErr {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, underlyingErr)
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name     string
		err      error
		wantKind Kind
	}{
		{"Transport", Transport("op", cause), KindTransport},
		{"IO", IO("op", cause), KindIO},
		{"XML", XML("op", cause), KindXML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.wantKind {
				t.Errorf("KindOf() = %v, want %v", got, tt.wantKind)
			}
			if !errors.Is(tt.err, cause) {
				t.Error("errors.Is() should find the cause")
			}
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("load: %w", XML("find element times", ErrMalformedXML))
	if got := KindOf(err); got != KindXML {
		t.Errorf("KindOf() = %v, want %v", got, KindXML)
	}

	if got := KindOf(errors.New("plain")); got != 0 {
		t.Errorf("KindOf(plain) = %v, want 0", got)
	}
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		KindTransport: "transport",
		KindIO:        "io",
		KindXML:       "xml",
		Kind(0):       "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestPredefinedErrors(t *testing.T) {
	// Verify all predefined errors are distinct
	errs := []error{
		ErrElementNotFound,
		ErrMalformedXML,
		ErrInvalidUTF8,
		ErrInvalidConfig,
	}

	for i, err1 := range errs {
		for j, err2 := range errs {
			if i != j && err1 == err2 {
				t.Errorf("Errors at index %d and %d are the same: %v", i, j, err1)
			}
		}
	}

	tests := []struct {
		err         error
		wantContain string
	}{
		{ErrElementNotFound, "not found"},
		{ErrMalformedXML, "malformed"},
		{ErrInvalidUTF8, "UTF-8"},
		{ErrInvalidConfig, "configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			msg := tt.err.Error()
			if !strings.Contains(strings.ToLower(msg), strings.ToLower(tt.wantContain)) {
				t.Errorf("Error message %q does not contain %q", msg, tt.wantContain)
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	wrappedErr := XML("find element upload", ErrElementNotFound)

	if !errors.Is(wrappedErr, ErrElementNotFound) {
		t.Error("errors.Is() should find ErrElementNotFound in wrapped error")
	}
	if errors.Is(wrappedErr, ErrMalformedXML) {
		t.Error("errors.Is() should not match ErrMalformedXML")
	}

	var e *Error
	if !errors.As(wrappedErr, &e) {
		t.Fatal("errors.As() should match Error type")
	}
	if e.Op != "find element upload" {
		t.Errorf("errors.As() extracted wrong Error: got Op=%q, want %q", e.Op, "find element upload")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"transport", Transport("op", errors.New("x")), ExitNetworkError},
		{"io", IO("op", errors.New("x")), ExitIOError},
		{"xml", XML("op", errors.New("x")), ExitXMLError},
		{"plain", errors.New("x"), ExitGeneralError},
		{"config", fmt.Errorf("%w: bad format", ErrInvalidConfig), ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	// Verify exit codes are distinct and in expected range
	codes := map[string]int{
		"ExitSuccess":      ExitSuccess,
		"ExitGeneralError": ExitGeneralError,
		"ExitConfigError":  ExitConfigError,
		"ExitXMLError":     ExitXMLError,
		"ExitNetworkError": ExitNetworkError,
		"ExitIOError":      ExitIOError,
	}

	seen := make(map[int]string)
	for name, code := range codes {
		if prevName, exists := seen[code]; exists {
			t.Errorf("Exit codes %s and %s have the same value: %d", name, prevName, code)
		}
		seen[code] = name
		if name != "ExitSuccess" && (code <= 0 || code > 255) {
			t.Errorf("%s = %d, should be in range 1-255", name, code)
		}
	}

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
}
