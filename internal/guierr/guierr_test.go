package guierr

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"invalid", InvalidRequest("index %d out of range", 4), ErrInvalidRequest},
		{"unknown", UnknownObject("window %q", "Root/OK"), ErrUnknownObject},
		{"renderer", Renderer("format unsupported"), ErrRenderer},
		{"generic", Generic(io.ErrUnexpectedEOF, "reading %s", "a.yaml"), ErrGeneric},
		{"wrapped", fmt.Errorf("loading: %w", UnknownObject("look")), ErrUnknownObject},
		{"plain", errors.New("plain"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestGenericKeepsCause(t *testing.T) {
	err := Generic(io.ErrUnexpectedEOF, "reading %s", "a.yaml")
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("cause lost: %v", err)
	}
	if KindOf(err) == ErrInvalidRequest {
		t.Error("generic error must not read as invalid request")
	}
}
