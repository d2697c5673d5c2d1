package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "input.read",
		Kind: KindNotFound,
		Path: "codes.txt",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(fmt.Errorf("outer: %w", err), &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindNotFound {
		t.Fatalf("expected kind %s", KindNotFound)
	}
}

func TestOpErrorMessage(t *testing.T) {
	err := &OpError{Op: "report.write", Kind: KindExecution, Path: "/tmp/out.csv", Err: errors.New("disk full")}
	msg := err.Error()
	for _, want := range []string{"report.write", "execution", "path=/tmp/out.csv", "disk full"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}

	var nilErr *OpError
	if nilErr.Error() != "<nil>" {
		t.Fatalf("expected <nil> for nil OpError")
	}
}

func TestIsKindAndKindOf(t *testing.T) {
	err := fmt.Errorf("resolve: %w", &OpError{Kind: KindTransport, Err: ErrExecution})

	if !IsKind(err, KindTransport) {
		t.Fatalf("expected IsKind to match transport")
	}
	if IsKind(err, KindNotFound) {
		t.Fatalf("did not expect not_found")
	}
	if KindOf(err) != KindTransport {
		t.Fatalf("expected KindOf transport, got %s", KindOf(err))
	}
	if KindOf(errors.New("plain")) != KindExecution {
		t.Fatalf("expected execution for plain errors")
	}
}
