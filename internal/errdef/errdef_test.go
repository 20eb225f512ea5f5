package errdef

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOfFindsWrappedCode(t *testing.T) {
	base := New(CodeColor, "invalid hex color %q", "#zz")
	wrapped := fmt.Errorf("load theme: %w", base)

	if CodeOf(wrapped) != CodeColor {
		t.Fatalf("expected CodeColor, got %q", CodeOf(wrapped))
	}
	if CodeOf(errors.New("plain")) != CodeUnknown {
		t.Fatalf("expected CodeUnknown for plain error")
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	if err := Wrap(CodeFilesystem, nil, "read template"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestMessagePrefersCodedMessage(t *testing.T) {
	inner := errors.New("open /tmp/x: no such file")
	err := Wrap(CodeFilesystem, inner, "read template %q", "x")

	if Message(err) != `read template "x"` {
		t.Fatalf("unexpected message: %q", Message(err))
	}
	if !errors.Is(err, inner) {
		t.Fatalf("expected wrapped error to satisfy errors.Is")
	}
}
