package palette

import (
	"testing"

	"github.com/unkn0wn-root/themr/internal/color"
)

func TestAddPreservesInsertionOrder(t *testing.T) {
	p := New()
	p.AddLiteral("editor.background", "#1e1e1e")
	p.AddLiteral("editor.foreground", "#d4d4d4")
	p.AddLiteral("editor.background", "#000000")

	keys := p.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	if keys[0] != "editor.background" || keys[1] != "editor.foreground" {
		t.Fatalf("order not preserved: %v", keys)
	}

	c, ok := p.Get("editor.background")
	if !ok {
		t.Fatalf("missing key after re-add")
	}
	if c.Hex() != "#000000" {
		t.Fatalf("re-add should win: got %s", c.Hex())
	}
}

func TestAddLiteralSkipsInvalidColors(t *testing.T) {
	p := New()
	if p.AddLiteral("bad", "zzz") {
		t.Fatalf("invalid literal should be rejected")
	}
	if p.Len() != 0 {
		t.Fatalf("rejected literal must not be stored")
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	p := New()
	p.AddLiteral("a", "#111111")
	entries := p.Entries()
	entries[0].Color = color.Color{R: 1, A: 1}

	c, _ := p.Get("a")
	if c.Hex() != "#111111" {
		t.Fatalf("Entries leaked internal storage")
	}
}
