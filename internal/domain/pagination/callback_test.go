//go:build !integration

package pagination

import (
	"errors"
	"strings"
	"testing"
)

func TestCallback_EncodeDecode(t *testing.T) {
	t.Run("should encode a page callback", func(t *testing.T) {
		got, err := Callback{Kind: KindPage, Page: 3, Source: "pln", Category: "today"}.Encode()
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if got != "page:3:pln:today" {
			t.Errorf("wanted %q, got %q", "page:3:pln:today", got)
		}
	})

	t.Run("should keep delimiters inside names unambiguous", func(t *testing.T) {
		in := Callback{Kind: KindCategory, Page: 1, Source: "a:b", Category: "c:d#e"}
		data, err := in.Encode()
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		out, err := DecodeCallback(data)
		if err != nil {
			t.Fatalf("DecodeCallback(%q) failed: %v", data, err)
		}
		if out != in {
			t.Errorf("wanted %+v, got %+v", in, out)
		}
	})

	t.Run("should reject data over the Telegram limit", func(t *testing.T) {
		_, err := Callback{Kind: KindPage, Page: 1, Source: "pln", Category: strings.Repeat("x", 60)}.Encode()
		if !errors.Is(err, ErrCallbackTooLong) {
			t.Errorf("expected ErrCallbackTooLong, got %v", err)
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		bad := []string{
			"",
			"cmd:menu",
			"page:x:pln:today",
			"page:0:pln:today",
			"page:1:pln:",
			"wat:1:pln:today",
			"page:1:pln:today:extra",
		}
		for _, s := range bad {
			if _, err := DecodeCallback(s); !errors.Is(err, ErrMalformedCallback) {
				t.Errorf("DecodeCallback(%q): expected ErrMalformedCallback, got %v", s, err)
			}
		}
	})

	t.Run("should refuse unknown kinds when encoding", func(t *testing.T) {
		if _, err := (Callback{Kind: "cmd", Page: 1, Category: "menu"}).Encode(); !errors.Is(err, ErrMalformedCallback) {
			t.Errorf("expected ErrMalformedCallback, got %v", err)
		}
	})
}

func TestHasCallbackPrefix(t *testing.T) {
	if !HasCallbackPrefix("page:2:pln:today") || !HasCallbackPrefix("cat:1:cdi:news") {
		t.Error("expected news callbacks to be recognized")
	}
	if HasCallbackPrefix("cmd:menu") || HasCallbackPrefix("pref:on") {
		t.Error("expected menu callbacks to be ignored")
	}
}

func TestWithCallback(t *testing.T) {
	cb := Callback{Kind: KindCategory, Page: 1, Source: "cdi", Category: "rmarket"}
	row := New(3, 2, WithCallback(cb)).NavigationRow()
	want := []string{"page:1:cdi:rmarket", "page:2:cdi:rmarket", "page:3:cdi:rmarket"}
	for i, b := range row {
		if b.Data != want[i] {
			t.Errorf("button %d: wanted %q, got %q", i, want[i], b.Data)
		}
		decoded, err := DecodeCallback(b.Data)
		if err != nil {
			t.Fatalf("DecodeCallback failed: %v", err)
		}
		if decoded.Page != i+1 || decoded.Kind != KindPage {
			t.Errorf("button %d decoded to %+v", i, decoded)
		}
	}
}
