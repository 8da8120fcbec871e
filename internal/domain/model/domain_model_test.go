//go:build !integration

package model

import (
	"errors"
	"testing"

	"github.com/Brze0x/sixties-life-bot/internal/domain"
)

// --- Preference Model Tests ---

func TestNewPreference(t *testing.T) {
	t.Run("should create a preference successfully", func(t *testing.T) {
		pref, err := NewPreference(12345, PaginationOn)
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if pref.UserID != 12345 {
			t.Errorf("expected user ID to be 12345, but got %d", pref.UserID)
		}
		if !pref.Status.Enabled() {
			t.Error("expected pagination to be enabled")
		}
		if pref.UpdatedAt.IsZero() {
			t.Error("expected UpdatedAt to be set")
		}
	})

	t.Run("should fail with invalid user ID", func(t *testing.T) {
		pref, err := NewPreference(0, PaginationOff)
		if pref != nil {
			t.Errorf("expected preference to be nil on error")
		}
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, but got %v", err)
		}
	})

	t.Run("should fail with unknown status", func(t *testing.T) {
		_, err := NewPreference(1, PaginationStatus("sometimes"))
		if !errors.Is(err, domain.ErrInvalidStatus) {
			t.Errorf("expected ErrInvalidStatus, but got %v", err)
		}
	})
}

func TestParseStatus(t *testing.T) {
	cases := map[string]PaginationStatus{
		"pagination_on":  PaginationOn,
		"on":             PaginationOn,
		" OFF ":          PaginationOff,
		"pagination_off": PaginationOff,
	}
	for in, want := range cases {
		got, err := ParseStatus(in)
		if err != nil {
			t.Fatalf("ParseStatus(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseStatus(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseStatus("maybe"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

// --- News Model Tests ---

func TestNewsItemFormat(t *testing.T) {
	item := NewsItem{Date: "01.02.2023", Title: "Snow", Link: "https://example.org/1"}
	want := "Date: 01.02.2023\nTitle: Snow\nLink: https://example.org/1"
	if got := item.Format(); got != want {
		t.Errorf("wanted %q, got %q", want, got)
	}
}

func TestFeedItems(t *testing.T) {
	var empty Feed
	if empty.Items("today") != nil {
		t.Error("expected nil items from a nil feed")
	}
	feed := Feed{"today": {{Title: "a"}, {Title: "b"}}}
	if n := len(feed.Items("today")); n != 2 {
		t.Errorf("expected 2 items, got %d", n)
	}
	if feed.Items("culture") != nil {
		t.Error("expected nil for a missing category")
	}
}

func TestCatalog(t *testing.T) {
	c := DefaultCatalog()

	src, ok := c.SourceOf("rmarket")
	if !ok || src != "cdi" {
		t.Fatalf("expected rmarket to belong to cdi, got %q (%v)", src, ok)
	}
	if _, ok := c.SourceOf("weather"); ok {
		t.Error("expected unknown category to be absent")
	}

	pln, ok := c.Source("pln")
	if !ok {
		t.Fatal("expected pln source")
	}
	if len(pln.Categories) != 5 || pln.Categories[0].Code != "today" {
		t.Errorf("unexpected pln categories: %+v", pln.Categories)
	}
	if pg, ok := c.Source("pg"); !ok || len(pg.Categories) != 0 {
		t.Errorf("expected pg source without categories, got %+v", pg)
	}
}
