package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MaxCallbackLen is Telegram's limit on callback_data, in bytes.
const MaxCallbackLen = 64

var (
	ErrCallbackTooLong   = errors.New("callback data exceeds 64 bytes")
	ErrMalformedCallback = errors.New("malformed callback data")
)

// Kind tells the dispatcher what a news callback asks for.
type Kind string

const (
	// KindCategory opens a category on its first page.
	KindCategory Kind = "cat"
	// KindPage moves to a page of an already opened category.
	KindPage Kind = "page"
)

// Callback is the decoded payload of a news navigation button.
// Wire form: kind:page:source:category, source and category query-escaped.
type Callback struct {
	Kind     Kind
	Page     int
	Source   string
	Category string
}

// HasCallbackPrefix reports whether data looks like an encoded news callback.
func HasCallbackPrefix(data string) bool {
	return strings.HasPrefix(data, string(KindCategory)+":") || strings.HasPrefix(data, string(KindPage)+":")
}

// Encode serializes the callback.
func (c Callback) Encode() (string, error) {
	if c.Kind != KindCategory && c.Kind != KindPage {
		return "", fmt.Errorf("%w: kind %q", ErrMalformedCallback, c.Kind)
	}
	if c.Page < 1 || c.Category == "" {
		return "", fmt.Errorf("%w: page %d category %q", ErrMalformedCallback, c.Page, c.Category)
	}
	s := string(c.Kind) + ":" + strconv.Itoa(c.Page) + ":" + url.QueryEscape(c.Source) + ":" + url.QueryEscape(c.Category)
	if len(s) > MaxCallbackLen {
		return "", ErrCallbackTooLong
	}
	return s, nil
}

// WithPage returns a copy pointing at another page.
func (c Callback) WithPage(page int) Callback {
	c.Page = page
	return c
}

// PageData returns an encoder producing a KindPage token for each page.
// Encoding errors yield an empty string; validate with Encode beforehand.
func (c Callback) PageData() func(page int) string {
	return func(page int) string {
		cb := c
		cb.Kind = KindPage
		cb.Page = page
		s, err := cb.Encode()
		if err != nil {
			return ""
		}
		return s
	}
}

// DecodeCallback parses data produced by Encode.
func DecodeCallback(data string) (Callback, error) {
	if len(data) > MaxCallbackLen {
		return Callback{}, ErrCallbackTooLong
	}
	parts := strings.Split(data, ":")
	if len(parts) != 4 {
		return Callback{}, ErrMalformedCallback
	}
	kind := Kind(parts[0])
	if kind != KindCategory && kind != KindPage {
		return Callback{}, fmt.Errorf("%w: kind %q", ErrMalformedCallback, parts[0])
	}
	page, err := strconv.Atoi(parts[1])
	if err != nil || page < 1 {
		return Callback{}, fmt.Errorf("%w: page %q", ErrMalformedCallback, parts[1])
	}
	source, err := url.QueryUnescape(parts[2])
	if err != nil {
		return Callback{}, fmt.Errorf("%w: %v", ErrMalformedCallback, err)
	}
	category, err := url.QueryUnescape(parts[3])
	if err != nil || category == "" {
		return Callback{}, fmt.Errorf("%w: category %q", ErrMalformedCallback, parts[3])
	}
	return Callback{Kind: kind, Page: page, Source: source, Category: category}, nil
}
