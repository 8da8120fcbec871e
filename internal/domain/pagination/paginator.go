// Package pagination builds the "previous / current / next" inline keyboard shown
// under a paginated news item.
//
// A Builder is created per rendered page, extra rows are registered on it, and
// Build is called once to obtain the keyboard. Build never caches: every call
// recomputes the rows from the builder's current state, so rows registered after
// an earlier Build show up in the next one.
package pagination

import (
	"encoding/json"
	"strconv"
	"strings"
)

const pagePlaceholder = "{page}"

// Button is a single inline button: a label and its opaque callback payload.
type Button struct {
	Text string `json:"text"`
	Data string `json:"callback_data"`
}

// Labels are the templates used for navigation buttons. Each may contain the
// {page} placeholder; templates without it ignore the page number.
type Labels struct {
	Previous string `yaml:"previous"`
	Current  string `yaml:"current"`
	Next     string `yaml:"next"`
}

// DefaultLabels render as "‹ ·3· ›".
var DefaultLabels = Labels{Previous: "‹", Current: "·{page}·", Next: "›"}

// Option customizes a Builder.
type Option func(*Builder)

// WithDataPattern encodes callback data by substituting the page number for every
// {page} in pattern, e.g. "number#{page}#news".
func WithDataPattern(pattern string) Option {
	return func(b *Builder) {
		b.data = func(page int) string {
			return fill(pattern, page)
		}
	}
}

// WithCallback encodes callback data with the typed codec. Callers should check
// that cb encodes for the last page before building (see Callback.Encode).
func WithCallback(cb Callback) Option {
	return func(b *Builder) {
		b.data = cb.PageData()
	}
}

// WithLabels overrides navigation labels; empty fields keep the defaults.
func WithLabels(l Labels) Option {
	return func(b *Builder) {
		if l.Previous != "" {
			b.labels.Previous = l.Previous
		}
		if l.Current != "" {
			b.labels.Current = l.Current
		}
		if l.Next != "" {
			b.labels.Next = l.Next
		}
	}
}

// Builder accumulates the state of one paginated keyboard.
type Builder struct {
	pageCount int
	current   int
	data      func(page int) string
	labels    Labels
	before    [][]Button
	after     [][]Button
}

// New creates a builder. currentPage is clamped into [1, pageCount]; a pageCount
// below 1 is treated as a single page. No input is rejected.
func New(pageCount, currentPage int, opts ...Option) *Builder {
	if pageCount < 1 {
		pageCount = 1
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > pageCount {
		currentPage = pageCount
	}
	b := &Builder{
		pageCount: pageCount,
		current:   currentPage,
		labels:    DefaultLabels,
	}
	WithDataPattern(pagePlaceholder)(b)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CurrentPage returns the clamped current page.
func (b *Builder) CurrentPage() int { return b.current }

// PageCount returns the total number of pages.
func (b *Builder) PageCount() int { return b.pageCount }

// Window returns the pages adjacent to current, clipped to [1, pageCount], ascending.
func Window(current, pageCount int) []int {
	pages := make([]int, 0, 3)
	if current > 1 {
		pages = append(pages, current-1)
	}
	pages = append(pages, current)
	if current < pageCount {
		pages = append(pages, current+1)
	}
	return pages
}

// NavigationRow returns the buttons for the current window in page order.
func (b *Builder) NavigationRow() []Button {
	pages := Window(b.current, b.pageCount)
	row := make([]Button, 0, len(pages))
	for _, p := range pages {
		var label string
		switch {
		case p < b.current:
			label = b.labels.Previous
		case p > b.current:
			label = b.labels.Next
		default:
			label = b.labels.Current
		}
		row = append(row, Button{Text: fill(label, p), Data: b.data(p)})
	}
	return row
}

// AddBefore registers a row rendered above the navigation row.
func (b *Builder) AddBefore(buttons ...Button) *Builder {
	b.before = append(b.before, append([]Button(nil), buttons...))
	return b
}

// AddAfter registers a row rendered below the navigation row.
func (b *Builder) AddAfter(buttons ...Button) *Builder {
	b.after = append(b.after, append([]Button(nil), buttons...))
	return b
}

// Build assembles before-rows, the navigation row and after-rows, dropping empty
// rows. It returns nil when no button is left, which callers send as "no markup".
func (b *Builder) Build() *Keyboard {
	rows := make([][]Button, 0, len(b.before)+1+len(b.after))
	add := func(row []Button) {
		if len(row) > 0 {
			rows = append(rows, append([]Button(nil), row...))
		}
	}
	for _, r := range b.before {
		add(r)
	}
	add(b.NavigationRow())
	for _, r := range b.after {
		add(r)
	}
	if len(rows) == 0 {
		return nil
	}
	return &Keyboard{Rows: rows}
}

// String renders the navigation labels separated by spaces, e.g. "‹ ·2· ›".
func (b *Builder) String() string {
	row := b.NavigationRow()
	labels := make([]string, len(row))
	for i, btn := range row {
		labels[i] = btn.Text
	}
	return strings.Join(labels, " ")
}

// Keyboard is the wire form of an inline keyboard.
type Keyboard struct {
	Rows [][]Button `json:"inline_keyboard"`
}

// JSON serializes the keyboard; a nil keyboard serializes to null.
func (k *Keyboard) JSON() ([]byte, error) {
	return json.Marshal(k)
}

// Len returns the number of rows.
func (k *Keyboard) Len() int {
	if k == nil {
		return 0
	}
	return len(k.Rows)
}

func fill(tmpl string, page int) string {
	return strings.ReplaceAll(tmpl, pagePlaceholder, strconv.Itoa(page))
}
