package model

import "fmt"

// NewsItem is a single record returned by the news API.
type NewsItem struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Format renders the item the way it is shown in chat.
func (n NewsItem) Format() string {
	return fmt.Sprintf("Date: %s\nTitle: %s\nLink: %s", n.Date, n.Title, n.Link)
}

// Feed maps a category name to its items, newest first as served by the API.
type Feed map[string][]NewsItem

// Items returns the items of one category, nil when the category is absent.
func (f Feed) Items(category string) []NewsItem {
	if f == nil {
		return nil
	}
	return f[category]
}

// FormatAll formats every item, preserving order.
func FormatAll(items []NewsItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Format())
	}
	return out
}
