package model

// Source is a regional news outlet exposed by the API.
type Source struct {
	Code       string
	Title      string
	Categories []Category
}

// Category is a feed within a source.
type Category struct {
	Code  string
	Title string
}

// Catalog lists the sources and categories the bot knows about, in menu order.
type Catalog struct {
	sources []Source
	bySrc   map[string]*Source
	byCat   map[string]string
}

// NewCatalog indexes the given sources. A category code must be unique across sources.
func NewCatalog(sources ...Source) *Catalog {
	c := &Catalog{
		sources: sources,
		bySrc:   make(map[string]*Source, len(sources)),
		byCat:   map[string]string{},
	}
	for i := range c.sources {
		s := &c.sources[i]
		c.bySrc[s.Code] = s
		for _, cat := range s.Categories {
			c.byCat[cat.Code] = s.Code
		}
	}
	return c
}

// DefaultCatalog is the set of feeds served at e0x.dev/sixtieslife.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Source{Code: "pln", Title: "PLN", Categories: []Category{
			{Code: "today", Title: "Today"},
			{Code: "accidents", Title: "Accidents"},
			{Code: "automir", Title: "Automir"},
			{Code: "culture", Title: "Culture"},
			{Code: "society", Title: "Society"},
		}},
		Source{Code: "cdi", Title: "CDI", Categories: []Category{
			{Code: "news", Title: "CDI News"},
			{Code: "rmarket", Title: "Market"},
			{Code: "rbusiness", Title: "Business"},
			{Code: "rrabota", Title: "Rabota"},
		}},
		Source{Code: "ipsk", Title: "IPSK", Categories: []Category{
			{Code: "allnews", Title: "IPSK News"},
		}},
		// pg is fetchable but has no menu entry yet.
		Source{Code: "pg", Title: "PG"},
	)
}

// Sources returns all sources in menu order.
func (c *Catalog) Sources() []Source { return c.sources }

// Source looks a source up by code.
func (c *Catalog) Source(code string) (Source, bool) {
	s, ok := c.bySrc[code]
	if !ok {
		return Source{}, false
	}
	return *s, true
}

// SourceOf returns the source code owning a category.
func (c *Catalog) SourceOf(category string) (string, bool) {
	s, ok := c.byCat[category]
	return s, ok
}
