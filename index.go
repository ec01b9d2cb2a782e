package docidx

import (
	"fmt"
	"strings"
)

// Field selects which entry fields a lookup inspects.
type Field string

// Lookup fields.
const (
	FieldAny   Field = ""
	FieldTitle Field = "title"
	FieldText  Field = "text"
)

// ParseField parses a field name. "any" and "" both select FieldAny.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return FieldAny, nil
	case "title":
		return FieldTitle, nil
	case "text":
		return FieldText, nil
	}
	return FieldAny, Errorf(EINVALID, "unknown field %q (want any, title or text)", s)
}

// LookupOptions configures keyword lookups.
type LookupOptions struct {
	Field         Field
	Categories    []Category
	CaseSensitive bool

	// Limit caps the number of matching entries. Zero means no limit.
	Limit int
}

// Index is a parsed documentation search index.
type Index struct {
	Entries []*SearchEntry `json:"docs"`
}

// Len returns the number of entries in the index.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.Entries)
}

// Validate returns an error naming the first invalid entry.
func (idx *Index) Validate() error {
	for i, e := range idx.Entries {
		if e == nil {
			return Errorf(EINVALID, "entry %d: null entry", i)
		}
		if err := e.Validate(); err != nil {
			return Errorf(EINVALID, "entry %d: %s", i, ErrorMessage(err))
		}
	}
	return nil
}

// Find returns the entries matching keyword, in index order.
func (idx *Index) Find(keyword string, opts LookupOptions) []*SearchEntry {
	if idx == nil {
		return []*SearchEntry{}
	}
	return Find(idx.Entries, keyword, opts)
}

// Lookup returns the distinct locations of entries matching keyword.
func (idx *Index) Lookup(keyword string, opts LookupOptions) []string {
	return Locations(idx.Find(keyword, opts))
}

// Pages returns the distinct page names in index order.
func (idx *Index) Pages() []string {
	seen := make(map[string]bool)
	pages := []string{}
	for _, e := range idx.Entries {
		if e.Page == "" || seen[e.Page] {
			continue
		}
		seen[e.Page] = true
		pages = append(pages, e.Page)
	}
	return pages
}

// Find returns the entries matching keyword, preserving order.
// The keyword is trimmed; a blank keyword matches nothing.
// The result is never nil.
func Find(entries []*SearchEntry, keyword string, opts LookupOptions) []*SearchEntry {
	keyword = strings.TrimSpace(keyword)
	result := []*SearchEntry{}
	if keyword == "" {
		return result
	}
	for _, e := range entries {
		if !e.Match(keyword, opts) {
			continue
		}
		result = append(result, e)
		if opts.Limit > 0 && len(result) >= opts.Limit {
			break
		}
	}
	return result
}

// Locations returns the distinct locations of entries, in order.
func Locations(entries []*SearchEntry) []string {
	seen := make(map[string]bool, len(entries))
	locations := make([]string, 0, len(entries))
	for _, e := range entries {
		if seen[e.Location] {
			continue
		}
		seen[e.Location] = true
		locations = append(locations, e.Location)
	}
	return locations
}

// Summary returns a one-line description of the index contents, naming
// any categories outside the known set.
func (idx *Index) Summary() string {
	if idx.Len() == 0 {
		return "0 entries"
	}
	counts := make(map[Category]int)
	var order []Category
	for _, e := range idx.Entries {
		if counts[e.Category] == 0 {
			order = append(order, e.Category)
		}
		counts[e.Category]++
	}

	parts := make([]string, 0, len(order))
	var unknown []string
	for _, c := range order {
		name := string(c)
		if name == "" {
			name = "(none)"
		} else if !c.Known() {
			unknown = append(unknown, name)
		}
		parts = append(parts, fmt.Sprintf("%s=%d", name, counts[c]))
	}
	summary := fmt.Sprintf("%d entries (%s)", idx.Len(), strings.Join(parts, ", "))
	if len(unknown) > 0 {
		summary += "; unknown categories: " + strings.Join(unknown, ", ")
	}
	return summary
}
