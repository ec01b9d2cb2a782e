package bloom

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/docidx"
)

// DefaultFalsePositiveRate is the false positive rate of trigram filters.
const DefaultFalsePositiveRate = 0.01

// Index answers keyword lookups over a fixed set of entries, rejecting
// keywords whose trigrams are absent from every title or text without
// scanning the entries.
type Index struct {
	entries []*docidx.SearchEntry
	titles  *Filter
	texts   *Filter
}

// NewIndex builds trigram filters over the lowercased titles and texts
// of entries.
func NewIndex(entries []*docidx.SearchEntry) *Index {
	titleGrams := make(map[string]struct{})
	textGrams := make(map[string]struct{})
	for _, e := range entries {
		addTrigrams(titleGrams, e.Title)
		addTrigrams(textGrams, e.Text)
	}

	idx := &Index{
		entries: entries,
		titles:  NewFilter(uint(len(titleGrams)), DefaultFalsePositiveRate),
		texts:   NewFilter(uint(len(textGrams)), DefaultFalsePositiveRate),
	}
	for g := range titleGrams {
		idx.titles.Add(g)
	}
	for g := range textGrams {
		idx.texts.Add(g)
	}
	return idx
}

// Len returns the number of entries in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// MayContain reports whether keyword can occur in the given field of some
// entry. A false result is definite. Keywords shorter than three runes
// cannot be filtered and always pass, as do keywords that are not valid
// UTF-8: lowercasing rewrites their invalid bytes, so their trigrams say
// nothing about a byte-exact match.
func (idx *Index) MayContain(keyword string, field docidx.Field) bool {
	if !utf8.ValidString(keyword) {
		return true
	}
	grams := Trigrams(keyword)
	if len(grams) == 0 {
		return strings.TrimSpace(keyword) != ""
	}

	switch field {
	case docidx.FieldTitle:
		return allPresent(idx.titles, grams)
	case docidx.FieldText:
		return allPresent(idx.texts, grams)
	default:
		return allPresent(idx.titles, grams) || allPresent(idx.texts, grams)
	}
}

// Lookup returns the entries matching keyword. Results are identical to
// docidx.Find over the same entries.
func (idx *Index) Lookup(keyword string, opts docidx.LookupOptions) []*docidx.SearchEntry {
	keyword = strings.TrimSpace(keyword)
	if !idx.MayContain(keyword, opts.Field) {
		return []*docidx.SearchEntry{}
	}
	return docidx.Find(idx.entries, keyword, opts)
}

// Trigrams returns the distinct lowercased rune trigrams of s.
func Trigrams(s string) []string {
	set := make(map[string]struct{})
	addTrigrams(set, s)
	grams := make([]string, 0, len(set))
	for g := range set {
		grams = append(grams, g)
	}
	return grams
}

func addTrigrams(set map[string]struct{}, s string) {
	runes := []rune(strings.ToLower(s))
	for i := 0; i+3 <= len(runes); i++ {
		set[string(runes[i:i+3])] = struct{}{}
	}
}

func allPresent(f *Filter, grams []string) bool {
	for _, g := range grams {
		if !f.Test(g) {
			return false
		}
	}
	return true
}
