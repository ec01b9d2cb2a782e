// Package goquery implements HTML inspection of Documenter sites using
// goquery: locating the search index a page loads, and extracting the
// section an index entry points at.
package goquery

import (
	"context"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docidx"
)

// IndexScript is the file name Documenter gives the search index.
const IndexScript = "search_index.js"

// baseURLAssignment matches Documenter's inline `documenterBaseURL="..."`.
var baseURLAssignment = regexp.MustCompile(`documenterBaseURL\s*=\s*["']([^"']*)["']`)

// Ensure IndexLocator implements docidx.IndexLocator at compile time.
var _ docidx.IndexLocator = (*IndexLocator)(nil)

// IndexLocator finds the search index referenced by a documentation page.
type IndexLocator struct {
	fetcher docidx.Fetcher
}

// NewIndexLocator creates an IndexLocator that fetches pages with fetcher.
func NewIndexLocator(fetcher docidx.Fetcher) *IndexLocator {
	return &IndexLocator{fetcher: fetcher}
}

// Locate returns the index URL for sourceURL. Sources that already name a
// .js or .json file are returned unchanged.
func (l *IndexLocator) Locate(ctx context.Context, sourceURL string) (string, error) {
	if sourceURL == "" {
		return "", docidx.Errorf(docidx.EINVALID, "source URL required")
	}
	if IsIndexFile(sourceURL) {
		return sourceURL, nil
	}

	html, err := l.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return "", err
	}

	ref, err := FindIndexScript(html)
	if err != nil {
		return "", err
	}
	if ref == "" {
		if !IsDocumenter(html) {
			return "", docidx.Errorf(docidx.ENOTFOUND, "%s is not a Documenter page", sourceURL)
		}
		return "", docidx.Errorf(docidx.ENOTFOUND, "no search index referenced by %s", sourceURL)
	}
	return resolveReference(sourceURL, ref)
}

// IsIndexFile reports whether source names a search index file directly.
func IsIndexFile(source string) bool {
	p := source
	if u, err := url.Parse(source); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(filepath.ToSlash(p)))
	return ext == ".js" || ext == ".json"
}

// FindIndexScript returns the script reference a page uses to load its
// search index, relative to the page. It prefers an explicit <script src>
// ending in search_index.js and falls back to Documenter's base URL
// variable. Returns "" if the page references neither.
func FindIndexScript(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", docidx.Errorf(docidx.EINVALID, "failed to parse HTML: %v", err)
	}

	var ref string
	doc.Find("script[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		src = strings.TrimSpace(src)
		if strings.HasSuffix(stripQuery(src), IndexScript) {
			ref = src
			return false
		}
		return true
	})
	if ref != "" {
		return ref, nil
	}

	doc.Find("script:not([src])").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := baseURLAssignment.FindStringSubmatch(s.Text()); m != nil {
			ref = path.Join(m[1], IndexScript)
			return false
		}
		return true
	})
	return ref, nil
}

// IsDocumenter reports whether html was generated by Documenter.
func IsDocumenter(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}

	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})
	if strings.Contains(generator, "documenter") {
		return true
	}

	return doc.Find("#documenter").Length() > 0 || doc.Find("#documenter-page").Length() > 0
}

// PageURL returns the URL of the page an entry location points at. Entry
// locations are relative to the directory holding the search index.
func PageURL(indexURL, location string) (string, error) {
	page, _, _ := strings.Cut(location, "#")
	if page == "" {
		return "", docidx.Errorf(docidx.EINVALID, "location %q has no page", location)
	}
	return resolveReference(indexURL, page)
}

// resolveReference resolves ref against the page at pageURL. Local pages
// resolve against their directory on disk.
func resolveReference(pageURL, ref string) (string, error) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", docidx.Errorf(docidx.EINVALID, "invalid script reference %q: %v", ref, err)
	}

	base, err := url.Parse(pageURL)
	if err != nil || base.Scheme == "" || len(base.Scheme) == 1 {
		if refURL.IsAbs() {
			return ref, nil
		}
		return filepath.Join(filepath.Dir(pageURL), filepath.FromSlash(refURL.Path)), nil
	}

	return base.ResolveReference(refURL).String(), nil
}

func stripQuery(src string) string {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		return src[:i]
	}
	return src
}
