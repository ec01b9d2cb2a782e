package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docidx"
)

// contentSelectors locate the main content of a page, most specific first.
// A page matching none of them is left to a generic content extractor.
var contentSelectors = []string{"#documenter-page", "article", "main"}

// Ensure SectionExtractor implements docidx.SectionExtractor at compile time.
var _ docidx.SectionExtractor = (*SectionExtractor)(nil)

// SectionExtractor extracts anchored sections from Documenter pages.
type SectionExtractor struct{}

// NewSectionExtractor creates a new SectionExtractor.
func NewSectionExtractor() *SectionExtractor {
	return &SectionExtractor{}
}

// ExtractSection returns the section of html identified by anchor.
//
// An anchor inside a docstring selects the whole docstring. An anchor on
// or inside a heading selects the heading and its following siblings up
// to the next heading of the same or higher level. Other anchors select
// the element carrying the id.
func (e *SectionExtractor) ExtractSection(html, anchor string) (*docidx.Section, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docidx.Errorf(docidx.EINVALID, "failed to parse HTML: %v", err)
	}

	if anchor == "" {
		return pageSection(doc)
	}

	target := findByID(doc, anchor)
	if target == nil {
		return nil, docidx.Errorf(docidx.ENOTFOUND, "anchor %q not found", anchor)
	}

	if docstring := target.Closest("article.docstring"); docstring.Length() > 0 {
		return selectionSection(anchor, docstringTitle(docstring), docstring)
	}

	if heading := closestHeading(target); heading != nil {
		return selectionSection(anchor, cleanText(heading.Text()), headingSection(heading))
	}

	return selectionSection(anchor, cleanText(target.Text()), target)
}

func pageSection(doc *goquery.Document) (*docidx.Section, error) {
	for _, sel := range contentSelectors {
		content := doc.Find(sel).First()
		if content.Length() == 0 {
			continue
		}
		html, err := content.Html()
		if err != nil {
			return nil, err
		}

		title := cleanText(content.Find("h1").First().Text())
		if title == "" {
			title = cleanText(doc.Find("title").First().Text())
		}
		return &docidx.Section{Title: title, HTML: strings.TrimSpace(html)}, nil
	}
	return nil, docidx.Errorf(docidx.ENOTFOUND, "page has no content container")
}

// findByID compares ids literally. Documenter anchors such as
// "OptionalArgChecks.@mark-Tuple{Any,Any}" are not valid CSS selectors.
func findByID(doc *goquery.Document, id string) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, _ := s.Attr("id"); v == id {
			found = s
			return false
		}
		return true
	})
	return found
}

func closestHeading(s *goquery.Selection) *goquery.Selection {
	if headingLevel(s) > 0 {
		return s
	}
	if h := s.Closest("h1, h2, h3, h4, h5, h6"); h.Length() > 0 {
		return h
	}
	return nil
}

func headingSection(heading *goquery.Selection) *goquery.Selection {
	level := headingLevel(heading)
	section := heading
	for next := heading.Next(); next.Length() > 0; next = next.Next() {
		if l := headingLevel(next); l > 0 && l <= level {
			break
		}
		section = section.AddSelection(next)
	}
	return section
}

func headingLevel(s *goquery.Selection) int {
	switch goquery.NodeName(s) {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func docstringTitle(docstring *goquery.Selection) string {
	if binding := docstring.Find(".docstring-binding").First(); binding.Length() > 0 {
		return cleanText(binding.Text())
	}
	return cleanText(docstring.Find("header").First().Text())
}

func selectionSection(anchor, title string, sel *goquery.Selection) (*docidx.Section, error) {
	var b strings.Builder
	var err error
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var html string
		html, err = goquery.OuterHtml(s)
		if err != nil {
			return false
		}
		b.WriteString(html)
		return true
	})
	if err != nil {
		return nil, err
	}
	return &docidx.Section{Anchor: anchor, Title: title, HTML: b.String()}, nil
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
