// Package trafilatura extracts the main content of generic documentation
// pages with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/docidx"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docidx.SectionExtractor at compile time.
var _ docidx.SectionExtractor = (*Extractor)(nil)

// Extractor returns sections from next and falls back to boilerplate
// removal when next cannot place the content of a whole page. Anchored
// sections are never extracted by trafilatura: an anchor next cannot find
// stays not found.
type Extractor struct {
	next docidx.SectionExtractor
}

// NewExtractor creates an Extractor in front of next. A nil next makes
// every whole-page request go through trafilatura.
func NewExtractor(next docidx.SectionExtractor) *Extractor {
	return &Extractor{next: next}
}

// ExtractSection returns the section of rawHTML identified by anchor.
func (e *Extractor) ExtractSection(rawHTML, anchor string) (*docidx.Section, error) {
	if e.next != nil {
		section, err := e.next.ExtractSection(rawHTML, anchor)
		if err == nil || anchor != "" || docidx.ErrorCode(err) != docidx.ENOTFOUND {
			return section, err
		}
	}
	if anchor != "" {
		return nil, docidx.Errorf(docidx.ENOTFOUND, "anchor %q not found", anchor)
	}
	return Extract(rawHTML)
}

// Extract returns the main content of a page.
func Extract(rawHTML string) (*docidx.Section, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docidx.Errorf(docidx.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, docidx.Errorf(docidx.ENOTFOUND, "no main content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(contentHTML) == "" {
		return nil, docidx.Errorf(docidx.ENOTFOUND, "no main content")
	}

	return &docidx.Section{
		Title: result.Metadata.Title,
		HTML:  contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
