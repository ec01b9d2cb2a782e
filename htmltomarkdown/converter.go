// Package htmltomarkdown renders documentation sections as Markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/docidx"
)

// Documenter decorates headings with empty anchors and a permalink; both
// render as noise in Markdown.
var (
	emptyAnchor     = regexp.MustCompile(`<a id="[^"]*"></a>`)
	permalinkAnchor = regexp.MustCompile(`<a class="docs-heading-anchor-permalink"[^>]*></a>`)
	blankLines      = regexp.MustCompile(`\n{3,}`)
)

// Ensure Converter implements docidx.Converter at compile time.
var _ docidx.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain resolves relative links and images against domain.
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", docidx.Errorf(docidx.EINVALID, "empty HTML input")
	}

	html = emptyAnchor.ReplaceAllString(html, "")
	html = permalinkAnchor.ReplaceAllString(html, "")

	var convOpts []converter.ConvertOptionFunc
	if c.domain != "" {
		convOpts = append(convOpts, converter.WithDomain(c.domain))
	}

	result, err := c.conv.ConvertString(html, convOpts...)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(blankLines.ReplaceAllString(result, "\n\n")), nil
}
