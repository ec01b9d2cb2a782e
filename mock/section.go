package mock

import "github.com/fwojciec/docidx"

var _ docidx.SectionExtractor = (*SectionExtractor)(nil)

// SectionExtractor is a mock implementation of docidx.SectionExtractor.
type SectionExtractor struct {
	ExtractSectionFn func(html, anchor string) (*docidx.Section, error)
}

func (e *SectionExtractor) ExtractSection(html, anchor string) (*docidx.Section, error) {
	return e.ExtractSectionFn(html, anchor)
}
