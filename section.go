package docidx

// Section is the rendered documentation behind one entry location.
type Section struct {
	Anchor string
	Title  string
	HTML   string
}

// SectionExtractor extracts the section an anchor points at from page HTML.
type SectionExtractor interface {
	// ExtractSection returns the section for anchor. An empty anchor
	// selects the whole page content.
	// Returns ENOTFOUND if the page has no element with that anchor.
	ExtractSection(html, anchor string) (*Section, error)
}
