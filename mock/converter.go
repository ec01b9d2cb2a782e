package mock

import "github.com/fwojciec/docidx"

var _ docidx.Converter = (*Converter)(nil)

// Converter is a mock implementation of docidx.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
