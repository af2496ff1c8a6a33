package mock

import "github.com/fwojciec/edgardoc"

var _ edgardoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of edgardoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
