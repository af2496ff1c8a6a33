package main

import (
	"fmt"

	"github.com/fwojciec/edgardoc"
)

// Run executes the site command.
func (c *SiteCmd) Run(deps *Dependencies) error {
	if err := deps.Site.Generate(deps.Ctx, c.Root); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", edgardoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Generated index pages in %s\n", c.Root)
	return nil
}
