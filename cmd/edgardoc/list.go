package main

import (
	"fmt"

	"github.com/fwojciec/edgardoc"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := edgardoc.CatalogFilter{Limit: c.Limit}
	if c.Symbol != "" {
		filter.Symbol = &c.Symbol
	}
	if c.Form != "" {
		filter.FormType = &c.Form
	}

	entries, err := deps.Catalog.FindEntries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", edgardoc.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No archives cataloged. Use 'edgardoc extract --catalog' to record some.")
		return nil
	}

	for _, e := range entries {
		filed := "-"
		if !e.FiledAt.IsZero() {
			filed = e.FiledAt.Format("2006-01-02")
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s  %d docs\n",
			filed, e.Symbol, e.FormType, e.Accession, e.CompanyName, e.DocumentCount)
	}

	return nil
}
