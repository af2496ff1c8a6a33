package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/edgardoc"
)

// Run executes the download command.
//
// A failed symbol/form pair is reported and the remaining pairs are still
// downloaded. The command fails if any pair failed.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	var downloaded, failed int
	for _, symbol := range c.Symbols {
		for _, form := range c.Forms {
			filings, err := deps.Downloader.Download(deps.Ctx, edgardoc.DownloadRequest{
				Symbol:   symbol,
				FormType: form,
				Limit:    c.Limit,
			})
			if err != nil {
				if deps.Ctx.Err() != nil {
					return deps.Ctx.Err()
				}
				failed++
				fmt.Fprintf(deps.Stderr, "error: %s %s: %s\n", strings.ToUpper(symbol), form, edgardoc.ErrorMessage(err))
				continue
			}
			downloaded += len(filings)
			fmt.Fprintf(deps.Stdout, "%s %s: %d filings\n", strings.ToUpper(symbol), form, len(filings))
		}
	}

	fmt.Fprintf(deps.Stdout, "Downloaded %d filings to %s\n", downloaded, c.Target)

	if failed > 0 {
		return fmt.Errorf("%d downloads failed", failed)
	}
	return nil
}
