package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/edgardoc"
	"github.com/fwojciec/edgardoc/batch"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if err := os.MkdirAll(c.Target, 0755); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	result, err := deps.Processor.ProcessTree(deps.Ctx, c.Target, func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressCompleted:
			deps.Logger.Info("extracted filing",
				"path", event.Filing.Path,
				"completed", event.Completed,
				"total", event.Total,
			)
		case batch.ProgressSkipped:
			deps.Logger.Info("skipped unchanged filing", "path", event.Filing.Path)
		case batch.ProgressFailed:
			deps.Logger.Error("failed to extract filing",
				"path", event.Filing.Path,
				"code", edgardoc.ErrorCode(event.Error),
				"err", event.Error,
			)
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", edgardoc.ErrorMessage(err))
		return err
	}

	if result.Found == 0 {
		deps.Logger.Warn("no filings found", "source", c.Source)
		fmt.Fprintf(deps.Stdout, "No filings found under %s\n", c.Source)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Extracted %d of %d filings (%d skipped, %d failed)\n",
		result.Processed, result.Found, result.Skipped, result.Failed)
	for _, f := range result.Failures {
		fmt.Fprintf(deps.Stdout, "  failed: %s: %s\n", f.Filing.Path, edgardoc.ErrorMessage(f.Err))
	}

	if c.Site && deps.Site != nil {
		if err := deps.Site.Generate(deps.Ctx, c.Target); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", edgardoc.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Generated index pages in %s\n", c.Target)
	}

	return nil
}
