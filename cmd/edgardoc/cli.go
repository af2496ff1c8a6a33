package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/edgardoc"
	"github.com/fwojciec/edgardoc/batch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Processor  *batch.Processor
	Site       edgardoc.SiteGenerator
	Downloader edgardoc.Downloader
	Catalog    edgardoc.CatalogService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Download DownloadCmd `cmd:"" help:"Download full-text filings from EDGAR"`
	Extract  ExtractCmd  `cmd:"" help:"Extract documents from downloaded filings"`
	Site     SiteCmd     `cmd:"" help:"Generate index pages for extracted filings"`
	List     ListCmd     `cmd:"" help:"List cataloged archives"`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	Symbols           []string `arg:"" help:"Stock ticker symbols"`
	Target            string   `short:"t" required:"" type:"existingdir" help:"Parent directory for downloaded files"`
	Forms             []string `short:"f" name:"form" default:"10-K" help:"Form type to download (repeatable)"`
	Limit             int      `short:"n" help:"Most recent filings to fetch per symbol and form (0 for all)"`
	UserAgent         string   `required:"" env:"EDGARDOC_USER_AGENT" help:"User-Agent sent to EDGAR, e.g. 'Name email@example.com'"`
	RequestsPerSecond float64  `name:"rps" default:"10" help:"Request rate limit"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Source      string `arg:"" type:"existingdir" help:"Directory that houses sec_edgar_filings"`
	Target      string `arg:"" help:"Directory to extract archives into"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent filing limit"`
	Markdown    bool   `short:"m" help:"Also write Markdown renditions of HTML documents"`
	Catalog     bool   `help:"Record extracted archives in the catalog database"`
	Incremental bool   `short:"i" help:"Skip filings unchanged since they were last cataloged (implies --catalog)"`
	Site        bool   `default:"true" negatable:"" help:"Generate index pages after extraction"`
}

// SiteCmd is the "site" subcommand.
type SiteCmd struct {
	Root string `arg:"" type:"existingdir" help:"Directory of extracted archives"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Symbol string `short:"s" help:"Only list archives for this symbol"`
	Form   string `short:"f" help:"Only list archives of this form type"`
	Limit  int    `short:"n" help:"Maximum number of archives to list"`
}
