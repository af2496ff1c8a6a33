package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/edgardoc"
	"github.com/fwojciec/edgardoc/batch"
	"github.com/fwojciec/edgardoc/fs"
	"github.com/fwojciec/edgardoc/htmltomarkdown"
	edhttp "github.com/fwojciec/edgardoc/http"
	"github.com/fwojciec/edgardoc/sgml"
	"github.com/fwojciec/edgardoc/site"
	edslog "github.com/fwojciec/edgardoc/slog"
	"github.com/fwojciec/edgardoc/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Catalog database path. Set before calling Run().
	DBPath string

	// SQLite database backing the catalog. Only opened by commands that
	// need it.
	DB *sqlite.DB

	// Catalog service for end-to-end testing.
	CatalogService edgardoc.CatalogService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("edgardoc"),
		kong.Description("Download SEC EDGAR filings and extract their documents"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'edgardoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = kongCtx.Command()

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	needsCatalog := cmd == "list" ||
		(cmd == "extract <source> <target>" && (cli.Extract.Catalog || cli.Extract.Incremental))
	if needsCatalog {
		if err := m.openCatalog(stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Catalog = edslog.NewLoggingCatalogService(m.CatalogService, logger)
	}

	switch cmd {
	case "extract <source> <target>":
		store := fs.NewArchiveStore()
		store.Concurrency = cli.Extract.Concurrency
		if cli.Extract.Markdown {
			store.Converter = htmltomarkdown.NewConverter()
		}
		deps.Processor = &batch.Processor{
			Filings:     fs.NewFilingStore(cli.Extract.Source),
			Parser:      edslog.NewLoggingArchiveParser(sgml.NewParser(), logger),
			Writer:      edslog.NewLoggingArchiveWriter(store, logger),
			Catalog:     deps.Catalog,
			Incremental: cli.Extract.Incremental,
			Concurrency: cli.Extract.Concurrency,
		}
		if cli.Extract.Site {
			if deps.Site, err = newSiteGenerator(logger); err != nil {
				return err
			}
		}

	case "site <root>":
		if deps.Site, err = newSiteGenerator(logger); err != nil {
			return err
		}

	case "download <symbols>":
		client := edhttp.NewClient(cli.Download.UserAgent,
			edhttp.WithRequestsPerSecond(cli.Download.RequestsPerSecond),
		)
		downloader := edhttp.NewDownloader(client, fs.NewFilingStore(cli.Download.Target))
		deps.Downloader = edslog.NewLoggingDownloader(downloader, logger)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openCatalog(stderr io.Writer) error {
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set EDGARDOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	m.CatalogService = sqlite.NewCatalogService(m.DB)
	return nil
}

func newSiteGenerator(logger *slog.Logger) (edgardoc.SiteGenerator, error) {
	renderer, err := site.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load page templates: %w", err)
	}
	return edslog.NewLoggingSiteGenerator(site.NewGenerator(renderer), logger), nil
}

func defaultDBPath() string {
	if path := os.Getenv("EDGARDOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "edgardoc.db"
	}
	dir := filepath.Join(home, ".edgardoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "edgardoc.db")
}
