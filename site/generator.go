package site

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/edgardoc"
	"github.com/fwojciec/edgardoc/fs"
	"gopkg.in/yaml.v3"
)

// DateLayout is the layout used to display filing dates.
const DateLayout = "2006 January 02"

// IndexFilename is the name of every generated page.
const IndexFilename = "index.html"

// Ensure Generator implements edgardoc.SiteGenerator at compile time.
var _ edgardoc.SiteGenerator = (*Generator)(nil)

// Generator writes index pages over an output tree laid out as
// root/SYMBOL/FORM/ACCESSION: one for the root listing symbols, one per
// symbol listing form types, one per form type listing archives and one per
// archive listing its documents.
type Generator struct {
	Renderer *Renderer
	Now      func() time.Time
}

// NewGenerator creates a new Generator.
func NewGenerator(renderer *Renderer) *Generator {
	return &Generator{
		Renderer: renderer,
		Now:      time.Now,
	}
}

type page struct {
	Title     string
	Generated string
}

type symbolsPage struct {
	page
	Symbols []symbolView
}

type symbolView struct {
	Symbol   string
	Archives int
}

type formsPage struct {
	page
	Symbol string
	Forms  []formView
}

type formView struct {
	FormType string
	Archives int
}

type archivesPage struct {
	page
	Symbol   string
	FormType string
	Archives []*archiveView
}

type archiveView struct {
	Accession string
	Filed     string
	Company   string

	filedAt time.Time
	dir     string
	meta    *edgardoc.Metadata
}

type documentsPage struct {
	page
	Symbol    string
	FormType  string
	Accession string
	Company   string
	Filed     string
	Header    string
	Groups    []documentGroup
}

type documentGroup struct {
	Extension string
	Documents []documentView
}

type documentView struct {
	Filename    string
	Description string
	Markdown    string
}

// Generate writes the index pages under root.
func (g *Generator) Generate(ctx context.Context, root string) error {
	archives, err := fs.FindArchives(root)
	if err != nil {
		return fmt.Errorf("find archives: %w", err)
	}

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	generated := now().Format(time.RFC3339)

	// symbol -> form type -> archives
	tree := make(map[string]map[string][]*archiveView)
	for _, a := range archives {
		if err := ctx.Err(); err != nil {
			return err
		}
		view, err := newArchiveView(a)
		if err != nil {
			return err
		}
		forms := tree[a.Symbol]
		if forms == nil {
			forms = make(map[string][]*archiveView)
			tree[a.Symbol] = forms
		}
		forms[a.FormType] = append(forms[a.FormType], view)
	}

	symbols := slices.Sorted(maps.Keys(tree))
	index := symbolsPage{page: page{Title: "Filings", Generated: generated}}
	for _, symbol := range symbols {
		forms := tree[symbol]
		fp := formsPage{
			page:   page{Title: symbol, Generated: generated},
			Symbol: symbol,
		}
		var total int
		for _, form := range slices.Sorted(maps.Keys(forms)) {
			views := forms[form]
			sortArchives(views)
			if err := g.writeArchives(filepath.Join(root, symbol, form), symbol, form, views, generated); err != nil {
				return err
			}
			fp.Forms = append(fp.Forms, formView{FormType: form, Archives: len(views)})
			total += len(views)
		}
		if err := g.write(filepath.Join(root, symbol), FormsTemplate, fp); err != nil {
			return err
		}
		index.Symbols = append(index.Symbols, symbolView{Symbol: symbol, Archives: total})
	}

	return g.write(root, SymbolsTemplate, index)
}

func (g *Generator) writeArchives(dir, symbol, form string, views []*archiveView, generated string) error {
	for _, v := range views {
		header, err := yaml.Marshal(v.meta.Header)
		if err != nil {
			return fmt.Errorf("encode header of %s: %w", v.Accession, err)
		}
		dp := documentsPage{
			page:      page{Title: symbol + " " + form + " " + v.Accession, Generated: generated},
			Symbol:    symbol,
			FormType:  form,
			Accession: v.Accession,
			Company:   v.Company,
			Filed:     v.Filed,
			Header:    string(header),
			Groups:    groupDocuments(v.dir, v.meta.Documents),
		}
		if err := g.write(v.dir, DocumentsTemplate, dp); err != nil {
			return err
		}
	}

	return g.write(dir, ArchivesTemplate, archivesPage{
		page:     page{Title: symbol + " " + form, Generated: generated},
		Symbol:   symbol,
		FormType: form,
		Archives: views,
	})
}

func (g *Generator) write(dir, name string, data any) error {
	var buf bytes.Buffer
	if err := g.Renderer.Render(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return os.WriteFile(filepath.Join(dir, IndexFilename), buf.Bytes(), 0644)
}

func newArchiveView(a *edgardoc.Filing) (*archiveView, error) {
	meta, err := fs.ReadMetadata(a.Path)
	if err != nil {
		return nil, err
	}
	v := &archiveView{
		Accession: a.Accession,
		Company:   meta.Header.CompanyName(),
		dir:       a.Path,
		meta:      meta,
	}
	// Archives without a usable filing date are listed last.
	if t, err := meta.Header.FiledAsOf(); err == nil {
		v.filedAt = t
		v.Filed = t.Format(DateLayout)
	}
	return v, nil
}

// sortArchives orders archives newest filing first.
func sortArchives(views []*archiveView) {
	slices.SortFunc(views, func(a, b *archiveView) int {
		if c := b.filedAt.Compare(a.filedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.Accession, a.Accession)
	})
}

// groupDocuments groups documents by the uppercased filename suffix after
// the first dot.
func groupDocuments(dir string, docs map[string]edgardoc.Attributes) []documentGroup {
	groups := make(map[string][]documentView)
	for _, name := range slices.Sorted(maps.Keys(docs)) {
		doc := &edgardoc.Document{Attrs: docs[name]}
		view := documentView{
			Filename:    name,
			Description: doc.Description(),
		}
		if _, err := os.Stat(filepath.Join(dir, name+fs.MarkdownSuffix)); err == nil {
			view.Markdown = name + fs.MarkdownSuffix
		}
		ext := documentExtension(name)
		groups[ext] = append(groups[ext], view)
	}

	out := make([]documentGroup, 0, len(groups))
	for _, ext := range slices.Sorted(maps.Keys(groups)) {
		out = append(out, documentGroup{Extension: ext, Documents: groups[ext]})
	}
	return out
}

func documentExtension(name string) string {
	_, ext, ok := strings.Cut(name, ".")
	if !ok || ext == "" {
		return "OTHER"
	}
	return strings.ToUpper(ext)
}
