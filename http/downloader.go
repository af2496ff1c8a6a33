package http

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/fwojciec/edgardoc"
)

// Ensure Downloader implements edgardoc.Downloader at compile time.
var _ edgardoc.Downloader = (*Downloader)(nil)

// Downloader fetches full-text submissions for a ticker symbol and stores
// them in a filing store.
type Downloader struct {
	client  *Client
	filings edgardoc.FilingStore

	mu   sync.Mutex
	ciks map[string]int
}

// NewDownloader creates a new Downloader.
func NewDownloader(client *Client, filings edgardoc.FilingStore) *Downloader {
	return &Downloader{
		client:  client,
		filings: filings,
	}
}

// Download saves the most recent filings of the requested form type, newest
// first. Returns ENOTFOUND for an unknown ticker.
func (d *Downloader) Download(ctx context.Context, req edgardoc.DownloadRequest) ([]*edgardoc.Filing, error) {
	if req.Symbol == "" {
		return nil, edgardoc.Errorf(edgardoc.EINVALID, "symbol required")
	}
	if req.FormType == "" {
		return nil, edgardoc.Errorf(edgardoc.EINVALID, "form type required")
	}
	symbol := strings.ToUpper(req.Symbol)

	cik, err := d.lookupCIK(ctx, symbol)
	if err != nil {
		return nil, err
	}

	accessions, err := d.listAccessions(ctx, cik, req.FormType, req.Limit)
	if err != nil {
		return nil, err
	}

	filings := make([]*edgardoc.Filing, 0, len(accessions))
	for _, accession := range accessions {
		body, err := d.client.Get(ctx, d.archiveURL(cik, accession))
		if err != nil {
			return filings, fmt.Errorf("download %s: %w", accession, err)
		}
		f := &edgardoc.Filing{
			Symbol:    symbol,
			FormType:  req.FormType,
			Accession: accession,
		}
		if err := d.filings.WriteFiling(ctx, f, body); err != nil {
			return filings, fmt.Errorf("save %s: %w", accession, err)
		}
		filings = append(filings, f)
	}
	return filings, nil
}

type tickerEntry struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// lookupCIK resolves a ticker symbol to its central index key. The ticker
// map is fetched once per Downloader.
func (d *Downloader) lookupCIK(ctx context.Context, symbol string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ciks == nil {
		body, err := d.client.Get(ctx, d.client.baseURL+"/files/company_tickers.json")
		if err != nil {
			return 0, fmt.Errorf("fetch ticker map: %w", err)
		}
		var entries map[string]tickerEntry
		if err := json.Unmarshal(body, &entries); err != nil {
			return 0, fmt.Errorf("decode ticker map: %w", err)
		}
		d.ciks = make(map[string]int, len(entries))
		for _, e := range entries {
			d.ciks[strings.ToUpper(e.Ticker)] = e.CIK
		}
	}

	cik, ok := d.ciks[symbol]
	if !ok {
		return 0, edgardoc.Errorf(edgardoc.ENOTFOUND, "unknown ticker %q", symbol)
	}
	return cik, nil
}

type submissions struct {
	Filings struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			Form            []string `json:"form"`
		} `json:"recent"`
	} `json:"filings"`
}

// listAccessions returns accession numbers of the company's recent filings
// of formType, newest first.
func (d *Downloader) listAccessions(ctx context.Context, cik int, formType string, limit int) ([]string, error) {
	url := fmt.Sprintf("%s/submissions/CIK%010d.json", d.client.dataURL, cik)
	body, err := d.client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch submissions: %w", err)
	}

	var subs submissions
	if err := json.Unmarshal(body, &subs); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}

	recent := subs.Filings.Recent
	var accessions []string
	for i, form := range recent.Form {
		if i >= len(recent.AccessionNumber) {
			break
		}
		if !strings.EqualFold(form, formType) {
			continue
		}
		accessions = append(accessions, recent.AccessionNumber[i])
		if limit > 0 && len(accessions) == limit {
			break
		}
	}
	return accessions, nil
}

// archiveURL returns the location of the full-text submission.
func (d *Downloader) archiveURL(cik int, accession string) string {
	return fmt.Sprintf("%s/Archives/edgar/data/%d/%s/%s.txt",
		d.client.baseURL, cik, strings.ReplaceAll(accession, "-", ""), accession)
}
