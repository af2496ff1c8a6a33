package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/edgardoc"
	"github.com/fwojciec/edgardoc/mock"
	edslog "github.com/fwojciec/edgardoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingDownloader_Download(t *testing.T) {
	t.Parallel()

	t.Run("logs symbol, form, and count at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Downloader{
			DownloadFn: func(context.Context, edgardoc.DownloadRequest) ([]*edgardoc.Filing, error) {
				return make([]*edgardoc.Filing, 2), nil
			},
		}

		d := edslog.NewLoggingDownloader(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		filings, err := d.Download(context.Background(), edgardoc.DownloadRequest{Symbol: "AAPL", FormType: "10-K"})

		require.NoError(t, err)
		assert.Len(t, filings, 2)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "symbol=AAPL")
		assert.Contains(t, output, "form=10-K")
		assert.Contains(t, output, "count=2")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Downloader{
			DownloadFn: func(context.Context, edgardoc.DownloadRequest) ([]*edgardoc.Filing, error) {
				return nil, errors.New("connection reset")
			},
		}

		d := edslog.NewLoggingDownloader(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := d.Download(context.Background(), edgardoc.DownloadRequest{Symbol: "AAPL", FormType: "10-K"})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "download filings")
		assert.Contains(t, output, "symbol=AAPL")
		assert.Contains(t, output, "err=\"connection reset\"")
	})
}

func TestLoggingSiteGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("logs root at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SiteGenerator{
			GenerateFn: func(context.Context, string) error { return nil },
		}

		g := edslog.NewLoggingSiteGenerator(inner, newDebugLogger(&buf))
		require.NoError(t, g.Generate(context.Background(), "out"))

		output := buf.String()
		assert.Contains(t, output, "generate site")
		assert.Contains(t, output, "root=out")
	})

	t.Run("logs failures at warn level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SiteGenerator{
			GenerateFn: func(context.Context, string) error { return errors.New("boom") },
		}

		g := edslog.NewLoggingSiteGenerator(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		require.Error(t, g.Generate(context.Background(), "out"))

		assert.Contains(t, buf.String(), "level=WARN")
	})
}
