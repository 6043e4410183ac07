package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"tmdb-analyzer/utils"
)

// ErrNoBrowser is returned when no Chrome or Chromium binary can be found.
var ErrNoBrowser = errors.New("report: no chrome binary found")

// PDFRenderer prints an HTML report to PDF with a headless browser.
type PDFRenderer struct {
	chromeBin string
	logger    *utils.Logger
	retry     *utils.RetryConfig
}

// NewPDFRenderer locates the browser. chromeBin overrides the lookup when set.
func NewPDFRenderer(chromeBin string, maxRetries int, logger *utils.Logger) *PDFRenderer {
	if chromeBin == "" {
		chromeBin = FindChromeBinary()
	}
	return &PDFRenderer{
		chromeBin: chromeBin,
		logger:    logger,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Render loads htmlPath in the browser and writes the printed PDF to pdfPath.
func (r *PDFRenderer) Render(ctx context.Context, htmlPath, pdfPath string) error {
	if r.chromeBin == "" {
		return ErrNoBrowser
	}

	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("report: resolve %q: %w", htmlPath, err)
	}
	r.logger.Info("[pdf] Using browser binary: %s", r.chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.ExecPath(r.chromeBin),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	var pdf []byte
	err = r.retry.Do(ctx, "print pdf", func() error {
		// Suppress chromedp log noise
		tabCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
		defer cancel()
		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 60*time.Second)
		defer cancelTimeout()

		return chromedp.Run(tabCtx,
			chromedp.Navigate("file://"+abs),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.ActionFunc(func(ctx context.Context) error {
				data, _, err := page.PrintToPDF().
					WithPrintBackground(true).
					WithPreferCSSPageSize(true).
					Do(ctx)
				if err != nil {
					return fmt.Errorf("chromedp print: %w", err)
				}
				pdf = data
				return nil
			}),
		)
	})
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(pdfPath), 0o755); err != nil {
		return fmt.Errorf("report: create output dir: %w", err)
	}
	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return fmt.Errorf("report: write %q: %w", pdfPath, err)
	}
	r.logger.Info("[pdf] Report printed to %s (%d bytes)", pdfPath, len(pdf))
	return nil
}

// FindChromeBinary locates a Chrome or Chromium binary, honoring CHROME_BIN.
func FindChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
