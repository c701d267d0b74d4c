// Package fetch - browser.go provides headless browser rendering for
// JavaScript-heavy pages. The FSIS recalls listing is a client-rendered app;
// a plain GET returns a near-empty shell.
package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the shortest extracted text accepted from a plain HTTP
// fetch. Anything shorter means the page renders client-side and needs the
// browser.
const MinContentLength = 500

// renderSettle is how long the page gets to finish client-side rendering
// after the body is ready.
const renderSettle = 3 * time.Second

// ShouldUseBrowser reports whether extracted text is too short to be a real
// announcement page.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// WithBrowser renders a page in headless Chrome and returns the final HTML.
// Requires Chrome or Chromium on the system.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", url)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, browserFlags()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(renderSettle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}
	return html, nil
}

// RenderedText renders a page in the headless browser and extracts its main
// text using the selectors for the detected site.
func RenderedText(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	html, err := WithBrowser(ctx, url, timeout, verbose)
	if err != nil {
		return "", err
	}

	site := DetectSite(url)
	return ExtractMainText(html, SiteContentSelectors(site), SiteNoiseSelectors(site)...)
}

func browserFlags() []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
}
