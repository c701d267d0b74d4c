package collect

import (
	"context"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/vualidon/food-recall-agent/internal/fetch"
	"github.com/vualidon/food-recall-agent/internal/types"
)

// CollectUSDA scrapes the FSIS recalls site: the listing page for recall
// detail links, then each detail page for its announcement text. Every
// collected announcement gets a fresh UUID.
func (c *Collector) CollectUSDA(ctx context.Context) ([]string, error) {
	log.Printf("Collecting USDA recalls from %s", c.usdaURL)

	result, err := fetch.URLWithRetry(ctx, c.usdaURL, nil, c.policy)
	if err != nil {
		return nil, &Error{Source: types.SourceUSDA, Message: "failed to fetch recall listing", Cause: err}
	}

	links, err := RecallLinks(result.HTML, c.usdaURL)
	if err != nil {
		return nil, err
	}

	// The FSIS listing is a JavaScript application; a plain fetch can come
	// back with no recall links. Render it in headless Chrome if allowed.
	if len(links) == 0 && c.opts.UseBrowser {
		log.Printf("No recall links in plain fetch, rendering listing in browser")
		rendered, browserErr := fetch.WithBrowser(ctx, c.usdaURL, BrowserTimeout, c.opts.Verbose)
		if browserErr != nil {
			return nil, &Error{Source: types.SourceUSDA, Message: "browser render of listing failed", Cause: browserErr}
		}
		links, err = RecallLinks(rendered, c.usdaURL)
		if err != nil {
			return nil, err
		}
	}

	log.Printf("Found %d recall alert links", len(links))

	now := c.opts.Now()
	var paths []string
	for _, link := range links {
		if c.delay > 0 {
			time.Sleep(c.delay)
		}

		text, err := c.fetchAnnouncement(ctx, link)
		if err != nil {
			log.Printf("Warning: skipping USDA recall %s: %v", link, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			log.Printf("Warning: skipping USDA recall %s: no announcement text", link)
			continue
		}

		raw := &types.RawRecall{
			Source:      types.SourceUSDA,
			ID:          uuid.NewString(),
			URL:         link,
			Content:     text,
			CollectedAt: now,
		}

		path, err := c.store.SaveRaw(raw)
		if err != nil {
			log.Printf("Warning: failed to save USDA recall %s: %v", link, err)
			continue
		}
		paths = append(paths, path)
		c.verbosef("collected USDA recall %s", link)
	}

	log.Printf("Collected %d USDA recall announcements", len(paths))
	return paths, nil
}

// fetchAnnouncement retrieves a recall detail page and extracts its main text.
func (c *Collector) fetchAnnouncement(ctx context.Context, link string) (string, error) {
	result, err := fetch.URLWithRetry(ctx, link, nil, c.policy)
	if err != nil {
		return "", err
	}

	site := fetch.DetectSite(link)
	text, err := fetch.ExtractMainText(result.HTML, fetch.SiteContentSelectors(site), fetch.SiteNoiseSelectors(site)...)
	if err != nil {
		return "", err
	}

	if fetch.ShouldUseBrowser(text) && c.opts.UseBrowser {
		c.verbosef("announcement text too short, rendering %s in browser", link)
		return fetch.RenderedText(ctx, link, BrowserTimeout, c.opts.Verbose)
	}

	return text, nil
}

// RecallLinks extracts FSIS recall detail links from listing page HTML.
// Detail pages live under /recalls-alerts/; everything else on the listing
// page is navigation.
func RecallLinks(htmlContent, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &Error{Source: types.SourceUSDA, Message: "invalid listing URL", Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &Error{Source: types.SourceUSDA, Message: "failed to parse listing HTML", Cause: err}
	}

	seen := make(map[string]bool)
	links := make([]string, 0)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return
		}

		absolute := base.ResolveReference(linkURL)
		if !strings.Contains(absolute.Path, "/recalls-alerts/") {
			return
		}

		absolute.Fragment = ""
		link := strings.TrimSuffix(absolute.String(), "/")
		if !seen[link] {
			seen[link] = true
			links = append(links, link)
		}
	})

	return links, nil
}
