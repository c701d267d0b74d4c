// Package fetch - site.go provides recall site detection and site-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Site represents a known recall publisher site.
type Site string

const (
	// SiteFDA is fda.gov (recalls, market withdrawals and safety alerts)
	SiteFDA Site = "fda"
	// SiteFSIS is fsis.usda.gov (USDA recalls and public health alerts)
	SiteFSIS Site = "fsis"
	// SiteUnknown is an unrecognized site
	SiteUnknown Site = "unknown"
)

// DetectSite identifies the recall publisher from a URL.
func DetectSite(urlStr string) Site {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return SiteUnknown
	}

	host := strings.ToLower(parsed.Host)

	if strings.Contains(host, "fsis.usda.gov") {
		return SiteFSIS
	}

	if strings.Contains(host, "fda.gov") {
		return SiteFDA
	}

	return SiteUnknown
}

// SiteContentSelectors returns content selectors tuned for a recall site.
// Both fda.gov and fsis.usda.gov are Drupal sites; announcement bodies live
// in predictable node/field containers.
func SiteContentSelectors(site Site) []string {
	switch site {
	case SiteFDA:
		return []string{
			"#main-content article",
			".recall-announcement",
			"#main-content",
			"main",
			"article",
			".content",
		}
	case SiteFSIS:
		return []string{
			".node--type-recall",
			".usa-prose",
			".field--name-body",
			"main",
			"article",
			".content",
		}
	default:
		return DefaultTextSelectors()
	}
}

// SiteNoiseSelectors returns noise exclusion selectors for a recall site.
func SiteNoiseSelectors(site Site) []string {
	// Shared chrome on both government sites
	common := []string{
		".usa-banner",
		".breadcrumb",
		".pager",
		".social-share",
		".share-buttons",
		"#search-form",
		".skip-link",
	}

	switch site {
	case SiteFDA:
		return append(common,
			"#section-nav",
			"#footer-heading",
			".fda-masthead",
			".lcds-breadcrumb",
			".datatables-data",
		)
	case SiteFSIS:
		return append(common,
			".usa-nav",
			".usa-footer",
			".recall-search-form",
			".view-filters",
			".usa-sidenav",
		)
	default:
		return common
	}
}
