package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSite(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Site
	}{
		{
			name: "FDA recalls listing",
			url:  "https://www.fda.gov/safety/recalls-market-withdrawals-safety-alerts",
			want: SiteFDA,
		},
		{
			name: "FDA recall detail",
			url:  "https://www.fda.gov/safety/recalls-market-withdrawals-safety-alerts/acme-foods-recalls-product",
			want: SiteFDA,
		},
		{
			name: "FSIS recalls listing",
			url:  "https://www.fsis.usda.gov/recalls",
			want: SiteFSIS,
		},
		{
			name: "FSIS recall detail",
			url:  "https://www.fsis.usda.gov/recalls-alerts/acme-foods-recalls-beef-products",
			want: SiteFSIS,
		},
		{
			name: "unrelated site",
			url:  "https://example.com/recalls",
			want: SiteUnknown,
		},
		{
			name: "unparseable url",
			url:  "://bad",
			want: SiteUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSite(tt.url))
		})
	}
}

func TestSiteContentSelectors(t *testing.T) {
	fda := SiteContentSelectors(SiteFDA)
	assert.Contains(t, fda, "#main-content")

	fsis := SiteContentSelectors(SiteFSIS)
	assert.Contains(t, fsis, ".usa-prose")

	// Unknown sites fall back to the generic selectors.
	assert.Equal(t, DefaultTextSelectors(), SiteContentSelectors(SiteUnknown))
}

func TestSiteNoiseSelectors(t *testing.T) {
	fda := SiteNoiseSelectors(SiteFDA)
	assert.Contains(t, fda, "#section-nav")
	assert.Contains(t, fda, ".usa-banner")

	fsis := SiteNoiseSelectors(SiteFSIS)
	assert.Contains(t, fsis, ".usa-nav")
	assert.Contains(t, fsis, ".usa-banner")
}
