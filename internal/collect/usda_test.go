package collect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vualidon/food-recall-agent/internal/types"
)

const fsisListingHTML = `<!DOCTYPE html>
<html><body>
<nav><a href="/about">About FSIS</a><a href="#main-content">Skip</a></nav>
<main>
  <ul>
    <li><a href="/recalls-alerts/acme-poultry-recalls-chicken-products">Acme Poultry Recalls Chicken Products</a></li>
    <li><a href="/recalls-alerts/nutty-spreads-recalls-peanut-butter#notice">Nutty Spreads Recalls Peanut Butter</a></li>
    <li><a href="/recalls-alerts/acme-poultry-recalls-chicken-products">Duplicate link</a></li>
    <li><a href="https://www.usda.gov/topics/food-safety">Food Safety</a></li>
  </ul>
</main>
</body></html>`

const fsisDetailHTML = `<!DOCTYPE html>
<html><body>
<nav class="usa-nav"><a href="/recalls">Back to recalls</a></nav>
<main>
  <article>
    <h1>Acme Poultry Recalls Frozen Chicken Products Due to Possible Listeria Contamination</h1>
    <p>Wed, 01/03/2024 - Current</p>
    <p>High - Class I</p>
    <p>Acme Poultry, a Salem, Ore. establishment, is recalling approximately
    12,000 pounds of frozen diced chicken products.</p>
    <p>The products were shipped to retail locations in CA, OR, and WA.</p>
  </article>
</main>
</body></html>`

func TestRecallLinks(t *testing.T) {
	links, err := RecallLinks(fsisListingHTML, "https://www.fsis.usda.gov/recalls")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://www.fsis.usda.gov/recalls-alerts/acme-poultry-recalls-chicken-products",
		"https://www.fsis.usda.gov/recalls-alerts/nutty-spreads-recalls-peanut-butter",
	}, links)
}

func TestRecallLinks_NoMatches(t *testing.T) {
	links, err := RecallLinks(`<html><body><a href="/news">News</a></body></html>`, "https://www.fsis.usda.gov/recalls")
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestRecallLinks_InvalidBaseURL(t *testing.T) {
	_, err := RecallLinks(fsisListingHTML, "://bad")
	require.Error(t, err)

	var collectErr *Error
	require.ErrorAs(t, err, &collectErr)
	assert.Equal(t, types.SourceUSDA, collectErr.Source)
}

func newFSISServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/recalls", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fsisListingHTML))
	})
	mux.HandleFunc("/recalls-alerts/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fsisDetailHTML))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestCollectUSDA_SavesRawRecords(t *testing.T) {
	server := newFSISServer(t)
	c := newTestCollector(t, nil)
	c.usdaURL = server.URL + "/recalls"

	paths, err := c.CollectUSDA(context.Background())
	require.NoError(t, err)
	require.Len(t, paths, 2)

	namePattern := regexp.MustCompile(`^usda_20240105120000_[0-9a-f-]{36}\.json$`)
	for _, path := range paths {
		assert.Regexp(t, namePattern, filepath.Base(path))
	}

	raw, err := c.store.ReadRaw(paths[0])
	require.NoError(t, err)
	require.NoError(t, raw.Validate())

	assert.Equal(t, types.SourceUSDA, raw.Source)
	assert.Contains(t, raw.URL, "/recalls-alerts/acme-poultry-recalls-chicken-products")
	assert.Contains(t, raw.Content, "Acme Poultry Recalls Frozen Chicken Products")
	assert.Contains(t, raw.Content, "High - Class I")
	// Navigation chrome must not leak into the announcement text.
	assert.NotContains(t, raw.Content, "Back to recalls")
}

func TestCollectUSDA_SkipsFailedDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/recalls", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
<a href="/recalls-alerts/good-recall">Good</a>
<a href="/recalls-alerts/missing-recall">Missing</a>
</body></html>`))
	})
	mux.HandleFunc("/recalls-alerts/good-recall", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fsisDetailHTML))
	})
	mux.HandleFunc("/recalls-alerts/missing-recall", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c := newTestCollector(t, nil)
	c.usdaURL = server.URL + "/recalls"

	paths, err := c.CollectUSDA(context.Background())
	require.NoError(t, err)
	require.Len(t, paths, 1)

	raw, err := c.store.ReadRaw(paths[0])
	require.NoError(t, err)
	assert.Contains(t, raw.URL, "/recalls-alerts/good-recall")
}

func TestCollectUSDA_ListingFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c := newTestCollector(t, nil)
	c.usdaURL = server.URL + "/recalls"

	_, err := c.CollectUSDA(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch recall listing")
}

func TestRun_ContinuesPastSourceFailure(t *testing.T) {
	fdaClient := newFDAServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": "BAD_REQUEST", "message": "bad query"}}`))
	})
	server := newFSISServer(t)

	c := newTestCollector(t, fdaClient)
	c.usdaURL = server.URL + "/recalls"

	paths, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, paths, 2) // USDA records collected despite the FDA failure
}

func TestRun_CollectsBothSources(t *testing.T) {
	fdaClient := newFDAServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(enforcementEnvelope))
	})
	server := newFSISServer(t)

	c := newTestCollector(t, fdaClient)
	c.usdaURL = server.URL + "/recalls"

	paths, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, paths, 4)

	rawPaths, err := c.store.ListRaw()
	require.NoError(t, err)
	assert.Len(t, rawPaths, 4)
}
