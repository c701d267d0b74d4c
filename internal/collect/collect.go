// Package collect gathers food recall announcements from government sources
// into the raw store: FDA enforcement reports via the openFDA API, USDA
// announcements by scraping the FSIS recalls site.
package collect

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vualidon/food-recall-agent/internal/fetch"
	"github.com/vualidon/food-recall-agent/internal/openfda"
	"github.com/vualidon/food-recall-agent/internal/store"
	"github.com/vualidon/food-recall-agent/internal/types"
)

const (
	// FSISRecallsURL is the USDA FSIS recall listing page.
	FSISRecallsURL = "https://www.fsis.usda.gov/recalls"

	// DefaultDays is the default lookback window.
	DefaultDays = 7

	// DefaultFDALimit caps how many enforcement reports are pulled per run.
	DefaultFDALimit = 100

	// DefaultRateLimitDelay is the delay between detail page fetches.
	DefaultRateLimitDelay = 1 * time.Second

	// BrowserTimeout bounds a headless browser render of the FSIS site.
	BrowserTimeout = 60 * time.Second
)

// Error represents a failure collecting from one source.
type Error struct {
	Source  types.Source
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("collect error (%s): %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("collect error (%s): %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures a collection run.
type Options struct {
	Days       int  // lookback window in days
	Limit      int  // max enforcement reports per run (0 = DefaultFDALimit)
	UseBrowser bool // render the FSIS listing in headless Chrome when needed
	Verbose    bool
	// Now is replaceable in tests. Defaults to time.Now.
	Now func() time.Time
}

// Collector fetches recalls from the FDA and USDA sources and writes raw
// records.
type Collector struct {
	store   *store.Store
	fda     *openfda.Client
	policy  *fetch.RetryPolicy
	usdaURL string
	delay   time.Duration
	opts    Options
}

// New creates a collector writing into st.
func New(st *store.Store, fdaClient *openfda.Client, opts Options) *Collector {
	if opts.Days <= 0 {
		opts.Days = DefaultDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Collector{
		store:   st,
		fda:     fdaClient,
		policy:  fetch.DefaultRetryPolicy(),
		usdaURL: FSISRecallsURL,
		delay:   DefaultRateLimitDelay,
		opts:    opts,
	}
}

// Run collects from all sources and returns the saved raw file paths.
// A source-level failure is logged and the other source still runs;
// per-record failures are logged and skipped.
func (c *Collector) Run(ctx context.Context) ([]string, error) {
	log.Printf("Starting data collection")

	var paths []string

	fdaPaths, err := c.CollectFDA(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return paths, ctx.Err()
		}
		log.Printf("Warning: FDA collection failed: %v", err)
	}
	paths = append(paths, fdaPaths...)

	usdaPaths, err := c.CollectUSDA(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return paths, ctx.Err()
		}
		log.Printf("Warning: USDA collection failed: %v", err)
	}
	paths = append(paths, usdaPaths...)

	log.Printf("Data collection complete. Collected %d recall announcements", len(paths))
	return paths, nil
}

func (c *Collector) fdaLimit() int {
	if c.opts.Limit > 0 {
		return c.opts.Limit
	}
	return DefaultFDALimit
}

func (c *Collector) verbosef(format string, args ...any) {
	if c.opts.Verbose {
		log.Printf("[VERBOSE] "+format, args...)
	}
}
