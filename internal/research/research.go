// Package research retrieves market context for recalled products using
// Google Custom Search. The context feeds the economic impact analysis.
package research

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/vualidon/food-recall-agent/internal/fetch"
)

// Placeholder context strings. Impact analysis always receives some market
// context text, even when search is unavailable or failing.
const (
	NoContextMessage  = "No market context available."
	ErrContextMessage = "Error retrieving market context."
)

// DefaultResultCount is how many search results are folded into the context.
const DefaultResultCount = 10

// Researcher looks up market size and trend information for food products.
type Researcher struct {
	svc    *customsearch.Service
	cx     string
	num    int64
	policy *fetch.RetryPolicy
}

// NewResearcher creates a Researcher backed by the Custom Search API.
// Extra client options are applied after the API key, so tests can point
// the service at a local endpoint.
func NewResearcher(ctx context.Context, apiKey, cx string, opts ...option.ClientOption) (*Researcher, error) {
	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := customsearch.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &Researcher{
		svc:    svc,
		cx:     cx,
		num:    DefaultResultCount,
		policy: fetch.DefaultRetryPolicy(),
	}, nil
}

// MarketContext searches for market information about a recalled product.
// It never fails the caller: with no usable results it returns
// NoContextMessage, and ErrContextMessage when the search itself fails.
func (r *Researcher) MarketContext(ctx context.Context, productName, brandName string) string {
	query := fmt.Sprintf("market size and trends for %s %s food industry", productName, brandName)

	var resp *customsearch.Search
	err := r.policy.Do(ctx, func() error {
		var searchErr error
		resp, searchErr = r.svc.Cse.List().Context(ctx).Cx(r.cx).Q(query).Num(r.num).Do()
		return searchErr
	})
	if err != nil {
		log.Printf("Warning: market context search failed: %v", err)
		return ErrContextMessage
	}

	var parts []string
	for _, item := range resp.Items {
		if item.Snippet != "" {
			parts = append(parts, item.Snippet)
		}
	}
	if len(parts) == 0 {
		return NoContextMessage
	}
	return strings.Join(parts, "\n")
}
