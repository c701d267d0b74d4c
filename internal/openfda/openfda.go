// Package openfda provides a client for the openFDA food enforcement API.
// The API exposes FDA recall enforcement reports as JSON, which is more
// reliable than scraping the recall listing pages.
package openfda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the openFDA food enforcement endpoint.
const DefaultBaseURL = "https://api.fda.gov/food/enforcement.json"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultLimit is the default number of enforcement records per request.
const DefaultLimit = 20

// MaxLimit is the largest page size the API allows.
const MaxLimit = 1000

// ReportDateLayout is the date format used by enforcement report fields.
const ReportDateLayout = "20060102"

// Client queries the openFDA food enforcement API.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewClient creates an enforcement API client. The API key may be empty;
// openFDA accepts unauthenticated requests at a lower rate limit.
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: DefaultTimeout},
	}
}

// Query describes a search against the enforcement endpoint.
type Query struct {
	Search string // openFDA search expression, e.g. report_date:[20240101 TO 20240107]
	Sort   string // sort expression, e.g. report_date:desc
	Limit  int
	Skip   int
}

// Response is the envelope returned by the enforcement endpoint.
type Response struct {
	Meta    Meta          `json:"meta"`
	Results []Enforcement `json:"results"`
}

// Meta holds response metadata.
type Meta struct {
	Disclaimer  string      `json:"disclaimer"`
	LastUpdated string      `json:"last_updated"`
	Results     MetaResults `json:"results"`
}

// MetaResults holds pagination info for the result set.
type MetaResults struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Enforcement is a single food enforcement report.
type Enforcement struct {
	RecallNumber            string `json:"recall_number"`
	ReportDate              string `json:"report_date"`
	RecallInitiationDate    string `json:"recall_initiation_date"`
	ProductDescription      string `json:"product_description"`
	ReasonForRecall         string `json:"reason_for_recall"`
	Classification          string `json:"classification"`
	RecallingFirm           string `json:"recalling_firm"`
	Status                  string `json:"status"`
	DistributionPattern     string `json:"distribution_pattern"`
	City                    string `json:"city"`
	State                   string `json:"state"`
	Country                 string `json:"country"`
	CodeInfo                string `json:"code_info"`
	ProductQuantity         string `json:"product_quantity"`
	VoluntaryMandated       string `json:"voluntary_mandated"`
	InitialFirmNotification string `json:"initial_firm_notification"`
	EventID                 string `json:"event_id"`
}

// ReportTime parses the report date of the enforcement record.
func (e *Enforcement) ReportTime() (time.Time, error) {
	return time.Parse(ReportDateLayout, e.ReportDate)
}

// Error represents an error from the openFDA API.
type Error struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("openfda error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("openfda error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// apiError is the error envelope openFDA returns on non-200 responses.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search executes a query against the enforcement endpoint.
func (c *Client) Search(ctx context.Context, q Query) (*Response, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, &Error{URL: c.BaseURL, Message: "invalid base URL", Cause: err}
	}

	params := u.Query()
	if c.APIKey != "" {
		params.Set("api_key", c.APIKey)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	params.Set("limit", strconv.Itoa(limit))
	if q.Skip > 0 {
		params.Set("skip", strconv.Itoa(q.Skip))
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &Error{URL: redactKey(u), Message: "failed to create request", Cause: err}
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: redactKey(u), Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: redactKey(u), Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		var ae apiError
		if jsonErr := json.Unmarshal(body, &ae); jsonErr == nil && ae.Error.Code == "NOT_FOUND" {
			// openFDA reports an empty result set as a 404.
			return &Response{}, nil
		}
		fetchErr := &Error{
			URL:        redactKey(u),
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
		if ae.Error.Message != "" {
			fetchErr.Cause = fmt.Errorf("%s: %s", ae.Error.Code, ae.Error.Message)
		}
		return nil, fetchErr
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &Error{URL: redactKey(u), Message: "failed to parse response", Cause: err}
	}

	return &out, nil
}

// Recent returns enforcement reports whose report date falls within the
// window, newest first.
func (c *Client) Recent(ctx context.Context, start, end time.Time, limit int) ([]Enforcement, error) {
	q := Query{
		Search: fmt.Sprintf("report_date:[%s TO %s]", start.Format(ReportDateLayout), end.Format(ReportDateLayout)),
		Sort:   "report_date:desc",
		Limit:  limit,
	}

	resp, err := c.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// redactKey removes the api_key parameter from a URL for error messages.
func redactKey(u *url.URL) string {
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
