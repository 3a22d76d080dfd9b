// Package indeed fetches per-category job-posting counts from a public
// job-search site. A fetch never returns an error to callers: transport
// failures, bad statuses, and extraction misses all degrade to an unknown
// count, since failures are data for the aggregator, not program errors.
package indeed

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fedwatch/fedwatch/internal/logger"
	"github.com/fedwatch/fedwatch/internal/metrics"
	"github.com/fedwatch/fedwatch/internal/models"
)

// DefaultTimeout bounds every search request.
const DefaultTimeout = 10 * time.Second

// Client issues search queries against the job-search site.
// The underlying HTTP client is built once and reused across fetches so
// connections are pooled.
type Client struct {
	searchURL   string
	userAgent   string
	recencyDays int
	httpClient  *http.Client
}

// NewClient creates a search client. recencyDays restricts counted postings
// to ones observed within that many days, approximating the flow of new
// postings rather than the stock of all listings.
func NewClient(searchURL, userAgent string, recencyDays int, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if recencyDays < 1 {
		recencyDays = 3
	}
	return &Client{
		searchURL:   searchURL,
		userAgent:   userAgent,
		recencyDays: recencyDays,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchCategoryCount retrieves the posting count for one category within the
// given location scope. The query is the logical OR of the category's
// keyword phrases. On any failure the returned result carries an unknown
// count and the cause is logged; the result is created once and never
// mutated afterwards.
//
// Callers iterating categories must leave a courtesy delay between calls to
// avoid overwhelming the upstream source; that pacing is the aggregator's
// contract, not the client's.
func (c *Client) FetchCategoryCount(ctx context.Context, category models.Category, location string) models.RawCountResult {
	keywords := category.Query()
	result := models.RawCountResult{
		Category:  category.Name,
		Keywords:  keywords,
		Location:  location,
		Count:     models.UnknownCount(),
		Timestamp: time.Now().UTC(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL, nil)
	if err != nil {
		logger.Warn("indeed: building request for category %s failed: %v", category.Name, err)
		metrics.RecordCategoryFetch(category.Name, metrics.OutcomeTransportError)
		return result
	}

	q := url.Values{}
	q.Set("q", keywords)
	q.Set("l", location)
	q.Set("fromage", strconv.Itoa(c.recencyDays))
	req.URL.RawQuery = q.Encode()
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("indeed: fetch for category %s failed: %v", category.Name, err)
		metrics.RecordCategoryFetch(category.Name, metrics.OutcomeTransportError)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("indeed: fetch for category %s returned status %d", category.Name, resp.StatusCode)
		metrics.RecordCategoryFetch(category.Name, metrics.OutcomeBadStatus)
		return result
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("indeed: reading response for category %s failed: %v", category.Name, err)
		metrics.RecordCategoryFetch(category.Name, metrics.OutcomeTransportError)
		return result
	}

	count := ExtractCount(string(body))
	if !count.Known {
		logger.Warn("indeed: no result count found in markup for category %s", category.Name)
		metrics.RecordCategoryFetch(category.Name, metrics.OutcomeNoCount)
		return result
	}

	metrics.RecordCategoryFetch(category.Name, metrics.OutcomeOK)
	result.Count = count
	return result
}
