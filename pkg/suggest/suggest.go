// Package suggest implements the client side of the autocomplete
// suggestion endpoint: one GET per query, JSON array response, the
// second element holding the ordered suggestion strings.
package suggest

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

const (
	USER_AGENT = "Mozilla/5.0 (X11; Linux x86_64; rv:82.0) Gecko/20100101 Firefox/82.0"

	// DefaultBaseURL is the Google Suggest endpoint.
	DefaultBaseURL = "https://suggestqueries.google.com"

	// DefaultClientID is sent as the "client" query parameter and picks
	// the plain JSON-array response format.
	DefaultClientID = "firefox"

	defaultTimeout = 5 * time.Second
)

// Client queries a suggestion provider. The zero value is not usable;
// construct with NewClient.
type Client struct {
	BaseURL  string
	ClientID string
	http     *retryablehttp.Client
}

// NewClient returns a Client pointed at the default provider. Failed
// fetches are never retried, so RetryMax stays at zero; the retryable
// client is still used for its shared transport/timeout handling.
func NewClient() *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = stdlog.New(io.Discard, "", 0)
	retryClient.RetryMax = 0
	retryClient.HTTPClient.Timeout = defaultTimeout

	return &Client{
		BaseURL:  DefaultBaseURL,
		ClientID: DefaultClientID,
		http:     retryClient,
	}
}

// SetProxy routes all requests through the given HTTP proxy.
func (c *Client) SetProxy(proxy string) error {
	proxyURL, err := url.Parse(proxy)
	if err != nil {
		return fmt.Errorf("invalid proxy URL: %v", err)
	}
	c.http.HTTPClient.Transport = &http.Transport{
		Proxy: http.ProxyURL(proxyURL),
	}
	return nil
}

// Fetch requests suggestions for query in the given language and region.
// It returns the provider's ordered suggestion list, which may be empty.
// Transport errors, non-2xx statuses and unexpected body shapes are
// returned as errors; callers treat all of them as zero suggestions.
func (c *Client) Fetch(ctx context.Context, query, lang, region string) ([]string, error) {
	params := url.Values{}
	params.Set("client", c.ClientID)
	params.Set("hl", lang)
	params.Set("gl", region)
	params.Set("q", query)

	reqURL := c.BaseURL + "/complete/search?" + params.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", USER_AGENT)
	req.Header.Set("Accept", "*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d for %q", resp.StatusCode, query)
	}

	return parseSuggestBody(string(body))
}

// parseSuggestBody extracts the suggestion strings from a response of
// the form ["query", ["s1", "s2", ...], ...]. A valid array without a
// second element yields an empty list.
func parseSuggestBody(body string) ([]string, error) {
	parsed := gjson.Parse(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("unexpected response shape: not a JSON array")
	}

	elements := parsed.Array()
	if len(elements) < 2 {
		return nil, nil
	}
	if !elements[1].IsArray() {
		return nil, fmt.Errorf("unexpected response shape: second element is not an array")
	}

	var suggestions []string
	for _, s := range elements[1].Array() {
		suggestions = append(suggestions, s.String())
	}
	return suggestions, nil
}
