package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// YahooProvider fetches intraday prices from Yahoo Finance's v8 chart API.
// No API key is required.
type YahooProvider struct {
	baseURL string
	client  *http.Client
}

// NewYahooProvider creates a provider with a bounded request timeout.
func NewYahooProvider() *YahooProvider {
	return &YahooProvider{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// NewYahooProviderWithBaseURL is used by tests to point at a stub server.
func NewYahooProviderWithBaseURL(baseURL string) *YahooProvider {
	p := NewYahooProvider()
	p.baseURL = strings.TrimRight(baseURL, "/")
	return p
}

// yfChartResponse wraps the v8 chart API response.
type yfChartResponse struct {
	Chart struct {
		Result []yfChartResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"chart"`
}

type yfChartResult struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Currency string `json:"currency"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []yfQuote `json:"quote"`
	} `json:"indicators"`
}

type yfQuote struct {
	Close []*float64 `json:"close"`
}

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// NormalizeTicker converts a bare NSE symbol to Yahoo Finance format by
// appending the .NS suffix. Symbols that already carry an exchange suffix
// (RELIANCE.NS, TATAMOTORS.BO) are left alone.
func NormalizeTicker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + ".NS"
}

// LatestPrice fetches the current day's one-minute bars and returns the
// close of the last bar that has one.
func (p *YahooProvider) LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	ticker := NormalizeTicker(symbol)
	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1m", p.baseURL, ticker)

	var resp yfChartResponse
	if err := p.fetchJSON(ctx, url, &resp); err != nil {
		return decimal.Zero, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}

	if resp.Chart.Error != nil {
		return decimal.Zero, fmt.Errorf("yahoo chart error for %s: %s", ticker, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return decimal.Zero, fmt.Errorf("no chart data for %s", ticker)
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return decimal.Zero, fmt.Errorf("no quote series for %s", ticker)
	}

	// The last few entries are often null while a bar is still forming;
	// walk backwards to the most recent completed close.
	closes := result.Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != nil {
			return decimal.NewFromFloat(*closes[i]), nil
		}
	}

	return decimal.Zero, fmt.Errorf("no closing price for %s today", ticker)
}

// fetchJSON performs a GET request and decodes the response into dest.
func (p *YahooProvider) fetchJSON(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; NiftyNavigator/1.0)")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Yahoo still returns a JSON error payload on 404; prefer its
		// description when we can decode it.
		var errResp yfChartResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Chart.Error != nil {
			return fmt.Errorf("%s", errResp.Chart.Error.Description)
		}
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	return nil
}
