package treasury_client

import (
	"context"
	"encoding/json"
	"factorlab/internal/domain"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const defaultBaseUrl = "https://www.ustreasuryyieldcurve.com/api/v1"

// how many months back to walk when a day has no published curve
const maxLookbackMonths = 12

var yieldKeys = []string{
	"yield_1m",
	"yield_2m",
	"yield_3m",
	"yield_4m",
	"yield_6m",
	"yield_1y",
	"yield_2y",
	"yield_3y",
	"yield_5y",
	"yield_7y",
	"yield_10y",
	"yield_20y",
	"yield_30y",
}

func interestRateMonthsFromApi(in string) (int, error) {
	cleanedStr := strings.Replace(in, "yield_", "", 1)
	if len(cleanedStr) < 2 {
		return 0, fmt.Errorf("unrecognized yield key %q", in)
	}
	unit := string(cleanedStr[len(cleanedStr)-1])
	cleanedStr = cleanedStr[:len(cleanedStr)-1]
	months, err := strconv.Atoi(cleanedStr)
	if err != nil {
		return 0, err
	}

	if unit == "y" {
		months *= 12
	}

	return months, nil
}

type Client struct {
	HttpClient *http.Client
	BaseUrl    string

	mu sync.Mutex
	// lazy, in-memory cache for API responses
	cache map[string][]byte
}

func NewClient() *Client {
	return &Client{
		HttpClient: &http.Client{Timeout: 10 * time.Second},
		BaseUrl:    defaultBaseUrl,
		cache:      map[string][]byte{},
	}
}

func (c *Client) getBytes(ctx context.Context, date time.Time) ([]byte, error) {
	tStr := date.Format(time.DateOnly)

	c.mu.Lock()
	if out, ok := c.cache[tStr]; ok {
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	q := url.Values{}
	q.Set("date", tStr)
	q.Set("offset", "0")
	endpoint := c.BaseUrl + "/yield_curve_snapshot?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed with status code %d: %s", response.StatusCode, string(responseBytes))
	}

	c.mu.Lock()
	c.cache[tStr] = responseBytes
	c.mu.Unlock()

	return responseBytes, nil
}

// GetInterestRatesOnDay returns the treasury curve published for date as
// fractions (4.5% -> 0.045). When nothing was published that day it walks
// back a month at a time.
func (c *Client) GetInterestRatesOnDay(ctx context.Context, date time.Time) (domain.InterestRateMap, error) {
	for i := 0; i <= maxLookbackMonths; i++ {
		day := date.AddDate(0, -i, 0)
		responseBytes, err := c.getBytes(ctx, day)
		if err != nil {
			return domain.InterestRateMap{}, err
		}
		rates, err := parseYieldCurve(responseBytes)
		if err != nil {
			return domain.InterestRateMap{}, err
		}
		if len(rates) > 0 {
			return domain.InterestRateMap{Rates: rates}, nil
		}
	}

	return domain.InterestRateMap{}, fmt.Errorf("no yield curve published within %d months of %s", maxLookbackMonths, date.Format(time.DateOnly))
}

func parseYieldCurve(responseBytes []byte) (map[int]float64, error) {
	responseBody := []map[string]interface{}{}
	if err := json.Unmarshal(responseBytes, &responseBody); err != nil {
		return nil, err
	}

	out := map[int]float64{}
	for _, response := range responseBody {
		for _, field := range yieldKeys {
			v, ok := response[field].(float64)
			if !ok {
				continue
			}
			months, err := interestRateMonthsFromApi(field)
			if err != nil {
				return nil, err
			}
			out[months] = v / 100
		}
	}

	return out, nil
}
