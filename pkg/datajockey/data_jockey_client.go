package datajockey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

var ErrRateLimited = errors.New("datajockey rate limit hit")

const defaultBaseUrl = "https://api.datajockey.io/v0"

type Client struct {
	HttpClient *http.Client
	ApiKey     string
	BaseUrl    string
}

func NewClient(apiKey string) Client {
	return Client{
		HttpClient: http.DefaultClient,
		ApiKey:     apiKey,
		BaseUrl:    defaultBaseUrl,
	}
}

// Fields maps each reported metric to its values keyed by period, e.g.
// "2021Q3".
type Fields struct {
	TotalAssets            map[string]int64   `json:"total_assets"`
	TotalLiabilities       map[string]int64   `json:"total_liabilities"`
	SharesOutstandingBasic map[string]int64   `json:"shares_outstanding_basic"`
	EpsBasic               map[string]float64 `json:"eps_basic"`
}

type FinancialResponse struct {
	Currency    string `json:"currency"`
	CompanyInfo struct {
		CIK    string `json:"cik"`
		Ticker string `json:"ticker"`
		Name   string `json:"name"`
	} `json:"company_info"`
	FinancialData struct {
		Quarterly Fields `json:"quarterly"`
		Annual    Fields `json:"annual"`
	} `json:"financial_data"`
}

func (c Client) GetAssetMetrics(ctx context.Context, symbol string) (*FinancialResponse, error) {
	q := url.Values{}
	q.Set("apikey", c.ApiKey)
	q.Set("ticker", symbol)
	q.Set("period", "Q")
	endpoint := c.BaseUrl + "/company/financials?" + q.Encode()

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

	if response.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	} else if response.StatusCode != http.StatusOK {
		type errResponse struct {
			Error string `json:"error"`
		}
		errJson := errResponse{}
		err = json.Unmarshal(responseBytes, &errJson)
		if err != nil {
			return nil, fmt.Errorf("received status code %d and failed to read error: %w", response.StatusCode, err)
		}
		return nil, fmt.Errorf("failed with status code %d: %s", response.StatusCode, errJson.Error)
	}

	var responseJson FinancialResponse
	err = json.Unmarshal(responseBytes, &responseJson)
	if err != nil {
		return nil, err
	}

	return &responseJson, nil
}
