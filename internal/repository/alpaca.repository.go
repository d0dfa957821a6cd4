package repository

import (
	"context"
	"factorlab/internal/domain"
	"factorlab/internal/logger"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

// AlpacaRepository reads live market data. Orders are never placed; the
// investment ledger is simulated.
type AlpacaRepository interface {
	GetLatestPrices(ctx context.Context, symbols []string) (map[string]domain.AssetPrice, error)
	IsMarketOpen() (bool, error)
}

func NewAlpacaRepository(apiKey, apiSecret string, endpoint string) AlpacaRepository {
	client := alpaca.NewClient(alpaca.ClientOpts{
		APIKey:     apiKey,
		APISecret:  apiSecret,
		BaseURL:    endpoint,
		RetryLimit: 3,
	})

	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return &alpacaRepositoryHandler{
		Client:   client,
		MdClient: mdClient,
	}
}

type alpacaRepositoryHandler struct {
	Client   *alpaca.Client
	MdClient *marketdata.Client
}

func (h alpacaRepositoryHandler) GetLatestPrices(ctx context.Context, symbols []string) (map[string]domain.AssetPrice, error) {
	log := logger.FromContext(ctx)
	if len(symbols) == 0 {
		return map[string]domain.AssetPrice{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results, err := h.MdClient.GetLatestQuotes(symbols, marketdata.GetLatestQuoteRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to get latest quotes: %w", err)
	}

	out := map[string]domain.AssetPrice{}
	for symbol, result := range results {
		price := decimal.NewFromFloat(result.BidPrice)
		if price.IsZero() {
			return nil, fmt.Errorf("failed to get price for %s: got 0 price", symbol)
		}
		out[symbol] = domain.AssetPrice{
			Symbol: symbol,
			Price:  price.InexactFloat64(),
			Date:   result.Timestamp.UTC(),
		}
	}
	if len(out) < len(symbols) {
		log.Warnf("alpaca returned %d of %d requested quotes", len(out), len(symbols))
	}

	return out, nil
}

func (h alpacaRepositoryHandler) IsMarketOpen() (bool, error) {
	clock, err := h.Client.GetClock()
	if err != nil {
		return false, fmt.Errorf("failed to get market clock: %w", err)
	}

	return clock.IsOpen && clock.Timestamp.Before(clock.NextClose.Add(-5*time.Minute)), nil
}
