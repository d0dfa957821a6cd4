package l1_service

import (
	"context"
	"database/sql"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/repository"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

type AssetUniverseService interface {
	// SeedFromCsv creates the universe if needed and adds every listed
	// asset to it. Rerunning with the same file changes nothing.
	SeedFromCsv(ctx context.Context, name, displayName string, r io.Reader) (int, error)
}

type assetUniverseServiceHandler struct {
	Db                      *sql.DB
	TickerRepository        repository.TickerRepository
	AssetUniverseRepository repository.AssetUniverseRepository
}

func NewAssetUniverseService(db *sql.DB, tickerRepository repository.TickerRepository, assetUniverseRepository repository.AssetUniverseRepository) AssetUniverseService {
	return assetUniverseServiceHandler{
		Db:                      db,
		TickerRepository:        tickerRepository,
		AssetUniverseRepository: assetUniverseRepository,
	}
}

type UniverseCsvRow struct {
	Symbol string `csv:"symbol"`
	Name   string `csv:"name"`
}

func ParseUniverseCsv(r io.Reader) ([]model.Ticker, error) {
	rows := []UniverseCsvRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse universe csv: %w", err)
	}

	seen := map[string]bool{}
	out := []model.Ticker{}
	for i, row := range rows {
		symbol := strings.ToUpper(strings.TrimSpace(row.Symbol))
		if symbol == "" {
			return nil, fmt.Errorf("row %d: missing symbol", i+1)
		}
		if seen[symbol] {
			continue
		}
		seen[symbol] = true
		name := strings.TrimSpace(row.Name)
		if name == "" {
			name = symbol
		}
		out = append(out, model.Ticker{Symbol: symbol, Name: name})
	}
	return out, nil
}

func (h assetUniverseServiceHandler) SeedFromCsv(ctx context.Context, name, displayName string, r io.Reader) (int, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" || name == repository.AllAssetsUniverse {
		return 0, fmt.Errorf("invalid universe name %q", name)
	}
	if displayName == "" {
		displayName = name
	}

	rows, err := ParseUniverseCsv(r)
	if err != nil {
		return 0, err
	}

	universe, err := h.AssetUniverseRepository.GetOrCreate(ctx, h.Db, name, displayName)
	if err != nil {
		return 0, err
	}

	tickers := make([]model.Ticker, 0, len(rows))
	for _, row := range rows {
		t, err := h.TickerRepository.GetOrCreate(ctx, h.Db, row)
		if err != nil {
			return 0, fmt.Errorf("failed to add ticker %s: %w", row.Symbol, err)
		}
		tickers = append(tickers, *t)
	}

	if err := h.AssetUniverseRepository.AddAssets(ctx, h.Db, *universe, tickers); err != nil {
		return 0, err
	}

	return len(tickers), nil
}
