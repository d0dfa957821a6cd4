package l1_service

import (
	"context"
	"database/sql"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/domain"
	"factorlab/internal/logger"
	"factorlab/internal/repository"
	"factorlab/pkg/datajockey"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"
)

const GranularityQuarterly = "QUARTERLY"

// a filing older than this no longer describes the company
const maxFundamentalsAgeMonths = 6

type FundamentalsService interface {
	LoadFundamentalsCache(ctx context.Context, symbols []string, end time.Time) (*FundamentalsCache, error)
	IngestFundamentals(ctx context.Context, symbols []string) (map[string]error, error)
}

// DataJockeyClient is the part of the datajockey client the service uses.
type DataJockeyClient interface {
	GetAssetMetrics(ctx context.Context, symbol string) (*datajockey.FinancialResponse, error)
}

type fundamentalsServiceHandler struct {
	Db                          *sql.DB
	AssetFundamentalsRepository repository.AssetFundamentalsRepository
	DataJockeyClient            DataJockeyClient
}

func NewFundamentalsService(db *sql.DB, afRepository repository.AssetFundamentalsRepository, djClient DataJockeyClient) FundamentalsService {
	return fundamentalsServiceHandler{
		Db:                          db,
		AssetFundamentalsRepository: afRepository,
		DataJockeyClient:            djClient,
	}
}

type FundamentalsCache struct {
	// ascending by period start, per symbol
	filings map[string][]domain.AssetFundamental
}

func NewFundamentalsCache(in []domain.AssetFundamental) *FundamentalsCache {
	filings := map[string][]domain.AssetFundamental{}
	for _, f := range in {
		filings[f.Symbol] = append(filings[f.Symbol], f)
	}
	for symbol := range filings {
		f := filings[symbol]
		sort.SliceStable(f, func(i, j int) bool {
			return f[i].Date.Before(f[j].Date)
		})
	}
	return &FundamentalsCache{filings: filings}
}

// Get returns the reporting period covering date: the latest one starting
// on or before it, provided it is recent enough to still apply.
func (fc *FundamentalsCache) Get(symbol string, date time.Time) (*domain.AssetFundamental, error) {
	date = domain.Day(date)
	f := fc.filings[symbol]
	i := sort.Search(len(f), func(i int) bool {
		return f[i].Date.After(date)
	}) - 1
	if i < 0 {
		return nil, missing("no fundamentals for %s on or before %s", symbol, date.Format(domain.DateLayout))
	}
	if f[i].Date.AddDate(0, maxFundamentalsAgeMonths, 0).Before(date) {
		return nil, missing("latest fundamentals for %s are from %s, too old for %s", symbol, f[i].Date.Format(domain.DateLayout), date.Format(domain.DateLayout))
	}

	return &f[i], nil
}

func (h fundamentalsServiceHandler) LoadFundamentalsCache(ctx context.Context, symbols []string, end time.Time) (*FundamentalsCache, error) {
	if len(symbols) == 0 {
		return NewFundamentalsCache(nil), nil
	}
	filings, err := h.AssetFundamentalsRepository.List(ctx, h.Db, symbols, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load fundamentals cache: %w", err)
	}

	return NewFundamentalsCache(filings), nil
}

// IngestFundamentals pulls quarterly filings per symbol and commits each
// symbol on its own, so one bad ticker does not block the rest.
func (h fundamentalsServiceHandler) IngestFundamentals(ctx context.Context, symbols []string) (map[string]error, error) {
	log := logger.FromContext(ctx)
	failed := map[string]error{}

	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		response, err := h.DataJockeyClient.GetAssetMetrics(ctx, symbol)
		if err != nil {
			failed[symbol] = fmt.Errorf("failed to get asset metrics: %w", err)
			continue
		}
		models, err := fundamentalsFromFields(symbol, response.FinancialData.Quarterly)
		if err != nil {
			failed[symbol] = err
			continue
		}
		if len(models) == 0 {
			log.Warnf("no quarterly fundamentals for %s", symbol)
			continue
		}
		if err := h.AssetFundamentalsRepository.Add(ctx, h.Db, models); err != nil {
			failed[symbol] = err
			continue
		}
		log.Infof("ingested %d quarters for %s", len(models), symbol)
	}

	return failed, nil
}

var quarterPattern = regexp.MustCompile(`^(\d{4})Q([1-4])$`)

// quarterStart turns a period key like "2021Q3" into the first day of that
// quarter.
func quarterStart(period string) (time.Time, error) {
	matches := quarterPattern.FindStringSubmatch(period)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("unrecognized period %q", period)
	}
	year, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, err
	}
	quarter, err := strconv.Atoi(matches[2])
	if err != nil {
		return time.Time{}, err
	}

	return domain.NewDate(year, time.Month(3*(quarter-1)+1), 1), nil
}

func fundamentalsFromFields(symbol string, in datajockey.Fields) ([]model.AssetFundamental, error) {
	byPeriod := map[string]*model.AssetFundamental{}
	get := func(period string) *model.AssetFundamental {
		if _, ok := byPeriod[period]; !ok {
			byPeriod[period] = &model.AssetFundamental{}
		}
		return byPeriod[period]
	}

	for k, v := range in.TotalAssets {
		x := float64(v)
		get(k).TotalAssets = &x
	}
	for k, v := range in.TotalLiabilities {
		x := float64(v)
		get(k).TotalLiabilities = &x
	}
	for k, v := range in.SharesOutstandingBasic {
		x := float64(v)
		get(k).SharesOutstandingBasic = &x
	}
	for k, v := range in.EpsBasic {
		x := v
		get(k).EpsBasic = &x
	}

	periods := make([]string, 0, len(byPeriod))
	for k := range byPeriod {
		periods = append(periods, k)
	}
	sort.Strings(periods)

	out := make([]model.AssetFundamental, 0, len(periods))
	for _, period := range periods {
		start, err := quarterStart(period)
		if err != nil {
			return nil, fmt.Errorf("failed to map fundamentals for %s: %w", symbol, err)
		}
		v := byPeriod[period]
		out = append(out, model.AssetFundamental{
			Symbol:                 symbol,
			Granularity:            GranularityQuarterly,
			Date:                   start,
			TotalAssets:            v.TotalAssets,
			TotalLiabilities:       v.TotalLiabilities,
			SharesOutstandingBasic: v.SharesOutstandingBasic,
			EpsBasic:               v.EpsBasic,
		})
	}

	return out, nil
}
