package l1_service

import (
	"context"
	"database/sql"
	"factorlab/internal/domain"
	"factorlab/internal/logger"
	"factorlab/internal/repository"
	"fmt"
	"sort"
	"time"
)

// a stored curve this close to the requested day is good enough
const maxCurveLookbackDays = 7

type BondService interface {
	BacktestBondPortfolio(ctx context.Context, in BacktestBondPortfolioInput) (*domain.BondPortfolioResult, error)
}

type YieldCurveClient interface {
	GetInterestRatesOnDay(ctx context.Context, date time.Time) (domain.InterestRateMap, error)
}

type BacktestBondPortfolioInput struct {
	DurationMonths []int
	StartCash      float64
	Start          time.Time
	End            time.Time
}

func (in BacktestBondPortfolioInput) validate() error {
	if len(in.DurationMonths) == 0 {
		return domain.NewValidationError("at least one bond duration is required")
	}
	for _, d := range in.DurationMonths {
		if d <= 0 {
			return domain.NewValidationError(fmt.Sprintf("bond duration must be positive, got %d", d))
		}
	}
	if in.StartCash <= 0 {
		return domain.NewValidationError("starting cash must be positive")
	}
	if in.End.Before(in.Start) {
		return domain.NewValidationError("end date must not be before start date")
	}
	return nil
}

type bondServiceHandler struct {
	Db                     *sql.DB
	InterestRateRepository repository.InterestRateRepository
	YieldCurveClient       YieldCurveClient
}

func NewBondService(db *sql.DB, irRepository repository.InterestRateRepository, client YieldCurveClient) BondService {
	return bondServiceHandler{
		Db:                     db,
		InterestRateRepository: irRepository,
		YieldCurveClient:       client,
	}
}

// yieldCurves serves curves for a backtest, preferring stored ones and
// filling gaps from the API.
type yieldCurves struct {
	h      bondServiceHandler
	dates  []time.Time
	curves map[string]domain.InterestRateMap
}

func (h bondServiceHandler) loadYieldCurves(ctx context.Context, start, end time.Time) (*yieldCurves, error) {
	stored, err := h.InterestRateRepository.List(ctx, h.Db, start.AddDate(0, 0, -maxCurveLookbackDays), end)
	if err != nil {
		return nil, err
	}
	yc := &yieldCurves{h: h, curves: stored}
	for k := range stored {
		d, err := domain.ParseDate(k)
		if err != nil {
			return nil, err
		}
		yc.dates = append(yc.dates, d)
	}
	sort.Slice(yc.dates, func(i, j int) bool {
		return yc.dates[i].Before(yc.dates[j])
	})
	return yc, nil
}

func (yc *yieldCurves) add(date time.Time, curve domain.InterestRateMap) {
	yc.curves[date.Format(domain.DateLayout)] = curve
	i := sort.Search(len(yc.dates), func(i int) bool {
		return !yc.dates[i].Before(date)
	})
	yc.dates = append(yc.dates, time.Time{})
	copy(yc.dates[i+1:], yc.dates[i:])
	yc.dates[i] = date
}

func (yc *yieldCurves) get(ctx context.Context, date time.Time) (domain.InterestRateMap, error) {
	date = domain.Day(date)
	i := sort.Search(len(yc.dates), func(i int) bool {
		return yc.dates[i].After(date)
	}) - 1
	if i >= 0 && !yc.dates[i].Before(date.AddDate(0, 0, -maxCurveLookbackDays)) {
		return yc.curves[yc.dates[i].Format(domain.DateLayout)], nil
	}

	if yc.h.YieldCurveClient == nil {
		return domain.InterestRateMap{}, missing("no yield curve stored near %s", date.Format(domain.DateLayout))
	}
	curve, err := yc.h.YieldCurveClient.GetInterestRatesOnDay(ctx, date)
	if err != nil {
		return domain.InterestRateMap{}, fmt.Errorf("failed to fetch yield curve for %s: %w", date.Format(domain.DateLayout), err)
	}
	if err := yc.h.InterestRateRepository.Add(ctx, yc.h.Db, date, curve); err != nil {
		logger.FromContext(ctx).Warnf("failed to persist yield curve for %s: %v", date.Format(domain.DateLayout), err)
	}
	yc.add(date, curve)

	return curve, nil
}

type bondLadder struct {
	bonds      []domain.Bond
	cash       float64
	maxMonths  int
	nextBondID int
}

func (l *bondLadder) buy(date time.Time, par float64, months int, curve domain.InterestRateMap) error {
	rate, err := curve.GetRate(months)
	if err != nil {
		return err
	}
	l.bonds = append(l.bonds, domain.Bond{
		ID:             l.nextBondID,
		Par:            par,
		CouponRate:     rate,
		DateIssued:     date,
		MaturityMonths: months,
	})
	l.nextBondID++
	l.cash -= par
	return nil
}

func (l *bondLadder) value(date time.Time, curve domain.InterestRateMap) (float64, error) {
	total := l.cash
	for _, b := range l.bonds {
		remaining := b.MonthsRemaining(date)
		if remaining == 0 {
			total += b.Par
			continue
		}
		rate, err := curve.GetRate(remaining)
		if err != nil {
			return 0, err
		}
		total += b.MarketValue(date, rate)
	}
	return total, nil
}

// BacktestBondPortfolio simulates an equal-weight treasury ladder, stepping
// monthly. Coupons accrue to cash and matured bonds are rolled into the
// longest duration at the rate of the day.
func (h bondServiceHandler) BacktestBondPortfolio(ctx context.Context, in BacktestBondPortfolioInput) (*domain.BondPortfolioResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	start, end := domain.Day(in.Start), domain.Day(in.End)

	curves, err := h.loadYieldCurves(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load yield curves: %w", err)
	}

	durations := append([]int{}, in.DurationMonths...)
	sort.Ints(durations)
	ladder := &bondLadder{
		cash:      in.StartCash,
		maxMonths: durations[len(durations)-1],
	}

	result := &domain.BondPortfolioResult{
		Snapshots:      []domain.BondPortfolioSnapshot{},
		CouponPayments: map[string]float64{},
		InterestRates:  map[string]map[int]float64{},
	}

	startCurve, err := curves.get(ctx, start)
	if err != nil {
		return nil, err
	}
	par := in.StartCash / float64(len(durations))
	for _, d := range durations {
		if err := ladder.buy(start, par, d, startCurve); err != nil {
			return nil, err
		}
	}

	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		date := start.AddDate(0, i, 0)
		if date.After(end) {
			break
		}
		dateStr := date.Format(domain.DateLayout)

		curve, err := curves.get(ctx, date)
		if err != nil {
			return nil, err
		}
		result.InterestRates[dateStr] = curve.Rates

		if i > 0 {
			coupons := 0.0
			for j := range ladder.bonds {
				coupon := ladder.bonds[j].Par * ladder.bonds[j].CouponRate / 12
				ladder.bonds[j].CouponsReceived++
				coupons += coupon
			}
			ladder.cash += coupons
			result.CouponPayments[dateStr] = coupons

			kept := []domain.Bond{}
			matured := []domain.Bond{}
			for _, b := range ladder.bonds {
				if b.MonthsRemaining(date) == 0 {
					matured = append(matured, b)
				} else {
					kept = append(kept, b)
				}
			}
			ladder.bonds = kept
			for _, b := range matured {
				ladder.cash += b.Par
				if err := ladder.buy(date, b.Par, ladder.maxMonths, curve); err != nil {
					return nil, err
				}
			}
		}

		value, err := ladder.value(date, curve)
		if err != nil {
			return nil, err
		}
		result.Snapshots = append(result.Snapshots, domain.BondPortfolioSnapshot{
			Date:               date,
			Value:              value,
			ValuePercentChange: 100 * (value - in.StartCash) / in.StartCash,
			Cash:               ladder.cash,
			NumBonds:           len(ladder.bonds),
		})
	}

	return result, nil
}
