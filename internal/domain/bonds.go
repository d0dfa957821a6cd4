package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// InterestRateMap contains a mapping of interest rates at
// varying durations (months) from a given day
type InterestRateMap struct {
	Rates map[int]float64
}

// SortedIntKeys returns the durations of a rate curve in ascending order.
func SortedIntKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// GetRate returns the rate for a duration, linearly interpolating between
// the nearest known durations and clamping outside them.
func (im InterestRateMap) GetRate(months int) (float64, error) {
	if v, ok := im.Rates[months]; ok {
		return v, nil
	}

	keys := SortedIntKeys(im.Rates)
	if len(keys) == 0 {
		return 0, fmt.Errorf("no rates in given map")
	}
	if months < keys[0] {
		return im.Rates[keys[0]], nil
	}
	if months > keys[len(keys)-1] {
		return im.Rates[keys[len(keys)-1]], nil
	}

	for i := 0; i < len(keys)-1; i++ {
		lo, hi := keys[i], keys[i+1]
		if months > lo && months < hi {
			frac := float64(months-lo) / float64(hi-lo)
			return im.Rates[lo] + frac*(im.Rates[hi]-im.Rates[lo]), nil
		}
	}

	return 0, fmt.Errorf("unable to compute rate for %d months", months)
}

type Bond struct {
	ID              int
	Par             float64
	CouponRate      float64
	DateIssued      time.Time
	MaturityMonths  int
	CouponsReceived int
}

func (b Bond) Expiration() time.Time {
	return b.DateIssued.AddDate(0, b.MaturityMonths, 0)
}

// MonthsRemaining counts whole months left before maturity as of t.
func (b Bond) MonthsRemaining(t time.Time) int {
	elapsed := (t.Year()-b.DateIssued.Year())*12 + int(t.Month()-b.DateIssued.Month())
	if t.Day() < b.DateIssued.Day() {
		elapsed--
	}
	remaining := b.MaturityMonths - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// MarketValue approximates the bond's price when prevailing rates for its
// remaining duration are marketRate.
func (b Bond) MarketValue(t time.Time, marketRate float64) float64 {
	remainingYears := float64(b.MonthsRemaining(t)) / 12
	return b.Par * (1 + (b.CouponRate-marketRate)*remainingYears)
}

type BondPortfolioSnapshot struct {
	Date               time.Time `json:"date"`
	Value              float64   `json:"value"`
	ValuePercentChange float64   `json:"valuePercentChange"`
	Cash               float64   `json:"cash"`
	NumBonds           int       `json:"numBonds"`
}

func (s BondPortfolioSnapshot) MarshalJSON() ([]byte, error) {
	type alias BondPortfolioSnapshot
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias(s), formatWireDate(s.Date)})
}

func (s *BondPortfolioSnapshot) UnmarshalJSON(b []byte) error {
	type alias BondPortfolioSnapshot
	aux := struct {
		*alias
		Date string `json:"date"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	date, err := parseWireDate(aux.Date)
	if err != nil {
		return err
	}
	s.Date = date
	return nil
}

type BondPortfolioResult struct {
	Snapshots      []BondPortfolioSnapshot    `json:"snapshots"`
	CouponPayments map[string]float64         `json:"couponPayments"`
	InterestRates  map[string]map[int]float64 `json:"interestRates"`
}
