package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// NewDate returns midnight UTC on the given calendar day.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return t, nil
}

type RebalanceInterval string

const (
	RebalanceInterval_Daily   RebalanceInterval = "daily"
	RebalanceInterval_Weekly  RebalanceInterval = "weekly"
	RebalanceInterval_Monthly RebalanceInterval = "monthly"
	RebalanceInterval_Yearly  RebalanceInterval = "yearly"
)

func ParseRebalanceInterval(s string) (RebalanceInterval, error) {
	switch r := RebalanceInterval(strings.ToLower(strings.TrimSpace(s))); r {
	case RebalanceInterval_Daily, RebalanceInterval_Weekly, RebalanceInterval_Monthly, RebalanceInterval_Yearly:
		return r, nil
	}
	return "", NewValidationError(fmt.Sprintf("unknown rebalance interval %q", s))
}

// Offset returns the i-th step after start. Each step is computed from
// start rather than from the previous step so month ends do not drift.
func (r RebalanceInterval) Offset(start time.Time, i int) time.Time {
	switch r {
	case RebalanceInterval_Weekly:
		return start.AddDate(0, 0, 7*i)
	case RebalanceInterval_Monthly:
		return start.AddDate(0, i, 0)
	case RebalanceInterval_Yearly:
		return start.AddDate(i, 0, 0)
	default:
		return start.AddDate(0, 0, i)
	}
}

// RebalanceDates enumerates start, start+step, ... up to and including end.
func RebalanceDates(start, end time.Time, interval RebalanceInterval) ([]time.Time, error) {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil, NewValidationError("end date cannot be before start date")
	}
	if _, err := ParseRebalanceInterval(string(interval)); err != nil {
		return nil, err
	}

	dates := []time.Time{}
	for i := 0; ; i++ {
		d := interval.Offset(start, i)
		if d.After(end) {
			break
		}
		dates = append(dates, d)
	}
	return dates, nil
}

type SnapshotAssetMetrics struct {
	AssetWeight                  float64  `json:"assetWeight"`
	FactorScore                  float64  `json:"factorScore"`
	PriceChangeTilNextResampling *float64 `json:"priceChangeTilNextResampling"`
}

type BacktestSnapshot struct {
	Date               time.Time                       `json:"date"`
	Value              float64                         `json:"value"`
	ValuePercentChange float64                         `json:"valuePercentChange"`
	AssetMetrics       map[string]SnapshotAssetMetrics `json:"assetMetrics"`
}

// MarshalJSON writes Date as YYYY-MM-DD, the same form as the snapshot's
// key in a backtest response.
func (s BacktestSnapshot) MarshalJSON() ([]byte, error) {
	type alias BacktestSnapshot
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias(s), formatWireDate(s.Date)})
}

func (s *BacktestSnapshot) UnmarshalJSON(b []byte) error {
	type alias BacktestSnapshot
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

func formatWireDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func parseWireDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return ParseDate(s)
}

// WeightSum adds the snapshot's weights in symbol order.
func (s BacktestSnapshot) WeightSum() float64 {
	sum := 0.0
	for _, symbol := range SortedKeys(s.AssetMetrics) {
		sum += s.AssetMetrics[symbol].AssetWeight
	}
	return sum
}

// SortedKeys returns the keys of a string-keyed map in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
