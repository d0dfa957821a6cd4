package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRebalanceDates(t *testing.T) {
	t.Run("monthly over a year is inclusive of both ends", func(t *testing.T) {
		dates, err := RebalanceDates(NewDate(2020, 1, 1), NewDate(2021, 1, 1), RebalanceInterval_Monthly)
		require.NoError(t, err)
		require.Len(t, dates, 13)
		require.Equal(t, NewDate(2020, 1, 1), dates[0])
		require.Equal(t, NewDate(2020, 7, 1), dates[6])
		require.Equal(t, NewDate(2021, 1, 1), dates[12])
	})

	t.Run("monthly from a month end does not drift", func(t *testing.T) {
		dates, err := RebalanceDates(NewDate(2021, 1, 31), NewDate(2021, 4, 30), RebalanceInterval_Monthly)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff([]time.Time{
			NewDate(2021, 1, 31),
			NewDate(2021, 3, 3),
			NewDate(2021, 3, 31),
		}, dates))
	})

	t.Run("weekly", func(t *testing.T) {
		dates, err := RebalanceDates(NewDate(2022, 1, 3), NewDate(2022, 1, 31), RebalanceInterval_Weekly)
		require.NoError(t, err)
		require.Len(t, dates, 5)
		require.Equal(t, NewDate(2022, 1, 31), dates[4])
	})

	t.Run("yearly", func(t *testing.T) {
		dates, err := RebalanceDates(NewDate(2010, 6, 15), NewDate(2013, 6, 14), RebalanceInterval_Yearly)
		require.NoError(t, err)
		require.Len(t, dates, 3)
	})

	t.Run("start equals end yields one date", func(t *testing.T) {
		for _, interval := range []RebalanceInterval{
			RebalanceInterval_Daily,
			RebalanceInterval_Weekly,
			RebalanceInterval_Monthly,
			RebalanceInterval_Yearly,
		} {
			dates, err := RebalanceDates(NewDate(2020, 2, 29), NewDate(2020, 2, 29), interval)
			require.NoError(t, err)
			require.Len(t, dates, 1)
		}
	})

	t.Run("ignores time of day", func(t *testing.T) {
		start := time.Date(2020, 1, 1, 15, 4, 5, 0, time.UTC)
		dates, err := RebalanceDates(start, NewDate(2020, 1, 3), RebalanceInterval_Daily)
		require.NoError(t, err)
		require.Len(t, dates, 3)
		require.Equal(t, NewDate(2020, 1, 1), dates[0])
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := RebalanceDates(NewDate(2020, 1, 2), NewDate(2020, 1, 1), RebalanceInterval_Daily)
		require.Error(t, err)
		require.True(t, IsValidationError(err))
	})

	t.Run("unknown interval", func(t *testing.T) {
		_, err := RebalanceDates(NewDate(2020, 1, 1), NewDate(2020, 1, 2), "hourly")
		require.True(t, IsValidationError(err))
	})
}

func TestParseRebalanceInterval(t *testing.T) {
	r, err := ParseRebalanceInterval(" Monthly ")
	require.NoError(t, err)
	require.Equal(t, RebalanceInterval_Monthly, r)

	_, err = ParseRebalanceInterval("quarterly")
	require.ErrorContains(t, err, "quarterly")
}

func TestBacktestSnapshot_WeightSum(t *testing.T) {
	s := BacktestSnapshot{
		AssetMetrics: map[string]SnapshotAssetMetrics{
			"AAPL": {AssetWeight: 0.25},
			"MSFT": {AssetWeight: 0.5},
			"GOOG": {AssetWeight: 0.25},
		},
	}
	require.InDelta(t, 1.0, s.WeightSum(), 1e-12)
}

func TestBacktestSnapshot_JSON(t *testing.T) {
	change := 2.5
	snapshot := BacktestSnapshot{
		Date:               NewDate(2020, 1, 1),
		Value:              1025,
		ValuePercentChange: 2.5,
		AssetMetrics: map[string]SnapshotAssetMetrics{
			"AAPL": {AssetWeight: 1, FactorScore: 0.5, PriceChangeTilNextResampling: &change},
		},
	}

	b, err := json.Marshal(snapshot)
	require.NoError(t, err)
	require.Contains(t, string(b), `"date":"2020-01-01"`)
	require.NotContains(t, string(b), "T00:00:00Z")

	var decoded BacktestSnapshot
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "", cmp.Diff(snapshot, decoded))

	t.Run("rejects timestamps", func(t *testing.T) {
		err := json.Unmarshal([]byte(`{"date":"2020-01-01T00:00:00Z"}`), &decoded)
		require.True(t, IsValidationError(err))
	})
}
