package treasury_client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_interestRateMonthsFromApi(t *testing.T) {
	for in, expected := range map[string]int{
		"yield_1m":  1,
		"yield_6m":  6,
		"yield_1y":  12,
		"yield_30y": 360,
	} {
		got, err := interestRateMonthsFromApi(in)
		require.NoError(t, err)
		require.Equal(t, expected, got)
	}
}

func TestClient_GetInterestRatesOnDay(t *testing.T) {
	calls := map[string]int{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		calls[date]++
		if date == "2020-03-15" {
			w.Write([]byte(`[{"date":"2020-03-15","yield_1m":null,"yield_1y":null}]`))
			return
		}
		w.Write([]byte(`[{"date":"2020-02-15","yield_1m":1.5,"yield_1y":2,"yield_10y":null}]`))
	}))
	defer server.Close()

	c := NewClient()
	c.BaseUrl = server.URL

	rates, err := c.GetInterestRatesOnDay(context.Background(), time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, "", cmp.Diff(map[int]float64{1: 0.015, 12: 0.02}, rates.Rates))

	_, err = c.GetInterestRatesOnDay(context.Background(), time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 1, calls["2020-03-15"])
	require.Equal(t, 1, calls["2020-02-15"])
}

func TestClient_GetInterestRatesOnDay_error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	c := NewClient()
	c.BaseUrl = server.URL

	_, err := c.GetInterestRatesOnDay(context.Background(), time.Now())
	require.ErrorContains(t, err, "status code 500")
}
