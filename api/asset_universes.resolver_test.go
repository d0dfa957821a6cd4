package api

import (
	"errors"
	"factorlab/internal/repository"
	mock_repository "factorlab/internal/repository/mocks"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_sortUniverses(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  []string
	}{
		{
			name:  "known universes in display order",
			codes: []string{"SPY_TOP_100", "SPY_TOP_80"},
			want:  []string{"SPY_TOP_80", "SPY_TOP_100"},
		},
		{
			name:  "unknown universes keep their order after known ones",
			codes: []string{"CUSTOM_B", "F-PRIME_FINTECH_INDEX", "CUSTOM_A", "SPY_TOP_300"},
			want:  []string{"SPY_TOP_300", "F-PRIME_FINTECH_INDEX", "CUSTOM_B", "CUSTOM_A"},
		},
		{
			name:  "empty",
			codes: []string{},
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []getAssetUniversesResponse{}
			for _, code := range tt.codes {
				in = append(in, getAssetUniversesResponse{Code: code})
			}
			sortUniverses(in)

			got := []string{}
			for _, u := range in {
				got = append(got, u.Code)
			}
			require.Equal(t, "", cmp.Diff(tt.want, got))
		})
	}
}

func TestApiHandler_getAssetUniverses(t *testing.T) {
	tests := []struct {
		name      string
		universes []repository.AssetUniverseSize
		want      []getAssetUniversesResponse
	}{
		{
			name: "all goes last with the total",
			universes: []repository.AssetUniverseSize{
				{AssetUniverseName: "CUSTOM", DisplayName: "Custom", NumAssets: 5},
				{AssetUniverseName: "SPY_TOP_100", DisplayName: "SPY Top 100", NumAssets: 100},
				{AssetUniverseName: "SPY_TOP_80", DisplayName: "SPY Top 80", NumAssets: 80},
			},
			want: []getAssetUniversesResponse{
				{DisplayName: "SPY Top 80", Code: "SPY_TOP_80", NumAssets: 80},
				{DisplayName: "SPY Top 100", Code: "SPY_TOP_100", NumAssets: 100},
				{DisplayName: "Custom", Code: "CUSTOM", NumAssets: 5},
				{DisplayName: "All", Code: "ALL", NumAssets: 185},
			},
		},
		{
			name: "stored ALL row is replaced, not duplicated",
			universes: []repository.AssetUniverseSize{
				{AssetUniverseName: "ALL", DisplayName: "Everything", NumAssets: 500},
				{AssetUniverseName: "SPY_TOP_80", DisplayName: "SPY Top 80", NumAssets: 80},
			},
			want: []getAssetUniversesResponse{
				{DisplayName: "SPY Top 80", Code: "SPY_TOP_80", NumAssets: 80},
				{DisplayName: "All", Code: "ALL", NumAssets: 80},
			},
		},
		{
			name:      "no universes",
			universes: []repository.AssetUniverseSize{},
			want: []getAssetUniversesResponse{
				{DisplayName: "All", Code: "ALL", NumAssets: 0},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			assetUniverseRepository := mock_repository.NewMockAssetUniverseRepository(ctrl)
			router := ApiHandler{AssetUniverseRepository: assetUniverseRepository}.NewRouter()
			assetUniverseRepository.EXPECT().GetAssetUniverses(gomock.Any(), gomock.Any()).Return(tt.universes, nil)

			w := doRequest(router, http.MethodGet, "/assetUniverses", "", nil)
			require.Equal(t, 200, w.Code)
			require.Equal(t, "", cmp.Diff(tt.want, decode[[]getAssetUniversesResponse](t, w)))
		})
	}

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		assetUniverseRepository := mock_repository.NewMockAssetUniverseRepository(ctrl)
		router := ApiHandler{AssetUniverseRepository: assetUniverseRepository}.NewRouter()
		assetUniverseRepository.EXPECT().GetAssetUniverses(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

		w := doRequest(router, http.MethodGet, "/assetUniverses", "", nil)
		require.Equal(t, 500, w.Code)
	})
}
