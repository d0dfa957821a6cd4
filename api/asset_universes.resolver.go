package api

import (
	"factorlab/internal/repository"
	"sort"

	"github.com/gin-gonic/gin"
)

type getAssetUniversesResponse struct {
	DisplayName string `json:"displayName"`
	Code        string `json:"code"`
	NumAssets   int    `json:"numAssets"`
}

func (h ApiHandler) getAssetUniverses(c *gin.Context) {
	universeDetails, err := h.AssetUniverseRepository.GetAssetUniverses(c.Request.Context(), h.Db)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	totalSize := 0
	out := []getAssetUniversesResponse{}
	for _, universe := range universeDetails {
		if universe.AssetUniverseName == repository.AllAssetsUniverse {
			continue
		}
		totalSize += universe.NumAssets
		out = append(out, getAssetUniversesResponse{
			DisplayName: universe.DisplayName,
			Code:        universe.AssetUniverseName,
			NumAssets:   universe.NumAssets,
		})
	}
	sortUniverses(out)

	// ALL always goes last
	out = append(out, getAssetUniversesResponse{
		DisplayName: "All",
		Code:        repository.AllAssetsUniverse,
		NumAssets:   totalSize,
	})

	c.JSON(200, out)
}

func sortUniverses(universes []getAssetUniversesResponse) {
	idealCodeOrder := []string{
		"SPY_TOP_80",
		"SPY_TOP_100",
		"SPY_TOP_300",
		"F-PRIME_FINTECH_INDEX",
	}
	rank := func(code string) int {
		for x, s := range idealCodeOrder {
			if s == code {
				return x
			}
		}
		// unknown universes go after the known ones
		return len(idealCodeOrder)
	}
	sort.SliceStable(universes, func(i, j int) bool {
		return rank(universes[i].Code) < rank(universes[j].Code)
	})
}
