package domain

import "time"

type AssetPrice struct {
	Symbol string
	Price  float64
	Date   time.Time
}

// AssetFundamental holds one reporting period for a ticker.
type AssetFundamental struct {
	Symbol                 string
	Date                   time.Time
	TotalAssets            *float64
	TotalLiabilities       *float64
	SharesOutstandingBasic *float64
	EpsBasic               *float64
}
