package repository

import (
	"context"
	"factorlab/internal/db/models/postgres/public/model"
	. "factorlab/internal/db/models/postgres/public/table"
	"factorlab/internal/domain"
	"fmt"
	"time"

	. "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type AssetFundamentalsRepository interface {
	Add(ctx context.Context, tx qrm.Executable, af []model.AssetFundamental) error
	// List returns every filing for the symbols dated on or before end,
	// ordered by symbol then date.
	List(ctx context.Context, tx qrm.Queryable, symbols []string, end time.Time) ([]domain.AssetFundamental, error)
}

type assetFundamentalsRepositoryHandler struct{}

func NewAssetFundamentalsRepository() AssetFundamentalsRepository {
	return assetFundamentalsRepositoryHandler{}
}

func (h assetFundamentalsRepositoryHandler) Add(ctx context.Context, tx qrm.Executable, af []model.AssetFundamental) error {
	if len(af) == 0 {
		return fmt.Errorf("no models were provided to insert into asset_fundamental")
	}
	now := time.Now().UTC()
	for i := range af {
		af[i].CreatedAt = now
		af[i].Date = domain.Day(af[i].Date)
	}

	query := AssetFundamental.
		INSERT(AssetFundamental.MutableColumns).
		MODELS(af).
		ON_CONFLICT(
			AssetFundamental.Symbol, AssetFundamental.Granularity, AssetFundamental.Date,
		).DO_UPDATE(
		SET(
			AssetFundamental.TotalAssets.SET(AssetFundamental.EXCLUDED.TotalAssets),
			AssetFundamental.TotalLiabilities.SET(AssetFundamental.EXCLUDED.TotalLiabilities),
			AssetFundamental.SharesOutstandingBasic.SET(AssetFundamental.EXCLUDED.SharesOutstandingBasic),
			AssetFundamental.EpsBasic.SET(AssetFundamental.EXCLUDED.EpsBasic),
		),
	)

	_, err := query.ExecContext(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to add asset fundamental to db: %w", err)
	}

	return nil
}

func (h assetFundamentalsRepositoryHandler) List(ctx context.Context, tx qrm.Queryable, symbols []string, end time.Time) ([]domain.AssetFundamental, error) {
	if len(symbols) == 0 {
		return []domain.AssetFundamental{}, nil
	}
	symbolExpressions := make([]Expression, 0, len(symbols))
	for _, s := range symbols {
		symbolExpressions = append(symbolExpressions, String(s))
	}

	query := AssetFundamental.
		SELECT(AssetFundamental.AllColumns).
		WHERE(
			AND(
				AssetFundamental.Symbol.IN(symbolExpressions...),
				AssetFundamental.Date.LT_EQ(DateT(end)),
			),
		).
		ORDER_BY(AssetFundamental.Symbol.ASC(), AssetFundamental.Date.ASC())

	result := []model.AssetFundamental{}
	err := query.QueryContext(ctx, tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list asset fundamentals: %w", err)
	}

	out := make([]domain.AssetFundamental, 0, len(result))
	for _, m := range result {
		out = append(out, domain.AssetFundamental{
			Symbol:                 m.Symbol,
			Date:                   domain.Day(m.Date),
			TotalAssets:            m.TotalAssets,
			TotalLiabilities:       m.TotalLiabilities,
			SharesOutstandingBasic: m.SharesOutstandingBasic,
			EpsBasic:               m.EpsBasic,
		})
	}

	return out, nil
}
