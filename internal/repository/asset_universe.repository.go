package repository

import (
	"context"
	"errors"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/db/models/postgres/public/table"
	"fmt"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

// AllAssetsUniverse is the pseudo-universe holding every known ticker.
const AllAssetsUniverse = "ALL"

type AssetUniverseRepository interface {
	GetAssetUniverses(ctx context.Context, tx qrm.Queryable) ([]AssetUniverseSize, error)
	GetAssets(ctx context.Context, tx qrm.Queryable, universeName string) ([]model.Ticker, error)
	AddAssets(ctx context.Context, tx qrm.Executable, universe model.AssetUniverse, tickers []model.Ticker) error
	GetOrCreate(ctx context.Context, tx qrm.Queryable, name, displayName string) (*model.AssetUniverse, error)
}

type AssetUniverseSize struct {
	AssetUniverseID   uuid.UUID
	AssetUniverseName string
	DisplayName       string
	NumAssets         int
}

type assetUniverseRepositoryHandler struct{}

func NewAssetUniverseRepository() AssetUniverseRepository {
	return assetUniverseRepositoryHandler{}
}

func universeSizesQuery() postgres.SelectStatement {
	return postgres.SELECT(
		table.AssetUniverse.AssetUniverseID,
		table.AssetUniverse.AssetUniverseName,
		table.AssetUniverse.DisplayName,
		postgres.COUNT(table.AssetUniverseTicker.TickerID),
	).FROM(
		table.AssetUniverse.
			LEFT_JOIN(
				table.AssetUniverseTicker,
				table.AssetUniverseTicker.AssetUniverseID.EQ(table.AssetUniverse.AssetUniverseID),
			),
	).GROUP_BY(
		table.AssetUniverse.AssetUniverseID,
		table.AssetUniverse.AssetUniverseName,
		table.AssetUniverse.DisplayName,
	).ORDER_BY(table.AssetUniverse.AssetUniverseName.ASC())
}

func (h assetUniverseRepositoryHandler) GetAssetUniverses(ctx context.Context, tx qrm.Queryable) ([]AssetUniverseSize, error) {
	q, args := universeSizesQuery().Sql()
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list asset universes: %w", err)
	}
	defer rows.Close()

	out := []AssetUniverseSize{}
	for rows.Next() {
		u := AssetUniverseSize{}
		if err := rows.Scan(&u.AssetUniverseID, &u.AssetUniverseName, &u.DisplayName, &u.NumAssets); err != nil {
			return nil, fmt.Errorf("failed to scan asset universe: %w", err)
		}
		out = append(out, u)
	}

	return out, rows.Err()
}

func assetsQuery(name string) postgres.SelectStatement {
	if name == AllAssetsUniverse {
		return table.Ticker.
			SELECT(table.Ticker.AllColumns).
			ORDER_BY(table.Ticker.Symbol.ASC())
	}

	return postgres.SELECT(table.Ticker.AllColumns).FROM(
		table.Ticker.
			INNER_JOIN(
				table.AssetUniverseTicker,
				table.AssetUniverseTicker.TickerID.EQ(table.Ticker.TickerID),
			).
			INNER_JOIN(
				table.AssetUniverse,
				table.AssetUniverse.AssetUniverseID.EQ(table.AssetUniverseTicker.AssetUniverseID),
			),
	).WHERE(
		table.AssetUniverse.AssetUniverseName.EQ(postgres.String(name)),
	).ORDER_BY(table.Ticker.Symbol.ASC())
}

// GetAssets lists the tickers in a universe. The ALL universe is every
// ticker, whether or not it belongs to a named universe.
func (h assetUniverseRepositoryHandler) GetAssets(ctx context.Context, tx qrm.Queryable, name string) ([]model.Ticker, error) {
	tickers := []model.Ticker{}
	err := assetsQuery(name).QueryContext(ctx, tx, &tickers)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets from %s: %w", name, err)
	}

	return tickers, nil
}

func (h assetUniverseRepositoryHandler) AddAssets(ctx context.Context, tx qrm.Executable, universe model.AssetUniverse, tickers []model.Ticker) error {
	if len(tickers) == 0 {
		return nil
	}
	models := []model.AssetUniverseTicker{}
	for _, t := range tickers {
		models = append(models, model.AssetUniverseTicker{
			TickerID:        t.TickerID,
			AssetUniverseID: universe.AssetUniverseID,
		})
	}
	query := table.AssetUniverseTicker.
		INSERT(table.AssetUniverseTicker.MutableColumns).
		MODELS(models).
		ON_CONFLICT(
			table.AssetUniverseTicker.TickerID,
			table.AssetUniverseTicker.AssetUniverseID,
		).DO_NOTHING()

	_, err := query.ExecContext(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to add assets to universe %s: %w", universe.AssetUniverseName, err)
	}

	return nil
}

func (h assetUniverseRepositoryHandler) GetOrCreate(ctx context.Context, tx qrm.Queryable, name, displayName string) (*model.AssetUniverse, error) {
	if name == AllAssetsUniverse {
		return nil, fmt.Errorf("universe name %s is reserved", AllAssetsUniverse)
	}
	query := table.AssetUniverse.
		SELECT(table.AssetUniverse.AllColumns).
		WHERE(table.AssetUniverse.AssetUniverseName.EQ(postgres.String(name)))

	out := model.AssetUniverse{}
	err := query.QueryContext(ctx, tx, &out)
	if err == nil {
		return &out, nil
	} else if !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("failed to get universe: %w", err)
	}

	if displayName == "" {
		displayName = name
	}
	insertQuery := table.AssetUniverse.
		INSERT(table.AssetUniverse.MutableColumns).
		MODEL(model.AssetUniverse{
			AssetUniverseName: name,
			DisplayName:       displayName,
		}).
		RETURNING(table.AssetUniverse.AllColumns)

	err = insertQuery.QueryContext(ctx, tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to create universe: %w", err)
	}

	return &out, nil
}
