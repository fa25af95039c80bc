package http

import (
	"context"

	"autotrends/internal/aggregate"
	"autotrends/internal/indices"
	"autotrends/internal/services"
)

// TrendServiceInterface defines the operations the trends API exposes.
type TrendServiceInterface interface {
	SportsTrends(ctx context.Context, q aggregate.Query) (*aggregate.Table, error)
	EfficiencyTrends(ctx context.Context, q aggregate.Query) (*aggregate.Table, error)
	FuelShares(ctx context.Context, q indices.ShareQuery) (*indices.ShareTable, error)
	SegmentIndices(ctx context.Context, q indices.SegmentQuery) ([]indices.SegmentSeries, error)
	Datasets(ctx context.Context) (*services.DatasetInfo, error)
	Refresh(ctx context.Context) (*services.DatasetInfo, error)
	Loaded() bool
}
