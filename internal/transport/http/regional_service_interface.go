package http

import (
	"context"

	"cbpmetrics/internal/regional"
)

// RegionalServiceInterface is the part of services.RegionalService the
// handlers depend on
type RegionalServiceInterface interface {
	LocationQuotient(ctx context.Context, small, large regional.Series) (regional.LocationQuotientResult, error)
	ShiftShare(ctx context.Context, smallOld, smallNew, largeOld, largeNew regional.Series) (regional.ShiftShareResult, error)
	Specialization(ctx context.Context, small, large regional.Series) (regional.SpecializationResult, error)
	TableLocationQuotient(ctx context.Context, table regional.IndustryTable, reference *regional.Series) ([]regional.GeoQuotient, error)
	SelectLevel(table regional.IndustryTable) regional.IndustryTable
	TotalCode() string
}
