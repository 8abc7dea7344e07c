package service

import (
	"github.com/nktomer45/planboard/internal/dimension"
	"github.com/nktomer45/planboard/internal/domain"
	"github.com/nktomer45/planboard/internal/metrics"
)

// MarginInfo describes the banding of a gross-margin percentage.
type MarginInfo struct {
	GMPercent float64           `json:"gm_percent"`
	Formatted string            `json:"formatted"`
	Tier      domain.MarginTier `json:"tier"`
	Label     string            `json:"label"`
	Color     string            `json:"color"`
}

type MetricsService struct {
	registry *dimension.Registry
}

func NewMetricsService(registry *dimension.Registry) *MetricsService {
	return &MetricsService{registry: registry}
}

// Calculate derives sum/product/ratio, outlier hints and summaries. Inputs
// whose derived values overflow fail with metrics.ErrNonFinite.
func (s *MetricsService) Calculate(raws []domain.RawRow) (domain.MetricsResult, error) {
	return checked(metrics.Calculate(raws))
}

// Groups aggregates rows by their first dimension for charting.
func (s *MetricsService) Groups(raws []domain.RawRow) ([]domain.GroupPoint, error) {
	rows := metrics.DeriveRows(raws)
	if err := metrics.CheckFinite(domain.MetricsResult{Rows: rows}); err != nil {
		return nil, err
	}

	groups := metrics.GroupByDim1(rows)
	if err := metrics.CheckFiniteGroups(groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Margin classifies a gross-margin percentage.
func (s *MetricsService) Margin(gm float64) MarginInfo {
	tier := metrics.ClassifyMargin(gm)
	return MarginInfo{
		GMPercent: gm,
		Formatted: metrics.FormatPercent(gm),
		Tier:      tier,
		Label:     tier.Label(),
		Color:     tier.Color(),
	}
}

// DimensionGrid cross-joins two dimensions, applies values and runs the
// full calculation over the result.
func (s *MetricsService) DimensionGrid(dim1Kind, dim2Kind string, values map[string]dimension.Values) (domain.MetricsResult, error) {
	return checked(metrics.Calculate(s.registry.CrossJoin(dim1Kind, dim2Kind, values)))
}

func checked(result domain.MetricsResult) (domain.MetricsResult, error) {
	if err := metrics.CheckFinite(result); err != nil {
		return domain.MetricsResult{}, err
	}
	return result, nil
}
