package metrics

import "github.com/nktomer45/planboard/internal/domain"

// Margin band thresholds, in percent.
const (
	targetMarginPct     = 40
	acceptableMarginPct = 10
	lowMarginPct        = 5
)

// ClassifyMargin bands a gross-margin percentage. The checks run top-down and
// the first match wins: 40 and 10 belong to the higher band, 5 is critical.
func ClassifyMargin(gmPercent float64) domain.MarginTier {
	switch {
	case gmPercent >= targetMarginPct:
		return domain.TierTarget
	case gmPercent >= acceptableMarginPct:
		return domain.TierAcceptable
	case gmPercent > lowMarginPct:
		return domain.TierLow
	default:
		return domain.TierCritical
	}
}
