package domain

import "strings"

// MarginTier is the banding of a gross-margin percentage
type MarginTier string

const (
	TierTarget     MarginTier = "target"
	TierAcceptable MarginTier = "acceptable"
	TierLow        MarginTier = "low"
	TierCritical   MarginTier = "critical"
)

var tierColors = map[MarginTier]string{
	TierTarget:     "green",
	TierAcceptable: "yellow",
	TierLow:        "orange",
	TierCritical:   "red",
}

var tierLabels = map[MarginTier]string{
	TierTarget:     "Target",
	TierAcceptable: "Acceptable",
	TierLow:        "Low",
	TierCritical:   "Critical",
}

// Color returns the display colour for the tier.
func (t MarginTier) Color() string {
	if c, ok := tierColors[t]; ok {
		return c
	}

	return "gray"
}

// Label returns a human-readable label for the tier.
func (t MarginTier) Label() string {
	if label, ok := tierLabels[t]; ok {
		return label
	}

	return "Unknown"
}

// ParseMarginTier returns the tier for a given name (case-insensitive).
func ParseMarginTier(name string) (MarginTier, bool) {
	tier := MarginTier(strings.ToLower(strings.TrimSpace(name)))
	_, ok := tierColors[tier]

	return tier, ok
}
