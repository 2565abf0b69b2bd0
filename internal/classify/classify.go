// Package classify derives the engagement classifications from recorded
// answers: per-answer density tiers, the aggregated density, the tracker
// completion rate, the operator-facing lead status, and the owner type.
// Every function is pure, deterministic, and total over its documented
// domain.
package classify

import (
	"strings"
	"unicode/utf8"
)

// Tier is the coarse length signal for a single tracker answer.
type Tier string

const (
	TierShort    Tier = "short"
	TierNormal   Tier = "normal"
	TierDetailed Tier = "detailed"
)

// Density is the aggregated engagement signal over all tracker answers.
type Density string

const (
	DensityNone   Density = "none"
	DensityLow    Density = "low"
	DensityMedium Density = "medium"
	DensityHigh   Density = "high"
)

// Lead is the operator-facing classification of a visitor.
type Lead string

const (
	LeadVIP       Lead = "vip"
	LeadPotential Lead = "potential"
	LeadEmotional Lead = "emotional"
)

// Tier length boundaries, strict less-than: a trimmed answer of exactly 20
// runes is normal, exactly 100 runes is detailed.
const (
	shortBelow  = 20
	normalBelow = 100
)

// DensityTier classifies one answer by the rune count of its trimmed text.
func DensityTier(text string) Tier {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	switch {
	case n < shortBelow:
		return TierShort
	case n < normalBelow:
		return TierNormal
	default:
		return TierDetailed
	}
}

// tierScore maps a tier to its numeric weight for averaging.
func tierScore(t Tier) float64 {
	switch t {
	case TierShort:
		return 1
	case TierNormal:
		return 2
	default:
		return 3
	}
}

// OverallDensity averages the tier scores of all non-empty answers. Empty
// slots are ignored entirely, so out-of-order tracker completion does not
// drag the average down. Zero non-empty answers yields DensityNone.
func OverallDensity(answers []string) Density {
	var sum float64
	var count int
	for _, a := range answers {
		if strings.TrimSpace(a) == "" {
			continue
		}
		sum += tierScore(DensityTier(a))
		count++
	}
	if count == 0 {
		return DensityNone
	}
	avg := sum / float64(count)
	switch {
	case avg < 1.5:
		return DensityLow
	case avg < 2.5:
		return DensityMedium
	default:
		return DensityHigh
	}
}

// CompletionRate converts the 1-based tracker day into a percentage of the
// seven tracker days completed, clamped to [0,100].
func CompletionRate(trackerDay int) float64 {
	rate := float64(trackerDay-1) / 7 * 100
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}

// LeadStatus derives the operator-facing label from completion rate and
// aggregated density. Potential is the deliberate catch-all: a mid-range
// completion rate with low density still reports potential, not emotional.
func LeadStatus(completionRate float64, density Density) Lead {
	switch {
	case completionRate >= 100 && density == DensityHigh:
		return LeadVIP
	case completionRate >= 70:
		return LeadPotential
	case completionRate < 30 && density == DensityLow:
		return LeadEmotional
	default:
		return LeadPotential
	}
}
