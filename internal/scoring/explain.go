package scoring

import (
	"fmt"
	"strings"

	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
)

// Tier is a risk classification bucket.
type Tier string

const (
	TierLow      Tier = "low"
	TierModerate Tier = "moderate"
	TierHigh     Tier = "high"
)

// Tier thresholds: High is score > HighThreshold, Moderate is
// ModerateFloor <= score <= HighThreshold, Low is below ModerateFloor.
const (
	HighThreshold = 65
	ModerateFloor = 40
)

// TierFor classifies a final score.
func TierFor(score int) Tier {
	switch {
	case score > HighThreshold:
		return TierHigh
	case score >= ModerateFloor:
		return TierModerate
	default:
		return TierLow
	}
}

// Label is the human form, e.g. "Moderate Risk".
func (t Tier) Label() string {
	switch t {
	case TierHigh:
		return "High Risk"
	case TierModerate:
		return "Moderate Risk"
	case TierLow:
		return "Low Risk"
	}
	return string(t)
}

// TopScheme returns the scheme with the most beneficiaries. On ties the
// first scheme in scheme.All wins.
func TopScheme(in scheme.Inputs) (scheme.ID, int) {
	top := scheme.All[0]
	for _, id := range scheme.All[1:] {
		if in[id] > in[top] {
			top = id
		}
	}
	return top, in[top]
}

// BestRank returns the scheme with the lowest (best) rank. On ties the first
// scheme in scheme.All wins.
func BestRank(r scheme.Ranks) (scheme.ID, int) {
	best := scheme.All[0]
	for _, id := range scheme.All[1:] {
		if r[id] < r[best] {
			best = id
		}
	}
	return best, r[best]
}

const unnamedLocation = "the selected location"

// Explain fills the tier's narrative template with the location, the score,
// the top beneficiary scheme and the district's best-ranked scheme. Output
// is a pure function of its arguments.
func Explain(score int, in scheme.Inputs, r scheme.Ranks, location string) (string, error) {
	if score < 0 || score > 100 {
		return "", fmt.Errorf("%w: score %d outside [0,100]", scheme.ErrInvalidInput, score)
	}
	if err := in.Validate(); err != nil {
		return "", err
	}
	if err := r.Validate(); err != nil {
		return "", err
	}
	loc := strings.TrimSpace(location)
	if loc == "" {
		loc = unnamedLocation
	}
	top, topCount := TopScheme(in)
	best, bestRank := BestRank(r)

	switch TierFor(score) {
	case TierHigh:
		return fmt.Sprintf("**High Risk Alert for %s:** The Resilience Score is critically high at **%d**. "+
			"This indicates a potential vulnerability despite the coverage in schemes like %s (%d beneficiaries). "+
			"The district's ranking in key schemes needs improvement to bolster resilience; its best showing is rank %d in %s. "+
			"Immediate review of coverage gaps is advised.",
			loc, score, top.Display(), topCount, bestRank, best.Display()), nil
	case TierModerate:
		return fmt.Sprintf("**Moderate Risk Warning for %s:** The Resilience Score is %d. "+
			"While there is substantial coverage, particularly in %s (%d beneficiaries), "+
			"the overall district performance (best rank: %d in %s) suggests room for improvement. "+
			"Recommend monitoring beneficiary uptake.",
			loc, score, top.Display(), topCount, bestRank, best.Display()), nil
	default:
		return fmt.Sprintf("**Low Risk Profile for %s:** The Resilience Score is a healthy **%d**. "+
			"This reflects strong social security coverage, led by %s with %d beneficiaries. "+
			"The district also performs well in %s (Rank %d). "+
			"The panchayat shows good resilience to economic shocks.",
			loc, score, top.Display(), topCount, best.Display(), bestRank), nil
	}
}
