package scoring

import "github.com/tn-risk-atlas/risk-atlas/internal/scheme"

const (
	// PerSchemeCeiling is the assumed maximum beneficiary count per scheme.
	PerSchemeCeiling = 10000
	// Sensitivity amplifies partial coverage so it still registers. Any total
	// at or above MaxBeneficiaries/Sensitivity saturates the welfare score at
	// 100; that ceiling is intended.
	Sensitivity = 5
)

// MaxBeneficiaries is the assumed ceiling across all schemes (40,000).
var MaxBeneficiaries = int64(len(scheme.All) * PerSchemeCeiling)

// WelfareScore normalizes beneficiary counts into [0,100], higher meaning
// more coverage and therefore lower risk. The result is truncated, not
// rounded.
func WelfareScore(in scheme.Inputs) (int, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	return welfareFromTotal(in.Total()), nil
}

func welfareFromTotal(total int64) int {
	if total <= 0 {
		return 0
	}
	if total*Sensitivity >= MaxBeneficiaries {
		return 100
	}
	// total / max * 100 * sensitivity, kept integral so truncation is exact
	return clamp(int(total*100*Sensitivity/MaxBeneficiaries), 0, 100)
}

// DistrictRankScore maps the mean rank linearly from rank 1 (score 0) to
// rank 38 (score 100). The returned average is the truncated mean; the score
// itself is computed from the untruncated mean.
func DistrictRankScore(r scheme.Ranks) (score int, avgRank int, err error) {
	if err := r.Validate(); err != nil {
		return 0, 0, err
	}
	sum, n := rankSum(r)
	span := scheme.MaxRank - scheme.MinRank
	score = clamp((sum-n*scheme.MinRank)*100/(span*n), 0, 100)
	return score, sum / n, nil
}

// AverageRank is the untruncated mean of a rank set. It does not validate;
// an empty set yields 0.
func AverageRank(r scheme.Ranks) float64 {
	if len(r) == 0 {
		return 0
	}
	var sum int
	for _, v := range r {
		sum += v
	}
	return float64(sum) / float64(len(r))
}

func rankSum(r scheme.Ranks) (sum, n int) {
	for _, id := range scheme.All {
		sum += r[id]
	}
	return sum, len(scheme.All)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
