package scheme

import "fmt"

// Inputs maps each scheme to its beneficiary count for one location
// (the SchemeInputSet). All four schemes must be present and counts
// must be non-negative.
type Inputs map[ID]int

// Validate reports a wrapped ErrInvalidInput when a scheme is missing or
// unknown, or a count is negative.
func (in Inputs) Validate() error {
	for id := range in {
		if !id.Valid() {
			return fmt.Errorf("%w: unknown scheme %q in inputs", ErrInvalidInput, id)
		}
	}
	for _, id := range All {
		n, ok := in[id]
		if !ok {
			return fmt.Errorf("%w: inputs missing %s", ErrInvalidInput, id)
		}
		if n < 0 {
			return fmt.Errorf("%w: %s count %d is negative", ErrInvalidInput, id, n)
		}
	}
	return nil
}

// Total sums the counts in 64-bit so large collaborator-supplied values
// cannot overflow.
func (in Inputs) Total() int64 {
	var total int64
	for _, id := range All {
		total += int64(in[id])
	}
	return total
}

// Clone returns an independent copy.
func (in Inputs) Clone() Inputs {
	out := make(Inputs, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Ranks maps each scheme to a district's rank (the DistrictRankSet).
// Exactly the four schemes, each in [MinRank, MaxRank].
type Ranks map[ID]int

// DefaultRanks is the neutral set used when a district is absent from the
// reference table.
func DefaultRanks() Ranks {
	r := make(Ranks, len(All))
	for _, id := range All {
		r[id] = DefaultRank
	}
	return r
}

// Validate reports a wrapped ErrInvalidInput for an empty set, a missing or
// unknown scheme, or a rank outside [MinRank, MaxRank].
func (r Ranks) Validate() error {
	if len(r) == 0 {
		return fmt.Errorf("%w: rank set is empty", ErrInvalidInput)
	}
	for id := range r {
		if !id.Valid() {
			return fmt.Errorf("%w: unknown scheme %q in ranks", ErrInvalidInput, id)
		}
	}
	for _, id := range All {
		v, ok := r[id]
		if !ok {
			return fmt.Errorf("%w: ranks missing %s", ErrInvalidInput, id)
		}
		if !ValidRank(v) {
			return fmt.Errorf("%w: %s rank %d outside [%d,%d]", ErrInvalidInput, id, v, MinRank, MaxRank)
		}
	}
	return nil
}

// Clone returns an independent copy.
func (r Ranks) Clone() Ranks {
	out := make(Ranks, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ValidRank reports whether v lies in the rank universe.
func ValidRank(v int) bool { return v >= MinRank && v <= MaxRank }
