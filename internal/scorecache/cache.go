// Package scorecache memoizes scoring results. Scoring is a pure function
// of (Inputs, Ranks), so a cached result is always valid; entries expire
// only to bound memory.
package scorecache

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
	"github.com/tn-risk-atlas/risk-atlas/internal/scoring"
)

// Cache stores results by key. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (scoring.Result, bool, error)
	Set(ctx context.Context, key string, res scoring.Result) error
}

// Key encodes an input pair canonically, schemes in scheme.All order:
// "score:v1:<c1>,<c2>,<c3>,<c4>|<r1>,<r2>,<r3>,<r4>". The weights are part of
// the key so engines with different policies never share entries.
func Key(w scoring.Weights, in scheme.Inputs, r scheme.Ranks) string {
	var b strings.Builder
	fmt.Fprintf(&b, "score:v1:%d/%d:", w.District, w.Welfare)
	for i, id := range scheme.All {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(in[id]))
	}
	b.WriteByte('|')
	for i, id := range scheme.All {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(r[id]))
	}
	return b.String()
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) (scoring.Result, bool, error) {
	return scoring.Result{}, false, nil
}
func (Noop) Set(context.Context, string, scoring.Result) error { return nil }
