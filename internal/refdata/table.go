// Package refdata holds the read-only district rank reference table.
//
// A Table is built once at startup and never mutated afterwards, so it is
// safe to share across goroutines without locking.
package refdata

import (
	"sort"
	"strings"

	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
)

// Table maps districts to their per-scheme ranks. The zero value is an
// empty table where every lookup falls back to scheme.DefaultRank.
type Table struct {
	rows  map[string]scheme.Ranks // key: normalized district name
	names map[string]string       // key: normalized name -> display name
}

// New builds a Table from district -> partial rank sets. Ranks outside the
// rank universe and unknown schemes are dropped, so those lookups default.
// The input is copied.
func New(rows map[string]scheme.Ranks) *Table {
	t := &Table{
		rows:  make(map[string]scheme.Ranks, len(rows)),
		names: make(map[string]string, len(rows)),
	}
	for name, ranks := range rows {
		key := normalize(name)
		if key == "" {
			continue
		}
		clean := scheme.Ranks{}
		for id, v := range ranks {
			if id.Valid() && scheme.ValidRank(v) {
				clean[id] = v
			}
		}
		t.rows[key] = clean
		t.names[key] = strings.TrimSpace(name)
	}
	return t
}

// Empty returns a table with no districts.
func Empty() *Table { return New(nil) }

// Len is the number of districts in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Has reports whether the district has a row. Lookup is case-insensitive.
func (t *Table) Has(district string) bool {
	if t == nil {
		return false
	}
	_, ok := t.rows[normalize(district)]
	return ok
}

// Ranks returns a complete rank set for the district. Schemes missing from
// the row, and districts missing from the table, get scheme.DefaultRank.
// The returned set is a fresh copy owned by the caller.
func (t *Table) Ranks(district string) scheme.Ranks {
	out := scheme.DefaultRanks()
	if t == nil {
		return out
	}
	for id, v := range t.rows[normalize(district)] {
		out[id] = v
	}
	return out
}

// All returns a complete rank set for every district, keyed by the
// district's display name.
func (t *Table) All() map[string]scheme.Ranks {
	if t == nil {
		return map[string]scheme.Ranks{}
	}
	out := make(map[string]scheme.Ranks, len(t.rows))
	for key, name := range t.names {
		out[name] = t.Ranks(key)
	}
	return out
}

// Districts lists display names in lexical order.
func (t *Table) Districts() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.names))
	for _, name := range t.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func normalize(district string) string {
	return strings.ToLower(strings.TrimSpace(district))
}
