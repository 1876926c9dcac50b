// Package scheme defines the closed set of welfare schemes tracked by the
// risk engine and the per-request value sets keyed by them.
package scheme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is returned (wrapped) whenever a scheme set violates its
// invariants. Callers match it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ID identifies a scheme.
type ID string

const (
	MagalirUrimai ID = "magalir_urimai"
	OldAgePension ID = "old_age_pension"
	MGNREGA       ID = "mgnrega"
	PongalGift    ID = "pongal_gift"
)

// All lists every scheme in canonical order. Ties in the explainer are
// broken by this order, first entry wins.
var All = []ID{MagalirUrimai, OldAgePension, MGNREGA, PongalGift}

// Rank universe: 1 is the best district, 38 the worst.
const (
	MinRank     = 1
	MaxRank     = 38
	DefaultRank = 19
)

var titles = map[ID]string{
	MagalirUrimai: "Kalaignar Magalir Urimai Thittam",
	OldAgePension: "Indira Gandhi National Old Age Pension Scheme",
	MGNREGA:       "Mahatma Gandhi National Rural Employment Guarantee Act",
	PongalGift:    "Tamil Nadu Pongal Gift Scheme",
}

// Parse resolves a scheme id, tolerating case and surrounding whitespace.
func Parse(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if !id.Valid() {
		return "", fmt.Errorf("%w: unknown scheme %q", ErrInvalidInput, s)
	}
	return id, nil
}

func (id ID) Valid() bool {
	_, ok := titles[id]
	return ok
}

// Display renders the id for humans: separators become spaces and each word
// is title-cased, so old_age_pension becomes "Old Age Pension".
func (id ID) Display() string {
	words := strings.Split(string(id), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// Title is the full programme name.
func (id ID) Title() string { return titles[id] }

// RankColumn is the reference-table column holding this scheme's rank.
func (id ID) RankColumn() string { return string(id) + "_rank" }

func (id ID) String() string { return string(id) }
