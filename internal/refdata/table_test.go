package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
)

func TestTableLookupDefaults(t *testing.T) {
	tbl := New(map[string]scheme.Ranks{
		"Madurai": {scheme.MagalirUrimai: 3, scheme.MGNREGA: 12},
	})

	got := tbl.Ranks("  madurai ")
	assert.Equal(t, scheme.Ranks{
		scheme.MagalirUrimai: 3,
		scheme.OldAgePension: scheme.DefaultRank,
		scheme.MGNREGA:       12,
		scheme.PongalGift:    scheme.DefaultRank,
	}, got)

	assert.Equal(t, scheme.DefaultRanks(), tbl.Ranks("Atlantis"))
	assert.True(t, tbl.Has("MADURAI"))
	assert.False(t, tbl.Has("Atlantis"))
}

func TestTableIsImmutable(t *testing.T) {
	src := map[string]scheme.Ranks{"Karur": {scheme.PongalGift: 5}}
	tbl := New(src)
	src["Karur"][scheme.PongalGift] = 30

	got := tbl.Ranks("Karur")
	assert.Equal(t, 5, got[scheme.PongalGift])

	got[scheme.PongalGift] = 1
	assert.Equal(t, 5, tbl.Ranks("Karur")[scheme.PongalGift])

	all := tbl.All()
	all["Karur"][scheme.PongalGift] = 2
	assert.Equal(t, 5, tbl.Ranks("Karur")[scheme.PongalGift])
}

func TestTableDropsInvalidRanks(t *testing.T) {
	tbl := New(map[string]scheme.Ranks{"Erode": {scheme.MGNREGA: 0, scheme.PongalGift: 39, "free_bus": 2}})
	assert.Equal(t, scheme.DefaultRanks(), tbl.Ranks("Erode"))
}

func TestEmptyAndNilTables(t *testing.T) {
	var nilTable *Table
	assert.Equal(t, scheme.DefaultRanks(), nilTable.Ranks("Salem"))
	assert.Equal(t, 0, nilTable.Len())
	assert.Empty(t, nilTable.All())

	e := Empty()
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, scheme.DefaultRanks(), e.Ranks("Salem"))
}

func TestAllAndDistricts(t *testing.T) {
	tbl := New(map[string]scheme.Ranks{
		"Theni": {scheme.MGNREGA: 4},
		"Erode": {},
	})
	assert.Equal(t, []string{"Erode", "Theni"}, tbl.Districts())
	all := tbl.All()
	assert.Len(t, all, 2)
	assert.Equal(t, scheme.DefaultRanks(), all["Erode"])
	assert.Equal(t, 4, all["Theni"][scheme.MGNREGA])
}
