package refdata

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
	"github.com/tn-risk-atlas/risk-atlas/internal/storage"
)

const sampleCSV = `District,magalir_urimai_rank,old_age_pension_rank,mgnrega_rank,pongal_gift_rank
Madurai,3,8,12,20
Salem,1,2,x,40
,4,4,4,4
Theni,5
`

func TestParseCSV(t *testing.T) {
	tbl, warnings, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())

	assert.Equal(t, scheme.Ranks{
		scheme.MagalirUrimai: 3,
		scheme.OldAgePension: 8,
		scheme.MGNREGA:       12,
		scheme.PongalGift:    20,
	}, tbl.Ranks("Madurai"))

	salem := tbl.Ranks("Salem")
	assert.Equal(t, 1, salem[scheme.MagalirUrimai])
	assert.Equal(t, scheme.DefaultRank, salem[scheme.MGNREGA])
	assert.Equal(t, scheme.DefaultRank, salem[scheme.PongalGift])

	theni := tbl.Ranks("Theni")
	assert.Equal(t, 5, theni[scheme.MagalirUrimai])
	assert.Equal(t, scheme.DefaultRank, theni[scheme.OldAgePension])

	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], `invalid mgnrega_rank "x"`)
	assert.Contains(t, warnings[1], "pongal_gift_rank 40 outside")
	assert.Contains(t, warnings[2], "line 4: missing district")
}

func TestParseCSVLegacyColumn(t *testing.T) {
	tbl, warnings, err := ParseCSV(strings.NewReader("district,kalaignar_magalir_urimai_rank\nKarur,7\n"))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 7, tbl.Ranks("Karur")[scheme.MagalirUrimai])
}

func TestParseCSVDuplicateDistrict(t *testing.T) {
	tbl, warnings, err := ParseCSV(strings.NewReader("district,mgnrega_rank\nKarur,7\nkarur,9\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, 9, tbl.Ranks("Karur")[scheme.MGNREGA])
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "duplicate district")
}

func TestParseCSVRequiresDistrictHeader(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader("name,mgnrega_rank\nKarur,7\n"))
	assert.Error(t, err)

	_, _, err = ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
}

type failingSource struct{}

func (failingSource) Load(context.Context) (*Table, []string, error) {
	return nil, []string{"partial"}, errors.New("corrupt file")
}

func TestLoadDegradesToEmptyTable(t *testing.T) {
	ctx := context.Background()

	tbl := Load(ctx, failingSource{}, nil)
	require.NotNil(t, tbl)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, scheme.DefaultRanks(), tbl.Ranks("Madurai"))

	tbl = Load(ctx, nil, nil)
	assert.Equal(t, 0, tbl.Len())

	store, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	tbl = Load(ctx, BlobSource{Store: store, Key: "missing.csv"}, nil)
	assert.Equal(t, 0, tbl.Len())
}

func TestLoadFromBlob(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	_, err = store.Put(ctx, "district_ranks.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	tbl := Load(ctx, BlobSource{Store: store, Key: "district_ranks.csv"}, nil)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, 12, tbl.Ranks("Madurai")[scheme.MGNREGA])
}
