package assetview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleSliceEmptyFilter(t *testing.T) {
	assets := DemoAssets()

	got := VisibleSlice(assets, FilterSpec{})

	assert.Equal(t, assets, got)

	// Fresh slice, not an alias of the input
	got[0].Owner = "changed"
	assert.Equal(t, "Sarah Johnson", assets[0].Owner)
}

func TestVisibleSliceStatus(t *testing.T) {
	got := VisibleSlice(DemoAssets(), FilterSpec{Status: StatusMissing})

	require.Len(t, got, 1)
	assert.Equal(t, "LPT-002", got[0].AssetID)
}

func TestVisibleSliceSearch(t *testing.T) {
	assets := DemoAssets()

	// Case-insensitive substring over asset tag, owner and location
	got := VisibleSlice(assets, FilterSpec{Search: "lpt"})
	require.Len(t, got, 2)

	got = VisibleSlice(assets, FilterSpec{Search: "CHEN"})
	require.Len(t, got, 1)
	assert.Equal(t, "Mike Chen", got[0].Owner)

	got = VisibleSlice(assets, FilterSpec{Search: "building a"})
	require.Len(t, got, 2)

	got = VisibleSlice(assets, FilterSpec{Search: "nowhere"})
	assert.Empty(t, got)
}

func TestVisibleSliceConjunction(t *testing.T) {
	assets := DemoAssets()

	got := VisibleSlice(assets, FilterSpec{Search: "building a", Status: StatusRecovered})
	require.Len(t, got, 1)
	assert.Equal(t, "MON-001", got[0].AssetID)

	// Predicates conjoin; a record must satisfy all of them
	got = VisibleSlice(assets, FilterSpec{Search: "building a", Status: StatusMissing})
	assert.Empty(t, got)
}

func TestVisibleSliceEquality(t *testing.T) {
	assets := DemoAssets()

	// Location and owner filters are exact matches, unlike search
	got := VisibleSlice(assets, FilterSpec{Location: "Building A, Floor 3"})
	require.Len(t, got, 1)
	assert.Equal(t, "LPT-001", got[0].AssetID)

	got = VisibleSlice(assets, FilterSpec{Location: "Building A"})
	assert.Empty(t, got)

	got = VisibleSlice(assets, FilterSpec{Owner: "Lisa Park"})
	require.Len(t, got, 1)
	assert.Equal(t, "MON-001", got[0].AssetID)
}

func TestVisibleSliceIdempotent(t *testing.T) {
	f := FilterSpec{Status: StatusMissing, Search: "lpt"}

	once := VisibleSlice(DemoAssets(), f)
	twice := VisibleSlice(once, f)
	assert.Equal(t, once, twice)
}

func TestVisibleSlicePreservesOrder(t *testing.T) {
	assets := DemoAssets()

	got := VisibleSlice(assets, FilterSpec{Search: "lpt"})
	require.Len(t, got, 2)
	assert.Equal(t, "LPT-001", got[0].AssetID)
	assert.Equal(t, "LPT-002", got[1].AssetID)
}

func TestDistinctValues(t *testing.T) {
	assets := DemoAssets()

	owners := DistinctValues(assets, "owner")
	assert.Equal(t, []string{"Lisa Park", "Mike Chen", "Sarah Johnson"}, owners)

	categories := DistinctValues(assets, "category")
	assert.Equal(t, []string{"Laptop", "Monitor"}, categories)

	statuses := DistinctValues(assets, "status")
	assert.Equal(t, []string{"Active", "Missing", "Recovered"}, statuses)

	// Unknown fields and empty values produce nothing
	assert.Empty(t, DistinctValues(assets, "serial"))
	assert.Empty(t, DistinctValues(nil, "owner"))
}
