package tracker_test

import (
	"testing"

	"github.com/Houeta/stock-flow/internal/models"
	"github.com/Houeta/stock-flow/internal/services/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_ShouldAlertInStock(t *testing.T) {
	t.Parallel()

	state := tracker.New()

	var got []bool
	for _, inStock := range []bool{true, true, false, true} {
		got = append(got, state.ShouldAlertInStock("BB1", inStock))
	}

	assert.Equal(t, []bool{true, false, false, true}, got)
}

func TestState_ShouldAlertInStock_PerSKU(t *testing.T) {
	t.Parallel()

	state := tracker.New()

	assert.True(t, state.ShouldAlertInStock("A", true))
	assert.True(t, state.ShouldAlertInStock("B", true))
	assert.False(t, state.ShouldAlertInStock("A", true))
	assert.False(t, state.ShouldAlertInStock("C", false))
}

func TestState_RememberAndReset(t *testing.T) {
	t.Parallel()

	state := tracker.New()
	ref := models.ProductRef{SKU: "CC1", Site: models.SiteCanadaComputers}

	_, ok := state.Last("CC1")
	assert.False(t, ok)

	state.Remember(models.StoreStockSnapshot(ref, map[string]int{"A": 1}))
	state.Remember(models.StoreStockSnapshot(ref, map[string]int{"B": 2}))
	state.ShouldAlertInStock("CC1", true)

	last, ok := state.Last("CC1")
	require.True(t, ok)
	assert.Equal(t, models.StoreStock{"B": 2}, last.Availability)

	state.Reset()

	_, ok = state.Last("CC1")
	assert.False(t, ok)
	assert.True(t, state.ShouldAlertInStock("CC1", true), "reset clears alert flags")
}

func TestState_ExportRestore(t *testing.T) {
	t.Parallel()

	state := tracker.New()
	state.Remember(models.PurchasableSnapshot(models.ProductRef{SKU: "b", Site: models.SiteBestBuy}, true))
	state.Remember(models.PurchasableSnapshot(models.ProductRef{SKU: "a", Site: models.SiteNewegg}, false))
	state.ShouldAlertInStock("b", true)

	exported := state.Export()
	require.Len(t, exported.Snapshots, 2)
	assert.Equal(t, "a", exported.Snapshots[0].SKU)
	assert.Equal(t, "b", exported.Snapshots[1].SKU)
	assert.Equal(t, map[string]bool{"b": true}, exported.Alerted)

	restored := tracker.New()
	restored.Restore(exported)

	last, ok := restored.Last("b")
	require.True(t, ok)
	assert.Equal(t, models.Purchasable(true), last.Availability)
	assert.False(t, restored.ShouldAlertInStock("b", true))
	assert.Equal(t, exported, restored.Export())
}
