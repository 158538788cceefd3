package differ_test

import (
	"testing"

	"github.com/Houeta/stock-flow/internal/models"
	"github.com/Houeta/stock-flow/internal/services/differ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bestbuyRef = models.ProductRef{SKU: "BB1", TargetURL: "https://bb.test/1", Site: models.SiteBestBuy}
	neweggRef  = models.ProductRef{SKU: "NE1", TargetURL: "https://ne.test/1", Site: models.SiteNewegg}
	canadaRef  = models.ProductRef{SKU: "CC1", TargetURL: "https://cc.test/1", Site: models.SiteCanadaComputers}
	unknownRef = models.ProductRef{SKU: "X1", TargetURL: "https://x.test/1", Site: "amazon"}
)

func ptr(s models.Snapshot) *models.Snapshot { return &s }

func stock(ref models.ProductRef, q map[string]int) models.Snapshot {
	return models.StoreStockSnapshot(ref, q)
}

func TestDiff_Purchasable(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		ref      models.ProductRef
		newData  bool
		oldSnap  *models.Snapshot
		expected *models.ChangeRecord
	}{
		{
			name:    "unchanged available",
			ref:     bestbuyRef,
			newData: true,
			oldSnap: ptr(models.PurchasableSnapshot(bestbuyRef, true)),
		},
		{
			name:    "unchanged unavailable",
			ref:     neweggRef,
			newData: false,
			oldSnap: ptr(models.PurchasableSnapshot(neweggRef, false)),
		},
		{
			name:    "became available",
			ref:     bestbuyRef,
			newData: true,
			oldSnap: ptr(models.PurchasableSnapshot(bestbuyRef, false)),
			expected: &models.ChangeRecord{
				SKU: "BB1", TargetURL: "https://bb.test/1", Site: models.SiteBestBuy, Status: models.StatusAvailable,
			},
		},
		{
			name:    "went out of stock",
			ref:     neweggRef,
			newData: false,
			oldSnap: ptr(models.PurchasableSnapshot(neweggRef, true)),
			expected: &models.ChangeRecord{
				SKU: "NE1", TargetURL: "https://ne.test/1", Site: models.SiteNewegg, Status: models.StatusOutOfStock,
			},
		},
		{
			name:    "first observation unavailable",
			ref:     bestbuyRef,
			newData: false,
		},
		{
			name:    "first observation available",
			ref:     bestbuyRef,
			newData: true,
			expected: &models.ChangeRecord{
				SKU: "BB1", TargetURL: "https://bb.test/1", Site: models.SiteBestBuy, Status: models.StatusAvailable,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := differ.Diff(models.PurchasableSnapshot(tc.ref, tc.newData), tc.oldSnap)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDiff_StoreStock(t *testing.T) {
	t.Parallel()

	t.Run("unchanged quantities", func(t *testing.T) {
		t.Parallel()

		got := differ.Diff(stock(canadaRef, map[string]int{"A": 2}), ptr(stock(canadaRef, map[string]int{"A": 2})))
		assert.Nil(t, got)
	})

	t.Run("quantity changed reports new mapping", func(t *testing.T) {
		t.Parallel()

		got := differ.Diff(stock(canadaRef, map[string]int{"A": 2}), ptr(stock(canadaRef, map[string]int{"A": 3})))
		require.NotNil(t, got)
		assert.Equal(t, []models.LocationQuantity{{Location: "A", Quantity: 2}}, got.Locations)
		assert.Empty(t, got.Status)
	})

	t.Run("location disappeared", func(t *testing.T) {
		t.Parallel()

		got := differ.Diff(stock(canadaRef, map[string]int{}), ptr(stock(canadaRef, map[string]int{"A": 5})))
		require.NotNil(t, got)
		assert.NotNil(t, got.Locations)
		assert.Empty(t, got.Locations)
	})

	t.Run("all locations removed", func(t *testing.T) {
		t.Parallel()

		got := differ.Diff(stock(canadaRef, nil), ptr(stock(canadaRef, map[string]int{"Z": 1, "A": 1})))
		require.NotNil(t, got)
		assert.Empty(t, got.Locations)
	})

	t.Run("locations sorted ascending", func(t *testing.T) {
		t.Parallel()

		got := differ.Diff(stock(canadaRef, map[string]int{"Z": 1, "A": 1}), ptr(stock(canadaRef, nil)))
		require.NotNil(t, got)
		assert.Equal(t, []models.LocationQuantity{{Location: "A", Quantity: 1}, {Location: "Z", Quantity: 1}}, got.Locations)
	})

	t.Run("sorting is case sensitive", func(t *testing.T) {
		t.Parallel()

		got := differ.Diff(stock(canadaRef, map[string]int{"b": 1, "C": 4, "a": 2}), nil)
		require.NotNil(t, got)
		assert.Equal(t, []models.LocationQuantity{
			{Location: "C", Quantity: 4},
			{Location: "a", Quantity: 2},
			{Location: "b", Quantity: 1},
		}, got.Locations)
	})

	t.Run("first observation empty", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, differ.Diff(stock(canadaRef, nil), nil))
	})

	t.Run("unchanged zero is ignored", func(t *testing.T) {
		t.Parallel()

		newSnap := stock(canadaRef, map[string]int{"A": 1})
		newSnap.Availability = models.StoreStock{"A": 1, "B": 0}
		got := differ.Diff(newSnap, ptr(stock(canadaRef, map[string]int{"A": 1})))
		assert.Nil(t, got)
	})
}

func TestDiff_Unrecognized(t *testing.T) {
	t.Parallel()

	snap := models.UnrecognizedSnapshot(unknownRef)
	assert.Nil(t, differ.Diff(snap, nil))
	assert.Nil(t, differ.Diff(snap, ptr(models.UnrecognizedSnapshot(unknownRef))))
}

func TestDiff_SiteMismatchTreatsOldAsAbsent(t *testing.T) {
	t.Parallel()

	old := models.StoreStockSnapshot(models.ProductRef{SKU: "BB1", Site: models.SiteCanadaComputers}, map[string]int{"A": 1})

	assert.False(t, differ.Compatible(models.PurchasableSnapshot(bestbuyRef, false), &old))
	assert.Nil(t, differ.Diff(models.PurchasableSnapshot(bestbuyRef, false), &old))

	got := differ.Diff(models.PurchasableSnapshot(bestbuyRef, true), &old)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusAvailable, got.Status)
}

func TestDiff_Idempotent(t *testing.T) {
	t.Parallel()

	for _, data := range []bool{true, false} {
		a := models.PurchasableSnapshot(bestbuyRef, data)
		b := models.PurchasableSnapshot(bestbuyRef, data)
		assert.Nil(t, differ.Diff(a, &b))
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	assert.Nil(t, differ.Describe(models.UnrecognizedSnapshot(unknownRef)))

	rec := differ.Describe(models.PurchasableSnapshot(bestbuyRef, false))
	require.NotNil(t, rec)
	assert.Equal(t, models.StatusOutOfStock, rec.Status)
	assert.True(t, rec.HasStatus())
}
