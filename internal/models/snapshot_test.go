package models_test

import (
	"testing"

	"github.com/Houeta/stock-flow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSite(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.SiteBestBuy, models.ParseSite(" BestBuy "))
	assert.Equal(t, models.SiteCanadaComputers, models.ParseSite("canadacomputers"))
	assert.Equal(t, models.Site("amazon"), models.ParseSite("Amazon"))
	assert.False(t, models.ParseSite("amazon").Known())
	assert.Equal(t, models.KindPurchasable, models.SiteNewegg.Kind())
}

func TestNewSnapshot(t *testing.T) {
	t.Parallel()

	bestbuy := models.ProductRef{SKU: "BB1", TargetURL: "https://bb.test/1", Site: models.SiteBestBuy}
	canada := models.ProductRef{SKU: "CC1", TargetURL: "https://cc.test/1", Site: models.SiteCanadaComputers}
	other := models.ProductRef{SKU: "X1", TargetURL: "https://x.test/1", Site: "amazon"}

	t.Run("matching shape", func(t *testing.T) {
		t.Parallel()

		snap, err := models.NewSnapshot(bestbuy, models.Purchasable(true))
		require.NoError(t, err)
		assert.Equal(t, "BB1", snap.SKU)
		assert.True(t, snap.InStock())
	})

	t.Run("store stock drops empty locations", func(t *testing.T) {
		t.Parallel()

		snap, err := models.NewSnapshot(canada, models.StoreStock{"Ottawa": 2, "Kanata": 0})
		require.NoError(t, err)
		assert.Equal(t, models.StoreStock{"Ottawa": 2}, snap.Availability)
	})

	t.Run("mismatched shape", func(t *testing.T) {
		t.Parallel()

		_, err := models.NewSnapshot(canada, models.Purchasable(true))
		require.ErrorIs(t, err, models.ErrShapeMismatch)
	})

	t.Run("unknown site with nil data", func(t *testing.T) {
		t.Parallel()

		snap, err := models.NewSnapshot(other, nil)
		require.NoError(t, err)
		assert.Equal(t, models.Unrecognized{}, snap.Availability)
		assert.False(t, snap.InStock())
	})
}

func TestNoSignalSnapshot(t *testing.T) {
	t.Parallel()

	bb := models.NoSignalSnapshot(models.ProductRef{SKU: "BB1", Site: models.SiteBestBuy})
	assert.Equal(t, models.Purchasable(false), bb.Availability)

	cc := models.NoSignalSnapshot(models.ProductRef{SKU: "CC1", Site: models.SiteCanadaComputers})
	assert.Equal(t, models.StoreStock{}, cc.Availability)
	assert.False(t, cc.InStock())

	unknown := models.NoSignalSnapshot(models.ProductRef{SKU: "X1", Site: "amazon"})
	assert.Equal(t, models.Unrecognized{}, unknown.Availability)
}

func TestStoreStock_Locations(t *testing.T) {
	t.Parallel()

	stock := models.NewStoreStock(map[string]int{"b": 1, "A": 2, "a": 3})
	assert.Equal(t, []string{"A", "a", "b"}, stock.Locations())
}
