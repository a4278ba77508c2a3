package rules

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entforge/entforge"
)

func TestDefaultTables(t *testing.T) {
	tables := Default()
	require.NotNil(t, tables)

	t.Run("version is set", func(t *testing.T) {
		assert.NotEmpty(t, tables.Version)
	})

	t.Run("ICMS lookup", func(t *testing.T) {
		assert.True(t, tables.Tax.ICMSRate("SP").Equal(decimal.RequireFromString("0.18")))
		assert.True(t, tables.Tax.ICMSRate("rj").Equal(decimal.RequireFromString("0.20")))
	})

	t.Run("unknown state resolves to default", func(t *testing.T) {
		assert.False(t, tables.Tax.KnownState("XX"))
		assert.True(t, tables.Tax.ICMSRate("XX").Equal(tables.Tax.DefaultICMS.Dec()))
	})

	t.Run("ISS lookup is accent and case insensitive", func(t *testing.T) {
		want := decimal.RequireFromString("0.05")
		assert.True(t, tables.Tax.ISSRate("São Paulo").Equal(want))
		assert.True(t, tables.Tax.ISSRate("SAO PAULO").Equal(want))
		assert.True(t, tables.Tax.ISSRate("sao   paulo").Equal(want))
		assert.True(t, tables.Tax.KnownCity("Curitiba"))
	})

	t.Run("unknown city resolves to default", func(t *testing.T) {
		assert.False(t, tables.Tax.KnownCity("Atlantis"))
		assert.True(t, tables.Tax.ISSRate("Atlantis").Equal(tables.Tax.DefaultISS.Dec()))
	})

	t.Run("regions cover the federation", func(t *testing.T) {
		region, ok := tables.Shipping.RegionOf("sp")
		require.True(t, ok)
		assert.Equal(t, "southeast", region)

		_, ok = tables.Shipping.RegionOf("ZZ")
		assert.False(t, ok)
	})

	t.Run("region relations are symmetric", func(t *testing.T) {
		assert.True(t, tables.Shipping.AdjacentRegions("southeast", "south"))
		assert.True(t, tables.Shipping.AdjacentRegions("south", "southeast"))
		assert.True(t, tables.Shipping.DistantRegions("north", "south"))
		assert.False(t, tables.Shipping.AdjacentRegions("north", "northeast"))
	})

	t.Run("delivery days exist for every zone and tier", func(t *testing.T) {
		for _, zone := range zoneNames {
			for _, tier := range tierNames {
				d, ok := tables.Shipping.Days(zone, tier)
				require.True(t, ok, "zone %s tier %s", zone, tier)
				assert.Positive(t, d)
			}
		}
	})

	t.Run("validation patterns resolve by name", func(t *testing.T) {
		assert.Equal(t, "email", tables.Validation.RuleFor("email"))
		assert.Equal(t, "email", tables.Validation.RuleFor("billing_email"))
		assert.Equal(t, "national_tax_id", tables.Validation.RuleFor("cpf"))
		assert.Equal(t, "postal_code", tables.Validation.RuleFor("cep"))
		assert.Equal(t, "", tables.Validation.RuleFor("nickname"))
	})
}

func TestDecodeRejectsInconsistentTables(t *testing.T) {
	t.Run("missing version", func(t *testing.T) {
		_, err := Decode([]byte("tax: {}\n"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, entforge.ErrInvalidRules))
	})

	t.Run("non-decimal rate", func(t *testing.T) {
		_, err := Decode([]byte("version: \"1\"\ntax:\n  pis: \"lots\"\n"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, entforge.ErrInvalidRules))
	})

	t.Run("tier monotonicity is enforced", func(t *testing.T) {
		doc := append([]byte(nil), defaultsYAML...)
		tables, err := Decode(doc)
		require.NoError(t, err)

		tables.Shipping.DeliveryDays["same_state"]["economy"] = 1
		tables.Shipping.DeliveryDays["same_state"]["standard"] = 5
		err = tables.finish()
		require.Error(t, err)
		assert.True(t, errors.Is(err, entforge.ErrInvalidRules))
	})
}

func TestSwap(t *testing.T) {
	custom, err := Decode(defaultsYAML)
	require.NoError(t, err)
	custom.Version = "test-swap"

	prev := Swap(custom)
	defer active.Store(nil)

	assert.NotNil(t, prev)
	assert.Equal(t, "test-swap", Active().Version)

	restored := Swap(nil)
	assert.Equal(t, "test-swap", restored.Version)
	assert.Equal(t, Default().Version, Active().Version)
}

func TestNormalizeCity(t *testing.T) {
	assert.Equal(t, "SAO PAULO", NormalizeCity("São Paulo"))
	assert.Equal(t, "BELO HORIZONTE", NormalizeCity("  belo\thorizonte "))
	assert.Equal(t, "BRASILIA", NormalizeCity("Brasília"))
}
