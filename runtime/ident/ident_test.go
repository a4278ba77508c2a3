package ident

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixedTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	fixedUUID = uuid.MustParse("a1b2c3d4-9e8f-4711-a0b1-c2d3e4f50617")
)

func fixedFactory(opts ...Option) *Factory {
	base := []Option{
		WithClock(func() time.Time { return fixedTime }),
		WithEntropy(func() uuid.UUID { return fixedUUID }),
	}
	return NewFactory(append(base, opts...)...)
}

func TestGenerate(t *testing.T) {
	f := fixedFactory()

	t.Run("deterministic under injected clock and entropy", func(t *testing.T) {
		assert.Equal(t, "PED-20260314150926-A1B2C3D4", f.OrderNumber())
		assert.Equal(t, f.OrderNumber(), f.OrderNumber())
	})

	t.Run("fixed prefixes", func(t *testing.T) {
		assert.Equal(t, "NF-20260314150926-A1B2C3D4", f.InvoiceNumber())
		assert.Equal(t, "BR-20260314150926-A1B2C3D4", f.TrackingCode())
		assert.Equal(t, "CLI-20260314150926-A1B2C3D4", f.CustomerCode())
		assert.Equal(t, "TXN-20260314150926-A1B2C3D4", f.TransactionID())
	})

	t.Run("total length stretches the payload", func(t *testing.T) {
		fl := fixedFactory(WithSpec(Spec{Prefix: "PED", TotalLength: 30}))
		id := fl.GenerateID()
		assert.Len(t, id, 30)
		c := Parse(id)
		require.NotNil(t, c)
		assert.Equal(t, "A1B2C3D49E8", c.Payload)
	})

	t.Run("total length accounts for the checksum segment", func(t *testing.T) {
		fl := fixedFactory(WithSpec(Spec{Prefix: "PED", TotalLength: 30, Checksum: true}))
		id := fl.GenerateID()
		assert.Len(t, id, 30)
		assert.True(t, Valid(id, "PED"))
	})

	t.Run("checksum appends one digit", func(t *testing.T) {
		fc := fixedFactory(WithSpec(Spec{Prefix: "PED", Checksum: true}))
		id := fc.GenerateID()
		require.Len(t, id, len("PED-20260314150926-A1B2C3D4")+2)
		c := Parse(id)
		require.NotNil(t, c)
		assert.GreaterOrEqual(t, c.Check, 0)
	})
}

func TestRoundTrip(t *testing.T) {
	f := fixedFactory()

	t.Run("components survive generate then parse", func(t *testing.T) {
		c := Parse(f.OrderNumber())
		require.NotNil(t, c)
		assert.Equal(t, "PED", c.Prefix)
		assert.Equal(t, fixedTime, c.Stamp)
		assert.Equal(t, "A1B2C3D4", c.Payload)
		assert.Equal(t, -1, c.Check)
	})

	t.Run("sku category comes back verbatim", func(t *testing.T) {
		c := Parse(f.SKU("electronics"))
		require.NotNil(t, c)
		assert.Equal(t, "electronics", c.Category)
	})

	t.Run("hyphenated category is sanitized, not lost", func(t *testing.T) {
		c := Parse(f.SKU("home-garden"))
		require.NotNil(t, c)
		assert.Equal(t, "homegarden", c.Category)
	})

	t.Run("prefix with no usable characters falls back", func(t *testing.T) {
		c := Parse(f.Generate("--"))
		require.NotNil(t, c)
		assert.Equal(t, "ID", c.Prefix)
	})

	t.Run("real clock and entropy still round-trip", func(t *testing.T) {
		f := NewFactory(WithSpec(Spec{Checksum: true}))
		for i := 0; i < 32; i++ {
			id := f.Generate("TXN")
			assert.True(t, Valid(id, "TXN"), id)
		}
	})
}

func TestShortCode(t *testing.T) {
	t.Run("deterministic under injected entropy", func(t *testing.T) {
		f := fixedFactory()
		assert.Equal(t, "budw8rht", f.ShortCode(8))
	})

	t.Run("lengths beyond one entropy draw are filled", func(t *testing.T) {
		f := NewFactory()
		code := f.ShortCode(40)
		require.Len(t, code, 40)
		for _, r := range code {
			assert.Contains(t, shortCodeCharset, string(r))
		}
	})

	t.Run("non-positive lengths yield nothing", func(t *testing.T) {
		f := NewFactory()
		assert.Empty(t, f.ShortCode(0))
		assert.Empty(t, f.ShortCode(-3))
	})
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, id := range []string{
		"",
		"PED",
		"PED-20260314150926",
		"PED-20260314150926-A1B2C3D4-7-extra",
		"-20260314150926-A1B2C3D4",
		"PED-20261432150926-A1B2C3D4", // month 14
		"PED-2026031415092-A1B2C3D4",  // 13-digit stamp
		"PED-20260314150926-A1B2#3D4",
		"PED-20260314150926-A1B2C3D4-x",
	} {
		assert.Nil(t, Parse(id), "%q", id)
	}

	t.Run("checksum mismatch is rejected", func(t *testing.T) {
		f := fixedFactory(WithSpec(Spec{Checksum: true}))
		id := f.Generate("PED")
		bad := id[:len(id)-1] + string(rune('0'+(int(id[len(id)-1]-'0')+1)%10))
		assert.NotNil(t, Parse(id))
		assert.Nil(t, Parse(bad))
	})
}

func TestBarcode(t *testing.T) {
	t.Run("known EAN-13 vector", func(t *testing.T) {
		assert.True(t, ValidateBarcode("4006381333931"))
		assert.False(t, ValidateBarcode("4006381333932"))
		assert.False(t, ValidateBarcode("400638133393"))
		assert.False(t, ValidateBarcode("40063813339a1"))
	})

	t.Run("generated barcodes validate", func(t *testing.T) {
		f := fixedFactory()
		code := f.Barcode("789", "1234")
		require.Len(t, code, 13)
		assert.Equal(t, "7891234", code[:7])
		assert.True(t, ValidateBarcode(code))
	})
}
