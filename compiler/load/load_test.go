package load

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entforge/entforge"
)

const orderSpec = `
types:
  - name: Order
    kind: struct
    attributes:
      table: pedidos
      cache_ttl: 300
      prefix: PED
      checksum: true
      x_team: fulfillment
    fields:
      - name: email
        type: string
      - name: customer_document
        type: string
        attributes:
          validate: national_tax_id
      - name: order_number
        type: string
        attributes:
          identity: true
  - name: OrderStatus
    kind: enum
    attributes:
      transitions:
        Pending: [Paid, Cancelled]
        Paid: Shipped
        Shipped: [Delivered]
    variants:
      - name: Pending
        cancellable: true
      - name: Paid
        cancellable: true
        refundable: true
      - name: Shipped
      - name: Delivered
        final: true
      - name: Cancelled
        final: true
`

func TestParse(t *testing.T) {
	spec, err := Parse([]byte(orderSpec))
	require.NoError(t, err)
	require.Len(t, spec.Types, 2)

	order := spec.Type("Order")
	require.NotNil(t, order)
	assert.Equal(t, KindStruct, order.Kind)
	require.Len(t, order.Fields, 3)

	t.Run("attribute order follows the document", func(t *testing.T) {
		keys := make([]string, len(order.Attributes))
		for i, a := range order.Attributes {
			keys[i] = a.Key
		}
		assert.Equal(t, []string{"table", "cache_ttl", "prefix", "checksum", "x_team"}, keys)
	})

	t.Run("unknown attributes are retained verbatim", func(t *testing.T) {
		v, ok := order.Attributes.Lookup("x_team")
		require.True(t, ok)
		assert.Equal(t, "fulfillment", v)
	})

	t.Run("typed accessors", func(t *testing.T) {
		table, ok := order.Attributes.String(AttrTable)
		require.True(t, ok)
		assert.Equal(t, "pedidos", table)

		ttl, ok := order.Attributes.Int(AttrCacheTTL)
		require.True(t, ok)
		assert.Equal(t, 300, ttl)

		checksum, ok := order.Attributes.Bool(AttrChecksum)
		require.True(t, ok)
		assert.True(t, checksum)

		_, ok = order.Attributes.Lookup("missing")
		assert.False(t, ok)
	})

	t.Run("field attributes", func(t *testing.T) {
		doc := order.Field("customer_document")
		require.NotNil(t, doc)
		rule, ok := doc.Attributes.String(AttrValidate)
		require.True(t, ok)
		assert.Equal(t, "national_tax_id", rule)
	})

	t.Run("variant flags", func(t *testing.T) {
		status := spec.Type("OrderStatus")
		require.NotNil(t, status)
		assert.True(t, status.Variant("Paid").Refundable)
		assert.True(t, status.Variant("Delivered").Final)
		assert.False(t, status.Variant("Shipped").Cancellable)
	})
}

func TestTransitionOverride(t *testing.T) {
	spec, err := Parse([]byte(orderSpec))
	require.NoError(t, err)

	override, err := spec.Type("OrderStatus").TransitionOverride()
	require.NoError(t, err)

	t.Run("single target normalizes to a list", func(t *testing.T) {
		assert.Equal(t, []string{"Shipped"}, override["Paid"])
	})
	assert.Equal(t, []string{"Paid", "Cancelled"}, override["Pending"])

	t.Run("absent attribute yields nil without error", func(t *testing.T) {
		got, err := spec.Type("Order").TransitionOverride()
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"empty document", `types: []`},
		{"duplicate type", "types:\n  - {name: A, kind: struct, fields: [{name: x, type: string}]}\n  - {name: A, kind: struct, fields: [{name: x, type: string}]}"},
		{"duplicate field", "types:\n  - name: A\n    kind: struct\n    fields:\n      - {name: x, type: string}\n      - {name: x, type: string}"},
		{"struct without fields", "types:\n  - {name: A, kind: struct}"},
		{"enum without variants", "types:\n  - {name: A, kind: enum}"},
		{"enum with fields", "types:\n  - name: A\n    kind: enum\n    variants: [{name: On}]\n    fields: [{name: x, type: string}]"},
		{"bad kind", "types:\n  - {name: A, kind: union, fields: [{name: x, type: string}]}"},
		{"negative cache ttl", "types:\n  - name: A\n    kind: struct\n    attributes: {cache_ttl: -1}\n    fields: [{name: x, type: string}]"},
		{"cache ttl not an integer", "types:\n  - name: A\n    kind: struct\n    attributes: {cache_ttl: soon}\n    fields: [{name: x, type: string}]"},
		{"length out of bounds", "types:\n  - name: A\n    kind: struct\n    attributes: {length: 5}\n    fields: [{name: x, type: string}]"},
		{"prefix with a dash", "types:\n  - name: A\n    kind: struct\n    attributes: {prefix: AB-CD}\n    fields: [{name: x, type: string}]"},
		{"prefix with punctuation", "types:\n  - name: A\n    kind: struct\n    attributes: {prefix: 'PED#'}\n    fields: [{name: x, type: string}]"},
		{"checksum not boolean", "types:\n  - name: A\n    kind: struct\n    attributes: {checksum: yes please}\n    fields: [{name: x, type: string}]"},
		{"transitions on a struct", "types:\n  - name: A\n    kind: struct\n    attributes:\n      transitions: {x: y}\n    fields: [{name: x, type: string}]"},
		{"transition to undeclared variant", "types:\n  - name: A\n    kind: enum\n    attributes:\n      transitions: {On: Off}\n    variants: [{name: On}]"},
		{"unknown validation rule", "types:\n  - name: A\n    kind: struct\n    fields:\n      - name: x\n        type: string\n        attributes: {validate: vibes}"},
		{"name not an identifier", "types:\n  - {name: 9A, kind: struct, fields: [{name: x, type: string}]}"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, entforge.ErrInvalidSpec), "%v", err)
			assert.True(t, IsSpecError(err))
		})
	}

	t.Run("error names the offending attribute", func(t *testing.T) {
		_, err := Parse([]byte("types:\n  - name: A\n    kind: struct\n    attributes: {cache_ttl: -1}\n    fields: [{name: x, type: string}]"))
		var se *SpecError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "A", se.Type)
		assert.Equal(t, AttrCacheTTL, se.Attr)
	})
}
