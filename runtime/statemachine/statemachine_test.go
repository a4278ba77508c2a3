package statemachine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entforge/entforge"
	"github.com/entforge/entforge/rules"
)

// orderVariants is the canonical order-status scenario: Delivered,
// Cancelled and Refunded are terminal.
func orderVariants() []Variant {
	return []Variant{
		{Name: "Pending"},
		{Name: "Paid"},
		{Name: "Shipped"},
		{Name: "Delivered", Final: true},
		{Name: "Cancelled", Final: true},
		{Name: "Refunded", Final: true},
	}
}

func orderOverride() map[string][]string {
	return map[string][]string{
		"Pending": {"Paid", "Cancelled"},
		"Paid":    {"Shipped", "Refunded"},
		"Shipped": {"Delivered"},
	}
}

func TestResolveWithOverride(t *testing.T) {
	g, err := Resolve(orderVariants(), orderOverride(), &rules.Default().Transitions)
	require.NoError(t, err)

	t.Run("transitions follow declared edges", func(t *testing.T) {
		assert.True(t, g.CanTransition("Pending", "Paid"))
		assert.True(t, g.CanTransition("Paid", "Refunded"))
		assert.False(t, g.CanTransition("Pending", "Shipped"))
		assert.False(t, g.CanTransition("Delivered", "Refunded"))
	})

	t.Run("final iff no outgoing edges", func(t *testing.T) {
		for _, name := range g.Nodes() {
			assert.Equal(t, len(g.Edges(name)) == 0, g.IsFinal(name), name)
		}
		assert.True(t, g.IsFinal("Delivered"))
		assert.False(t, g.IsFinal("Pending"))
	})

	t.Run("cancellation requires an edge into the cancel sink", func(t *testing.T) {
		assert.True(t, g.CanCancel("Pending"))
		assert.False(t, g.CanCancel("Shipped"))
		assert.False(t, g.CanCancel("Cancelled"))
	})

	t.Run("refund requires an edge into the refund sink", func(t *testing.T) {
		assert.True(t, g.CanRefund("Paid"))
		assert.False(t, g.CanRefund("Pending"))
		assert.False(t, g.CanRefund("Refunded"))
	})

	t.Run("matching is case sensitive", func(t *testing.T) {
		assert.False(t, g.HasNode("pending"))
		assert.False(t, g.CanTransition("pending", "paid"))
	})
}

func TestResolveDefaultTopology(t *testing.T) {
	defaults := &rules.Default().Transitions

	t.Run("known variants use the table edges", func(t *testing.T) {
		g, err := Resolve(orderVariants(), nil, defaults)
		require.NoError(t, err)

		assert.True(t, g.CanTransition("Pending", "Paid"))
		assert.True(t, g.CanTransition("Pending", "Cancelled"))
		assert.True(t, g.CanTransition("Paid", "Refunded"))
		assert.True(t, g.IsFinal("Delivered"))
		// Delivered is declared terminal, so the table's Delivered edges
		// are dropped.
		assert.False(t, g.CanTransition("Delivered", "Refunded"))
	})

	t.Run("unknown variants chain linearly", func(t *testing.T) {
		g, err := Resolve([]Variant{
			{Name: "Draft"},
			{Name: "Review"},
			{Name: "Published", Final: true},
		}, nil, defaults)
		require.NoError(t, err)

		assert.True(t, g.CanTransition("Draft", "Review"))
		assert.True(t, g.CanTransition("Review", "Published"))
		assert.False(t, g.CanTransition("Draft", "Published"))
		assert.True(t, g.IsFinal("Published"))
	})

	t.Run("flags add sink edges", func(t *testing.T) {
		g, err := Resolve([]Variant{
			{Name: "Draft", Cancellable: true},
			{Name: "Review"},
			{Name: "Published", Final: true},
			{Name: "Cancelled", Final: true},
		}, nil, defaults)
		require.NoError(t, err)

		assert.True(t, g.CanCancel("Draft"))
		assert.False(t, g.CanCancel("Review"))
	})
}

func TestResolveErrors(t *testing.T) {
	defaults := &rules.Default().Transitions

	t.Run("ambiguous terminal state", func(t *testing.T) {
		// The last declared variant has no outgoing edges and is not
		// declared terminal.
		_, err := Resolve([]Variant{
			{Name: "Draft"},
			{Name: "Stuck"},
		}, nil, defaults)
		require.Error(t, err)
		assert.True(t, errors.Is(err, entforge.ErrAmbiguousTerminal))

		var ambiguous *AmbiguousTerminalError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, "Stuck", ambiguous.State)
	})

	t.Run("override referencing undeclared variant", func(t *testing.T) {
		_, err := Resolve(orderVariants(), map[string][]string{
			"Pending": {"Archived"},
		}, defaults)
		require.Error(t, err)
		assert.True(t, errors.Is(err, entforge.ErrInvalidSpec))
	})

	t.Run("override with outgoing edges from a terminal", func(t *testing.T) {
		_, err := Resolve(orderVariants(), map[string][]string{
			"Pending":   {"Paid"},
			"Paid":      {"Delivered"},
			"Shipped":   {"Delivered"},
			"Delivered": {"Pending"},
		}, defaults)
		require.Error(t, err)
		assert.True(t, errors.Is(err, entforge.ErrInvalidSpec))
	})

	t.Run("empty variant list", func(t *testing.T) {
		_, err := Resolve(nil, nil, defaults)
		require.Error(t, err)
	})
}

func TestGraphDeterministicOrder(t *testing.T) {
	g, err := Resolve(orderVariants(), orderOverride(), &rules.Default().Transitions)
	require.NoError(t, err)

	assert.Equal(t, []string{"Pending", "Paid", "Shipped", "Delivered", "Cancelled", "Refunded"}, g.Nodes())
	assert.Equal(t, []string{"Paid", "Cancelled"}, g.Edges("Pending"))
}
