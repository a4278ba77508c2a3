package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entforge/entforge/rules"
)

// Drives the generator directly against the default tables, the same way
// the engine does.
func TestStateMachineGeneratorDefaults(t *testing.T) {
	spec := parseSpec(t, engineSpec)
	g := StateMachineGenerator{}

	require.True(t, g.Applies(spec.Type("OrderStatus")))
	require.False(t, g.Applies(spec.Type("Order")))

	artifact, err := g.Generate(spec.Type("OrderStatus"), rules.Default())
	require.NoError(t, err)

	assert.Equal(t, "statemachine", artifact.Generator)
	assert.Equal(t, []Capability{CapPure}, artifact.Requires)
	for _, symbol := range []string{
		"OrderStatus", "OrderStatusPending", "OrderStatusRefunded",
		"orderStatusGraph", "CanTransitionTo", "ParseOrderStatus",
	} {
		assert.Contains(t, artifact.Symbols, symbol)
	}
}
