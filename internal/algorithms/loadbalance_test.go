package algorithms

import (
	"testing"

	"github.com/stretchr/testify/require"

	"waternet/internal/network"
)

// Grounded in scenario 5 (bidirectional balancing): a saturated direct
// route coexists with a bidirectional alternate route of lower
// capacity. optimize_load must not change total flow and must not
// increase either variance.
func buildBidirectionalNetwork(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	n.AddVertex("R", network.KindReservoir)
	n.AddVertex("A", network.KindPumpingStation)
	n.AddVertex("B", network.KindPumpingStation)
	n.AddVertex("C", network.KindCity)
	r, _ := n.FindVertex("R")
	r.MaxDelivery = 10
	c, _ := n.FindVertex("C")
	c.Demand = 10
	n.AddPipe("R", "A", 10, true)
	n.AddPipe("A", "C", 10, true)
	n.AddPipe("A", "B", 5, false)
	n.AddPipe("B", "C", 10, true)
	return n
}

func TestOptimizeLoad_PreservesTotalFlow(t *testing.T) {
	n := buildBidirectionalNetwork(t)
	base, err := MaxFlow(n)
	require.NoError(t, err)
	require.InDelta(t, 10, base.TotalFlow, network.Epsilon)

	result := OptimizeLoad(n, 0)

	totalAfter := 0.0
	for _, v := range n.Vertices() {
		if v.Kind == network.KindCity {
			totalAfter += v.Flow
		}
	}
	require.InDelta(t, 10, totalAfter, network.Epsilon)
	require.LessOrEqual(t, result.After.AbsVariance, result.Before.AbsVariance+network.Epsilon)
	require.LessOrEqual(t, result.After.RelVariance, result.Before.RelVariance+network.Epsilon)
}

func TestOptimizeLoad_RespectsHardIterationCap(t *testing.T) {
	n := buildBidirectionalNetwork(t)
	_, err := MaxFlow(n)
	require.NoError(t, err)

	result := OptimizeLoad(n, 1)
	require.LessOrEqual(t, result.Iterations, 1)
}
