package algorithms

import (
	"testing"

	"github.com/stretchr/testify/require"

	"waternet/internal/network"
)

// scenario 1 (trivial): R (delivery 10) -> pipe capacity 10 -> City (demand 10).
func TestMaxFlow_Trivial(t *testing.T) {
	n := network.New()
	n.AddVertex("R", network.KindReservoir)
	n.AddVertex("C", network.KindCity)
	r, _ := n.FindVertex("R")
	r.MaxDelivery = 10
	c, _ := n.FindVertex("C")
	c.Demand = 10
	n.AddPipe("R", "C", 10, true)

	result, err := MaxFlow(n)
	require.NoError(t, err)
	require.InDelta(t, 10, result.TotalFlow, network.Epsilon)
	require.InDelta(t, 10, c.Flow, network.Epsilon)
}

// scenario 2 (split): R (15) -> [A, B two unit-capacity stations] -> C (demand 20).
// Expected total flow = 2, deficit 18.
func TestMaxFlow_Split(t *testing.T) {
	n := network.New()
	n.AddVertex("R", network.KindReservoir)
	n.AddVertex("A", network.KindPumpingStation)
	n.AddVertex("B", network.KindPumpingStation)
	n.AddVertex("C", network.KindCity)
	r, _ := n.FindVertex("R")
	r.MaxDelivery = 15
	c, _ := n.FindVertex("C")
	c.Demand = 20
	n.AddPipe("R", "A", 1, true)
	n.AddPipe("R", "B", 1, true)
	n.AddPipe("A", "C", 1, true)
	n.AddPipe("B", "C", 1, true)

	result, err := MaxFlow(n)
	require.NoError(t, err)
	require.InDelta(t, 2, result.TotalFlow, network.Epsilon)
	require.InDelta(t, 2, c.Flow, network.Epsilon)
}

func TestMaxFlow_NoReservoirsIsDegenerate(t *testing.T) {
	n := network.New()
	n.AddVertex("C", network.KindCity)
	c, _ := n.FindVertex("C")
	c.Demand = 5

	_, err := MaxFlow(n)
	require.Error(t, err)
}

func TestMaxFlow_NoCitiesIsDegenerate(t *testing.T) {
	n := network.New()
	n.AddVertex("R", network.KindReservoir)
	r, _ := n.FindVertex("R")
	r.MaxDelivery = 5

	_, err := MaxFlow(n)
	require.Error(t, err)
}
