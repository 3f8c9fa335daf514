package algorithms

import (
	"testing"

	"github.com/stretchr/testify/require"

	"waternet/internal/network"
)

// scenario 3 (alt path): two disjoint paths R->P1->C and R->P2->C, each
// capacity 5; R delivery 10, C demand 10. station_out_of_commission(P1)
// should drop total flow to 5.
func buildAltPathNetwork(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	n.AddVertex("R", network.KindReservoir)
	n.AddVertex("P1", network.KindPumpingStation)
	n.AddVertex("P2", network.KindPumpingStation)
	n.AddVertex("C", network.KindCity)
	r, _ := n.FindVertex("R")
	r.MaxDelivery = 10
	c, _ := n.FindVertex("C")
	c.Demand = 10
	n.AddPipe("R", "P1", 5, true)
	n.AddPipe("P1", "C", 5, true)
	n.AddPipe("R", "P2", 5, true)
	n.AddPipe("P2", "C", 5, true)
	return n
}

func TestStationOutOfCommission_AltPath(t *testing.T) {
	n := buildAltPathNetwork(t)
	result, err := MaxFlow(n)
	require.NoError(t, err)
	require.InDelta(t, 10, result.TotalFlow, network.Epsilon)

	require.NoError(t, StationOutOfCommission(n, "P1"))
	c, _ := n.FindVertex("C")
	require.InDelta(t, 5, c.Flow, network.Epsilon)

	p1, _ := n.FindVertex("P1")
	require.False(t, p1.HasFlow(n))
}

func TestStationOutOfCommission_UnknownCode(t *testing.T) {
	n := buildAltPathNetwork(t)
	_, err := MaxFlow(n)
	require.NoError(t, err)
	err = StationOutOfCommission(n, "ghost")
	require.Error(t, err)
}

// scenario 6 (edge ablation of essential pipe): a single pipe carries
// all flow; its ablation must drop total flow to zero.
func TestPipelineOutOfCommission_EssentialPipe(t *testing.T) {
	n := network.New()
	n.AddVertex("R", network.KindReservoir)
	n.AddVertex("C", network.KindCity)
	r, _ := n.FindVertex("R")
	r.MaxDelivery = 10
	c, _ := n.FindVertex("C")
	c.Demand = 10
	n.AddPipe("R", "C", 10, true)

	_, err := MaxFlow(n)
	require.NoError(t, err)
	require.InDelta(t, 10, c.Flow, network.Epsilon)

	require.NoError(t, PipelineOutOfCommission(n, "R", "C", true))
	require.InDelta(t, 0, c.Flow, network.Epsilon)
}

func TestPipelineOutOfCommission_Bidirectional_DrainsBothEndpoints(t *testing.T) {
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
	n.AddPipe("A", "B", 5, false)
	n.AddPipe("B", "C", 10, true)

	_, err := MaxFlow(n)
	require.NoError(t, err)

	require.NoError(t, PipelineOutOfCommission(n, "A", "B", false))
	require.InDelta(t, 0, c.Flow, network.Epsilon)

	a, _ := n.FindVertex("A")
	b, _ := n.FindVertex("B")
	require.False(t, a.HasFlow(n))
	require.False(t, b.HasFlow(n))
}
