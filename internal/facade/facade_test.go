package facade

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"waternet/internal/metrics"
	"waternet/internal/network"
)

// scenario 4 (redundant station): three parallel R->Pn->C routes, each
// capacity 10, R delivery 10. Any single route's removal still allows
// total flow 10, so every station is non-essential.
func buildRedundantNetwork(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	n.AddVertex("R", network.KindReservoir)
	n.AddVertex("P1", network.KindPumpingStation)
	n.AddVertex("P2", network.KindPumpingStation)
	n.AddVertex("P3", network.KindPumpingStation)
	n.AddVertex("C", network.KindCity)
	r, _ := n.FindVertex("R")
	r.MaxDelivery = 10
	c, _ := n.FindVertex("C")
	c.Demand = 10
	for _, p := range []string{"P1", "P2", "P3"} {
		n.AddPipe("R", p, 10, true)
		n.AddPipe(p, "C", 10, true)
	}
	return n
}

func TestNotEssential_RedundantStations(t *testing.T) {
	n := buildRedundantNetwork(t)
	f := New(n, 0)
	_, err := f.MaxFlow()
	require.NoError(t, err)

	codes, err := f.NotEssential(network.KindPumpingStation)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"P1", "P2", "P3"}, codes)
}

func TestCityFlow_UnknownCode(t *testing.T) {
	n := buildRedundantNetwork(t)
	f := New(n, 0)
	_, err := f.MaxFlow()
	require.NoError(t, err)

	_, err = f.CityFlow("ghost")
	require.Error(t, err)
}

func TestDeficitReport_FlagsUnmetDemand(t *testing.T) {
	n := network.New()
	n.AddVertex("R", network.KindReservoir)
	n.AddVertex("C", network.KindCity)
	r, _ := n.FindVertex("R")
	r.MaxDelivery = 5
	c, _ := n.FindVertex("C")
	c.Demand = 10
	n.AddPipe("R", "C", 5, true)

	f := New(n, 0)
	_, err := f.MaxFlow()
	require.NoError(t, err)

	rows := f.DeficitReport()
	require.Len(t, rows, 1)
	require.Equal(t, "C", rows[0].City)
	require.InDelta(t, 5, rows[0].Deficit, network.Epsilon)
}

func TestFacade_RecorderCountsAblationsAndLoadBalanceRounds(t *testing.T) {
	n := buildRedundantNetwork(t)
	f := New(n, 0)
	f.Recorder = metrics.NewRecorder()
	_, err := f.MaxFlow()
	require.NoError(t, err)

	_, err = f.ComponentImpact("P1")
	require.NoError(t, err)
	require.InDelta(t, 1, testutil.ToFloat64(f.Recorder.AblationsTotal), 1e-9)

	_, err = f.NotEssential(network.KindPumpingStation)
	require.NoError(t, err)
	require.InDelta(t, 4, testutil.ToFloat64(f.Recorder.AblationsTotal), 1e-9)

	result := f.OptimizeLoad()
	require.InDelta(t, float64(result.Iterations), testutil.ToFloat64(f.Recorder.LoadBalanceRounds), 1e-9)
}

func TestEssentialPipelines_IdentifiesSolePipe(t *testing.T) {
	n := network.New()
	n.AddVertex("R", network.KindReservoir)
	n.AddVertex("C", network.KindCity)
	r, _ := n.FindVertex("R")
	r.MaxDelivery = 10
	c, _ := n.FindVertex("C")
	c.Demand = 10
	n.AddPipe("R", "C", 10, true)

	f := New(n, 0)
	_, err := f.MaxFlow()
	require.NoError(t, err)

	rows, err := f.EssentialPipelines()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Contains(t, rows[0].Cities, "C")
}
