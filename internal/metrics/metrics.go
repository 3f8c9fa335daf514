// Package metrics implements the per-edge slack statistics (C4) used by
// the load balancer and reported by the analysis façade.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"waternet/internal/network"
)

// Metrics bundles the absolute and relative slack statistics over every
// non-super edge, plus demand and achieved-flow totals.
type Metrics struct {
	AbsAverage float64
	AbsMax     float64
	AbsVariance float64
	AbsStdDev  float64

	RelAverage  float64
	RelMax      float64
	RelVariance float64
	RelStdDev   float64

	TotalDemand float64
	TotalFlow   float64
}

// Compute walks every edge in n that is not incident to the
// super-source or super-target (§4.4/§9) and aggregates slack stats via
// gonum/stat, plus the network's total demand and achieved flow.
func Compute(n *network.Network) Metrics {
	var abs, rel []float64
	for _, e := range n.Edges() {
		if n.IsSuperEdge(e) {
			continue
		}
		if e.Capacity <= network.Epsilon {
			// Zero-capacity edges are skipped entirely per the
			// division-by-zero guard in §9, not just their relative slack.
			continue
		}
		abs = append(abs, e.AbsSlack())
		rel = append(rel, e.RelSlack())
	}

	var m Metrics
	if len(abs) > 0 {
		m.AbsAverage = stat.Mean(abs, nil)
		m.AbsVariance = stat.PopVariance(abs, nil)
		m.AbsStdDev = math.Sqrt(m.AbsVariance)
		m.AbsMax = maxOf(abs)

		m.RelAverage = stat.Mean(rel, nil)
		m.RelVariance = stat.PopVariance(rel, nil)
		m.RelStdDev = math.Sqrt(m.RelVariance)
		m.RelMax = maxOf(rel)
	}

	for _, v := range n.Vertices() {
		if v.Kind == network.KindCity {
			m.TotalDemand += v.Demand
			m.TotalFlow += v.Flow
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}
