package algorithms

import (
	"math"
	"sort"

	"waternet/internal/metrics"
	"waternet/internal/network"
)

// LoadBalanceResult reports the metrics immediately after the baseline
// solve and after optimize_load has converged or hit its safety cap.
type LoadBalanceResult struct {
	Before     metrics.Metrics
	After      metrics.Metrics
	Iterations int
}

// OptimizeLoad iteratively redistributes flow off the tightest edges
// onto slack alternatives without changing total throughput (C5).
// maxIterations is the hard safety cap from configuration; 0 means
// "default to edge count" per spec §6. A pass that raises either
// absolute or relative variance is undone and ends the loop.
func OptimizeLoad(n *network.Network, maxIterations int) *LoadBalanceResult {
	result := &LoadBalanceResult{Before: metrics.Compute(n)}

	iterCap := maxIterations
	if iterCap <= 0 {
		iterCap = n.EdgeCount()
	}
	if iterCap <= 0 {
		iterCap = 1
	}

	prev := result.Before
	for iter := 0; iter < iterCap; iter++ {
		saved := make([]float64, n.EdgeCount())
		for i, e := range n.Edges() {
			saved[i] = e.Flow
		}
		runRebalancePass(n)
		n.RefreshFlows()
		cur := metrics.Compute(n)
		result.Iterations++
		if cur.AbsVariance > prev.AbsVariance+network.Epsilon || cur.RelVariance > prev.RelVariance+network.Epsilon {
			for i, e := range n.Edges() {
				e.Flow = saved[i]
			}
			break
		}
		if !anyStrictlyDecreased(prev, cur) {
			break
		}
		prev = cur
	}

	n.RefreshFlows()
	result.After = metrics.Compute(n)
	return result
}

// anyStrictlyDecreased reports whether any of the four tracked
// quantities strictly decreased from prev to cur; the load balancer
// keeps iterating only while it is still making progress on at least
// one of them (§4.5's open termination question, resolved in
// SPEC_FULL.md by also enforcing the hard iteration cap above).
func anyStrictlyDecreased(prev, cur metrics.Metrics) bool {
	return cur.AbsAverage < prev.AbsAverage-network.Epsilon ||
		cur.RelAverage < prev.RelAverage-network.Epsilon ||
		cur.AbsVariance < prev.AbsVariance-network.Epsilon ||
		cur.RelVariance < prev.RelVariance-network.Epsilon
}

type rebalanceCandidate struct {
	edgeIdx int
	relSlack float64
	flow     float64
}

// runRebalancePass performs one sweep: sort candidate edges ascending
// by relative slack (ties broken by descending flow), and for each one
// with positive flow, shift as much of it as possible onto the widest
// alternate residual path between the same endpoints.
func runRebalancePass(n *network.Network) {
	var candidates []rebalanceCandidate
	for i, e := range n.Edges() {
		if n.IsSuperEdge(e) || e.Flow <= network.Epsilon {
			continue
		}
		candidates = append(candidates, rebalanceCandidate{edgeIdx: i, relSlack: e.RelSlack(), flow: e.Flow})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].relSlack != candidates[j].relSlack {
			return candidates[i].relSlack < candidates[j].relSlack
		}
		return candidates[i].flow > candidates[j].flow
	})

	for _, c := range candidates {
		e := n.EdgeAt(c.edgeIdx)
		if e.Flow <= network.Epsilon {
			continue
		}
		path, minResidual := widestAlternatePath(n, e.Origin, e.Destination, c.edgeIdx)
		if path == nil || minResidual <= network.Epsilon {
			continue
		}
		delta := minResidual
		if e.Flow < delta {
			delta = e.Flow
		}
		if delta <= network.Epsilon {
			continue
		}
		e.Flow -= delta
		for _, pe := range path {
			n.EdgeAt(pe).Flow += delta
		}
	}
}

// widestAlternatePath enumerates simple directed paths of positive
// residual capacity from origin to dest (excluding the edge being
// rebalanced) and returns the one whose bottleneck residual is largest,
// per spec §4.5.
func widestAlternatePath(n *network.Network, origin, dest, excludeEdge int) ([]int, float64) {
	visited := make([]bool, n.VertexCount())
	var trail []int
	var best []int
	bestMin := 0.0

	var dfs func(cur int, runningMin float64)
	dfs = func(cur int, runningMin float64) {
		if cur == dest {
			if runningMin > bestMin {
				bestMin = runningMin
				best = append([]int(nil), trail...)
			}
			return
		}
		visited[cur] = true
		for _, ei := range n.VertexAt(cur).Out {
			if ei == excludeEdge {
				continue
			}
			e := n.EdgeAt(ei)
			if visited[e.Destination] {
				continue
			}
			residual := e.ResidualForward()
			if residual <= network.Epsilon {
				continue
			}
			next := residual
			if runningMin < next {
				next = runningMin
			}
			trail = append(trail, ei)
			dfs(e.Destination, next)
			trail = trail[:len(trail)-1]
		}
		visited[cur] = false
	}
	dfs(origin, math.MaxFloat64)
	return best, bestMin
}
