package algorithms

import (
	"waternet/internal/apperror"
	"waternet/internal/network"
)

// drainVertex is the C6 primitive: while v carries flow on any incident
// edge, first cancel any flow cycle touching it, then cancel any
// source-to-sink path through it, each time subtracting the cycle/path's
// minimum flow edge from every edge on it. Each iteration strictly
// reduces flow through v, so the loop terminates.
func drainVertex(n *network.Network, vIdx int) {
	for n.VertexAt(vIdx).HasFlow(n) {
		if cycle := findFlowCycle(n, vIdx); cycle != nil {
			cancelAlong(n, cycle)
			continue
		}

		ssIdx, ok1 := n.IndexOf(network.SuperSourceCode)
		stIdx, ok2 := n.IndexOf(network.SuperTargetCode)
		if !ok1 || !ok2 {
			panic(apperror.NewCritical(apperror.CodeInternalInvariant,
				"drain_vertex requires an existing baseline solve with super-source/super-target"))
		}
		toSink := findFlowPath(n, vIdx, stIdx)
		fromSource := findFlowPath(n, ssIdx, vIdx)
		if toSink == nil || fromSource == nil {
			return
		}
		full := append(append([]int{}, fromSource...), toSink...)
		cancelAlong(n, full)
	}
}

// findFlowCycle looks for a simple directed cycle through start using
// only edges carrying positive flow. It returns the edge indices of the
// cycle in traversal order, or nil if none exists.
func findFlowCycle(n *network.Network, start int) []int {
	visited := make([]bool, n.VertexCount())
	visited[start] = true
	var trail []int
	var found []int

	var dfs func(cur int) bool
	dfs = func(cur int) bool {
		for _, ei := range n.VertexAt(cur).Out {
			e := n.EdgeAt(ei)
			if e.Flow <= network.Epsilon {
				continue
			}
			if e.Destination == start {
				found = append(append([]int(nil), trail...), ei)
				return true
			}
			if visited[e.Destination] {
				continue
			}
			visited[e.Destination] = true
			trail = append(trail, ei)
			if dfs(e.Destination) {
				return true
			}
			trail = trail[:len(trail)-1]
		}
		return false
	}
	dfs(start)
	return found
}

// findFlowPath looks for a simple directed path from "from" to "to"
// using only edges carrying positive flow. Returns nil if none exists,
// or an empty (non-nil-length-0) slice if from == to.
func findFlowPath(n *network.Network, from, to int) []int {
	if from == to {
		return []int{}
	}
	visited := make([]bool, n.VertexCount())
	visited[from] = true
	var trail []int
	var found []int

	var dfs func(cur int) bool
	dfs = func(cur int) bool {
		if cur == to {
			found = append([]int(nil), trail...)
			return true
		}
		for _, ei := range n.VertexAt(cur).Out {
			e := n.EdgeAt(ei)
			if e.Flow <= network.Epsilon {
				continue
			}
			if visited[e.Destination] {
				continue
			}
			visited[e.Destination] = true
			trail = append(trail, ei)
			if dfs(e.Destination) {
				return true
			}
			trail = trail[:len(trail)-1]
		}
		return false
	}
	dfs(from)
	return found
}

// cancelAlong subtracts the minimum flow among edges from every edge in
// edges, zeroing out at least one of them.
func cancelAlong(n *network.Network, edges []int) {
	if len(edges) == 0 {
		return
	}
	min := n.EdgeAt(edges[0]).Flow
	for _, ei := range edges[1:] {
		if f := n.EdgeAt(ei).Flow; f < min {
			min = f
		}
	}
	for _, ei := range edges {
		n.EdgeAt(ei).Flow -= min
	}
}

func remaximize(n *network.Network, excludeVertex string) {
	for n.FindPathExcludingVertex(network.SuperSourceCode, network.SuperTargetCode, excludeVertex) {
		f := n.MinResidualAlongPath(network.SuperSourceCode, network.SuperTargetCode)
		if f <= network.Epsilon {
			break
		}
		n.AugmentPath(network.SuperSourceCode, network.SuperTargetCode, f)
	}
}

func remaximizeExcludingEdge(n *network.Network, a, b string, unidirectional bool) {
	for n.FindPathExcludingEdge(network.SuperSourceCode, network.SuperTargetCode, a, b, unidirectional) {
		f := n.MinResidualAlongPath(network.SuperSourceCode, network.SuperTargetCode)
		if f <= network.Epsilon {
			break
		}
		n.AugmentPath(network.SuperSourceCode, network.SuperTargetCode, f)
	}
}

// StationOutOfCommission drains the named vertex of all flow, then
// re-maximises flow over the network with that vertex excluded from
// every future augmenting path (C6).
func StationOutOfCommission(n *network.Network, code string) error {
	vIdx, ok := n.IndexOf(code)
	if !ok || n.IsSuperVertex(vIdx) {
		return apperror.NewWithField(apperror.CodeUnknownEntity, "no such station or reservoir", "code")
	}
	drainVertex(n, vIdx)
	remaximize(n, code)
	n.RefreshFlows()
	return nil
}

// PipelineOutOfCommission drains the pipe's origin (and, if the pipe is
// bidirectional, its destination too) of flow, then re-maximises with
// the edge A->B (and, for a bidirectional pipe, B->A too) excluded from
// every future augmenting path (C6).
func PipelineOutOfCommission(n *network.Network, a, b string, unidirectional bool) error {
	aIdx, ok := n.IndexOf(a)
	if !ok || n.IsSuperVertex(aIdx) {
		return apperror.NewWithField(apperror.CodeUnknownEntity, "no such service point", "service_point_a")
	}
	if bIdx, ok := n.IndexOf(b); !ok || n.IsSuperVertex(bIdx) {
		return apperror.NewWithField(apperror.CodeUnknownEntity, "no such service point", "service_point_b")
	}

	drainVertex(n, aIdx)
	if !unidirectional {
		bIdx, _ := n.IndexOf(b)
		drainVertex(n, bIdx)
	}
	remaximizeExcludingEdge(n, a, b, unidirectional)
	n.RefreshFlows()
	return nil
}
