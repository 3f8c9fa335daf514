package network

import "math"

// MinResidualAlongPath walks t back to s via the scratch path_edge left
// by the last successful kernel call and returns the bottleneck residual.
// It panics (internal invariant violation) if no such path is recorded.
func (n *Network) MinResidualAlongPath(s, t string) float64 {
	si, _ := n.codeIndex[s]
	ti, _ := n.codeIndex[t]
	f := math.MaxFloat64
	for v := ti; v != si; {
		ei := n.vertices[v].pathEdge
		if ei < 0 {
			panic("network: MinResidualAlongPath called with no recorded path")
		}
		e := n.edges[ei]
		if e.Destination == v {
			if r := e.ResidualForward(); r < f {
				f = r
			}
			v = e.Origin
		} else {
			if e.Flow < f {
				f = e.Flow
			}
			v = e.Destination
		}
	}
	return f
}

// AugmentPath pushes f units of flow along the path recorded by the last
// kernel call, matching forward/backward semantics per vertex.
func (n *Network) AugmentPath(s, t string, f float64) {
	si, _ := n.codeIndex[s]
	ti, _ := n.codeIndex[t]
	for v := ti; v != si; {
		ei := n.vertices[v].pathEdge
		if ei < 0 {
			panic("network: AugmentPath called with no recorded path")
		}
		e := n.edges[ei]
		if e.Destination == v {
			e.Flow += f
			v = e.Origin
		} else {
			e.Flow -= f
			v = e.Destination
		}
	}
}

// Paths enumerates every simple directed path from source to dest over
// edges that currently exist (irrespective of flow), used only for
// reporting. Grounded in the original Water Supply Analysis System's
// Graph::getPaths/dfs.
func (n *Network) Paths(source, dest string) [][]EdgeRef {
	si, ok1 := n.codeIndex[source]
	di, ok2 := n.codeIndex[dest]
	if !ok1 || !ok2 {
		return nil
	}
	var results [][]EdgeRef
	visited := make([]bool, len(n.vertices))
	var trail []int

	var dfs func(cur int)
	dfs = func(cur int) {
		if cur == di {
			cp := make([]EdgeRef, len(trail))
			for i, ei := range trail {
				e := n.edges[ei]
				cp[i] = EdgeRef{
					Origin:      n.vertices[e.Origin].Code,
					Destination: n.vertices[e.Destination].Code,
					Capacity:    e.Capacity,
					Flow:        e.Flow,
				}
			}
			results = append(results, cp)
			return
		}
		visited[cur] = true
		for _, ei := range n.vertices[cur].Out {
			e := n.edges[ei]
			if visited[e.Destination] {
				continue
			}
			trail = append(trail, ei)
			dfs(e.Destination)
			trail = trail[:len(trail)-1]
		}
		visited[cur] = false
	}
	dfs(si)
	return results
}
