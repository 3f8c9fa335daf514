package network

// testAndVisit enqueues w the first time it is reached with positive
// residual, recording the edge by which it was reached. Grounded in the
// original Algorithms.cpp testAndVisit: a neighbour is claimed once.
func (n *Network) testAndVisit(queue *[]int, edgeIdx, w int, residual float64) {
	vertex := n.vertices[w]
	if !vertex.visited && residual > Epsilon {
		vertex.visited = true
		vertex.pathEdge = edgeIdx
		*queue = append(*queue, w)
	}
}

func (n *Network) resetScratch() {
	for _, v := range n.vertices {
		v.visited = false
		v.pathEdge = -1
	}
}

// edgeExclusion names a pipe's both directions for find_path_excluding_edge.
type edgeExclusion struct {
	a, b           int
	unidirectional bool
}

func (n *Network) edgeMatchesExclusion(e *Edge, excl *edgeExclusion) bool {
	if e.Origin == excl.a && e.Destination == excl.b {
		return true
	}
	if !excl.unidirectional && e.Origin == excl.b && e.Destination == excl.a {
		return true
	}
	return false
}

// findPath is the shared BFS kernel. excludeVertex is -1 for none.
func (n *Network) findPath(s, t int, excludeVertex int, excl *edgeExclusion) bool {
	n.resetScratch()
	if s == excludeVertex || t == excludeVertex {
		return false
	}
	src := n.vertices[s]
	src.visited = true
	queue := []int{s}
	target := n.vertices[t]
	for len(queue) > 0 && !target.visited {
		cur := queue[0]
		queue = queue[1:]
		v := n.vertices[cur]
		for _, ei := range v.Out {
			e := n.edges[ei]
			w := e.Destination
			if w == excludeVertex {
				continue
			}
			if excl != nil && n.edgeMatchesExclusion(e, excl) {
				continue
			}
			n.testAndVisit(&queue, ei, w, e.ResidualForward())
		}
		for _, ei := range v.In {
			e := n.edges[ei]
			w := e.Origin
			if w == excludeVertex {
				continue
			}
			if excl != nil && n.edgeMatchesExclusion(e, excl) {
				continue
			}
			n.testAndVisit(&queue, ei, w, e.Flow)
		}
	}
	return target.visited
}

// FindPath performs the plain residual BFS from s to t.
func (n *Network) FindPath(s, t string) bool {
	si, ok1 := n.codeIndex[s]
	ti, ok2 := n.codeIndex[t]
	if !ok1 || !ok2 {
		return false
	}
	return n.findPath(si, ti, -1, nil)
}

// FindPathExcludingVertex relaxes only to vertices whose code is not
// blocked. blocked itself is never enqueued, including as s or t.
func (n *Network) FindPathExcludingVertex(s, t, blocked string) bool {
	si, ok1 := n.codeIndex[s]
	ti, ok2 := n.codeIndex[t]
	if !ok1 || !ok2 {
		return false
	}
	bi, ok := n.codeIndex[blocked]
	if !ok {
		bi = -1
	}
	return n.findPath(si, ti, bi, nil)
}

// FindPathExcludingEdge refuses edge A->B, and also B->A when the pipe
// is bidirectional (unidirectional == false).
func (n *Network) FindPathExcludingEdge(s, t, a, b string, unidirectional bool) bool {
	si, ok1 := n.codeIndex[s]
	ti, ok2 := n.codeIndex[t]
	if !ok1 || !ok2 {
		return false
	}
	ai, ok3 := n.codeIndex[a]
	bi, ok4 := n.codeIndex[b]
	if !ok3 || !ok4 {
		return n.findPath(si, ti, -1, nil)
	}
	excl := &edgeExclusion{a: ai, b: bi, unidirectional: unidirectional}
	return n.findPath(si, ti, -1, excl)
}
