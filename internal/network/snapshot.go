package network

// Clone produces an independent network with the same vertices, edges,
// capacities, flows, and reverse-pairing (C7). Mutating the clone never
// affects the receiver: indices are preserved identically (the arena
// layout does not change across a clone), so Reverse links and
// super-source/target indices remap trivially.
func (n *Network) Clone() *Network {
	out := &Network{
		codeIndex:   make(map[string]int, len(n.codeIndex)),
		superSource: n.superSource,
		superTarget: n.superTarget,
	}
	out.vertices = make([]*Vertex, len(n.vertices))
	for i, v := range n.vertices {
		cv := &Vertex{
			Code:        v.Code,
			Kind:        v.Kind,
			MaxDelivery: v.MaxDelivery,
			Demand:      v.Demand,
			Flow:        v.Flow,
			pathEdge:    -1,
		}
		cv.Out = append([]int(nil), v.Out...)
		cv.In = append([]int(nil), v.In...)
		out.vertices[i] = cv
	}
	for code, idx := range n.codeIndex {
		out.codeIndex[code] = idx
	}
	out.edges = make([]*Edge, len(n.edges))
	for i, e := range n.edges {
		ce := *e
		out.edges[i] = &ce
	}
	out.Pipes = append([]Pipe(nil), n.Pipes...)
	return out
}
