package network

import "fmt"

// SuperSourceCode and SuperTargetCode are the reserved codes used for the
// synthetic vertices. The ingest package does not reject them; if an
// ingested vertex already uses one, EnsureSuperSource/EnsureSuperTarget
// report a code collision error.
const (
	SuperSourceCode = "__super_source__"
	SuperTargetCode = "__super_target__"
)

// EnsureSuperSource creates the super-source and one outgoing edge per
// reservoir, capacity = reservoir.MaxDelivery, the first time it is
// called, and returns its code on every subsequent call without
// rebuilding it (see SPEC_FULL.md: created lazily, kept for graph
// lifetime).
func (n *Network) EnsureSuperSource() (string, error) {
	if n.superSource >= 0 {
		return SuperSourceCode, nil
	}
	if !n.AddVertex(SuperSourceCode, KindSuperSource) {
		return "", fmt.Errorf("network: super-source code collision")
	}
	idx, _ := n.codeIndex[SuperSourceCode]
	n.superSource = idx
	reservoirCount := 0
	for _, v := range n.vertices {
		if v.Kind == KindReservoir {
			n.AddEdge(SuperSourceCode, v.Code, v.MaxDelivery, 0)
			reservoirCount++
		}
	}
	if reservoirCount == 0 {
		return "", fmt.Errorf("network: no reservoirs to attach to super-source")
	}
	return SuperSourceCode, nil
}

// EnsureSuperTarget creates the super-target and one incoming edge per
// city, capacity = city.Demand.
func (n *Network) EnsureSuperTarget() (string, error) {
	if n.superTarget >= 0 {
		return SuperTargetCode, nil
	}
	if !n.AddVertex(SuperTargetCode, KindSuperTarget) {
		return "", fmt.Errorf("network: super-target code collision")
	}
	idx, _ := n.codeIndex[SuperTargetCode]
	n.superTarget = idx
	cityCount := 0
	for _, v := range n.vertices {
		if v.Kind == KindCity {
			n.AddEdge(v.Code, SuperTargetCode, v.Demand, 0)
			cityCount++
		}
	}
	if cityCount == 0 {
		return "", fmt.Errorf("network: no cities to attach to super-target")
	}
	return SuperTargetCode, nil
}

// HasSuperSource and HasSuperTarget report whether the synthetic
// vertices have been created yet.
func (n *Network) HasSuperSource() bool { return n.superSource >= 0 }
func (n *Network) HasSuperTarget() bool { return n.superTarget >= 0 }

// IsSuperVertex reports whether idx is the super-source or super-target,
// used by the metrics calculator to exclude incident edges (§4.4/§9).
func (n *Network) IsSuperVertex(idx int) bool {
	return idx == n.superSource || idx == n.superTarget
}

// IsSuperEdge reports whether an edge is incident to either synthetic
// vertex.
func (n *Network) IsSuperEdge(e *Edge) bool {
	return n.IsSuperVertex(e.Origin) || n.IsSuperVertex(e.Destination)
}
