// Package algorithms implements the max-flow solver (C3), the load
// balancer (C5), and the ablation engine (C6), all built on the
// network package's BFS/augment kernel.
package algorithms

import (
	"waternet/internal/apperror"
	"waternet/internal/network"
)

// MaxFlowResult reports the outcome of an Edmonds-Karp solve.
type MaxFlowResult struct {
	TotalFlow  float64
	Iterations int
}

// MaxFlow seeds the super-source and super-target (creating them on
// first call, per §9) and repeatedly augments along shortest
// residual-BFS paths until none remain. Complexity O(V*E^2).
func MaxFlow(n *network.Network) (*MaxFlowResult, error) {
	if err := validateForSolve(n); err != nil {
		return nil, err
	}

	ss, err := n.EnsureSuperSource()
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeDegenerateTopology, "cannot seed super-source", err)
	}
	st, err := n.EnsureSuperTarget()
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeDegenerateTopology, "cannot seed super-target", err)
	}

	result := &MaxFlowResult{}
	for n.FindPath(ss, st) {
		f := n.MinResidualAlongPath(ss, st)
		if f <= network.Epsilon {
			break
		}
		n.AugmentPath(ss, st, f)
		result.TotalFlow += f
		result.Iterations++
	}
	n.RefreshFlows()
	return result, nil
}

func validateForSolve(n *network.Network) error {
	reservoirs, cities := 0, 0
	for _, v := range n.Vertices() {
		switch v.Kind {
		case network.KindReservoir:
			reservoirs++
		case network.KindCity:
			cities++
		}
	}
	if reservoirs == 0 {
		return apperror.New(apperror.CodeDegenerateTopology, "network has no reservoirs")
	}
	if cities == 0 {
		return apperror.New(apperror.CodeDegenerateTopology, "network has no cities")
	}
	return nil
}
