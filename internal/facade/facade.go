// Package facade bundles the analysis queries of C8: city flow,
// deficits, essential-component enumerations, and load optimisation.
// Every operation that changes flows, except MaxFlow itself, runs
// against a fresh snapshot (C7) so the baseline network survives;
// CityFlow, DeficitReport and Metrics read the baseline directly.
package facade

import (
	"waternet/internal/algorithms"
	"waternet/internal/apperror"
	"waternet/internal/metrics"
	"waternet/internal/network"
)

// Facade wraps a baseline network on which MaxFlow has already run.
type Facade struct {
	Baseline          *network.Network
	MaxLoadIterations int

	// Recorder, if set, is bumped for every ablation and load-balance
	// round this façade drives. Left nil, counting is skipped.
	Recorder *metrics.Recorder
}

// New wraps a baseline network.
func New(n *network.Network, maxLoadIterations int) *Facade {
	return &Facade{Baseline: n, MaxLoadIterations: maxLoadIterations}
}

// MaxFlow runs the Edmonds-Karp solver on the baseline once, establishing
// the flow every subsequent what-if compares against.
func (f *Facade) MaxFlow() (*algorithms.MaxFlowResult, error) {
	return algorithms.MaxFlow(f.Baseline)
}

// CityFlow returns the realised flow at a city.
func (f *Facade) CityFlow(code string) (float64, error) {
	v, ok := f.Baseline.FindVertex(code)
	if !ok || v.Kind != network.KindCity {
		return 0, apperror.NewWithField(apperror.CodeUnknownEntity, "no such city", "code")
	}
	return v.Flow, nil
}

// DeficitRow is one line of the deficit report.
type DeficitRow struct {
	City    string
	Demand  float64
	Deficit float64
}

// DeficitReport lists every city whose demand exceeds its realised flow.
func (f *Facade) DeficitReport() []DeficitRow {
	var rows []DeficitRow
	for _, v := range f.Baseline.Vertices() {
		if v.Kind != network.KindCity {
			continue
		}
		if v.Demand > v.Flow+network.Epsilon {
			rows = append(rows, DeficitRow{City: v.Code, Demand: v.Demand, Deficit: v.Demand - v.Flow})
		}
	}
	return rows
}

// NotEssential returns the codes of every vertex of the given kind
// (Reservoir or Station) whose ablation leaves total max-flow unchanged.
func (f *Facade) NotEssential(kind network.VertexKind) ([]string, error) {
	if kind != network.KindReservoir && kind != network.KindPumpingStation {
		return nil, apperror.New(apperror.CodeDegenerateTopology, "not_essential is only defined for reservoirs and stations")
	}
	baselineTotal := f.totalFlow(f.Baseline)

	var candidates []string
	for _, v := range f.Baseline.Vertices() {
		if v.Kind == kind {
			candidates = append(candidates, v.Code)
		}
	}

	var notEssential []string
	for _, code := range candidates {
		snap := f.Baseline.Clone()
		if err := algorithms.StationOutOfCommission(snap, code); err != nil {
			return nil, err
		}
		f.countAblation()
		if f.totalFlow(snap) >= baselineTotal-network.Epsilon {
			notEssential = append(notEssential, code)
		}
	}
	return notEssential, nil
}

// CityImpactRow compares a city's realised flow before and after an
// ablation.
type CityImpactRow struct {
	City    string
	OldFlow float64
	NewFlow float64
	Changed bool
}

// ComponentImpact runs station_out_of_commission on code against a
// snapshot and reports the per-city before/after flow table.
func (f *Facade) ComponentImpact(code string) ([]CityImpactRow, error) {
	snap := f.Baseline.Clone()
	if err := algorithms.StationOutOfCommission(snap, code); err != nil {
		return nil, err
	}
	f.countAblation()
	return f.cityDiff(snap), nil
}

// PipelineImpact runs pipeline_out_of_commission against a snapshot and
// reports the per-city before/after flow table.
func (f *Facade) PipelineImpact(a, b string, unidirectional bool) ([]CityImpactRow, error) {
	snap := f.Baseline.Clone()
	if err := algorithms.PipelineOutOfCommission(snap, a, b, unidirectional); err != nil {
		return nil, err
	}
	f.countAblation()
	return f.cityDiff(snap), nil
}

func (f *Facade) cityDiff(after *network.Network) []CityImpactRow {
	var rows []CityImpactRow
	for _, v := range f.Baseline.Vertices() {
		if v.Kind != network.KindCity {
			continue
		}
		nv, _ := after.FindVertex(v.Code)
		rows = append(rows, CityImpactRow{
			City:    v.Code,
			OldFlow: v.Flow,
			NewFlow: nv.Flow,
			Changed: absDiff(v.Flow, nv.Flow) > network.Epsilon,
		})
	}
	return rows
}

// PipeAffectedCities maps each pipe (identified by its two endpoints) to
// the cities whose realised flow changes when that pipe is ablated.
type PipeAffectedCities struct {
	ServicePointA string
	ServicePointB string
	Cities        []string
}

// EssentialPipelines enumerates, for every pipe, the cities whose
// realised flow changes when it is ablated (§4.8).
func (f *Facade) EssentialPipelines() ([]PipeAffectedCities, error) {
	var results []PipeAffectedCities
	for _, p := range f.Baseline.Pipes {
		rows, err := f.PipelineImpact(p.ServicePointA, p.ServicePointB, p.Unidirectional)
		if err != nil {
			return nil, err
		}
		var affected []string
		for _, r := range rows {
			if r.Changed {
				affected = append(affected, r.City)
			}
		}
		results = append(results, PipeAffectedCities{
			ServicePointA: p.ServicePointA,
			ServicePointB: p.ServicePointB,
			Cities:        affected,
		})
	}
	return results, nil
}

// PipelinesAffectingCity inverts EssentialPipelines: for a given city,
// the list of pipes whose ablation changes its realised flow.
func (f *Facade) PipelinesAffectingCity(city string) ([]string, error) {
	all, err := f.EssentialPipelines()
	if err != nil {
		return nil, err
	}
	var pipes []string
	for _, p := range all {
		for _, c := range p.Cities {
			if c == city {
				pipes = append(pipes, p.ServicePointA+"-"+p.ServicePointB)
				break
			}
		}
	}
	return pipes, nil
}

// OptimizeLoad runs the load balancer (C5) on a snapshot and returns its
// before/after metrics without mutating the baseline.
func (f *Facade) OptimizeLoad() *algorithms.LoadBalanceResult {
	snap := f.Baseline.Clone()
	result := algorithms.OptimizeLoad(snap, f.MaxLoadIterations)
	if f.Recorder != nil {
		f.Recorder.LoadBalanceRounds.Add(float64(result.Iterations))
	}
	return result
}

// countAblation bumps the ablations counter when a recorder is attached.
func (f *Facade) countAblation() {
	if f.Recorder != nil {
		f.Recorder.AblationsTotal.Inc()
	}
}

// Metrics computes the current slack statistics of the baseline.
func (f *Facade) Metrics() metrics.Metrics {
	return metrics.Compute(f.Baseline)
}

func (f *Facade) totalFlow(n *network.Network) float64 {
	total := 0.0
	for _, v := range n.Vertices() {
		if v.Kind == network.KindCity {
			total += v.Flow
		}
	}
	return total
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
