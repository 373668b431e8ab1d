package solver

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/water-network-maxflow/pkg"
	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
)

// ValidateFlow checks a completed flow assignment against the flow network
// axioms, see CLRS section 26.1 & 26.2. Useful after a solve to confirm the
// assignment is a feasible flow before reporting it.
func ValidateFlow(graph *datastructure.FlowNetwork, source, sink string) error {
	s, t, err := resolveTerminals(graph, source, sink)
	if err != nil {
		return err
	}

	incomingFlow := make([]float64, graph.NumberOfVertices())
	outgoingFlow := make([]float64, graph.NumberOfVertices())

	var checkErr error
	graph.ForEdgeList(func(edge *datastructure.PipeEdge, eId int) {
		if checkErr != nil {
			return
		}

		flow := edge.GetFlow()
		if flow > 0 {
			outgoingFlow[edge.GetFrom()] += flow
			incomingFlow[edge.GetTo()] += flow
		}

		// Capacity constraint for all edges, flow(u,v) <= c(u,v)
		if flow > edge.GetCapacity()+pkg.EPSILON {
			checkErr = fmt.Errorf("capacity constraint violated on %s -> %s: flow %g > capacity %g",
				graph.LabelOf(edge.GetFrom()), graph.LabelOf(edge.GetTo()), flow, edge.GetCapacity())
			return
		}

		// Skew symmetry, flow(u,v) = -flow(v,u)
		reversed := graph.GetReversedEdge(edge)
		if math.Abs(flow+reversed.GetFlow()) > pkg.EPSILON {
			checkErr = fmt.Errorf("skew symmetry violated on %s -> %s: %g vs %g",
				graph.LabelOf(edge.GetFrom()), graph.LabelOf(edge.GetTo()), flow, reversed.GetFlow())
		}
	})
	if checkErr != nil {
		return checkErr
	}

	for u := datastructure.Index(0); u < datastructure.Index(graph.NumberOfVertices()); u++ {
		if u == s || u == t {
			continue
		}
		// Flow conservation, sum over incoming flow of a vertex not in source or sink must equal to sum over outgoing flow
		if math.Abs(incomingFlow[u]-outgoingFlow[u]) > pkg.EPSILON {
			return fmt.Errorf("flow conservation violated at %s: in %g, out %g",
				graph.LabelOf(u), incomingFlow[u], outgoingFlow[u])
		}
	}

	// outgoing flow from source must equal to incoming flow to sink
	sourceNet := 0.0
	graph.ForEachVertexEdges(s, func(edge *datastructure.PipeEdge) {
		sourceNet += edge.GetFlow()
	})
	sinkNet := 0.0
	graph.ForEdgeList(func(edge *datastructure.PipeEdge, eId int) {
		if edge.GetTo() == t {
			sinkNet += edge.GetFlow()
		}
	})
	if math.Abs(sourceNet-sinkNet) > pkg.EPSILON {
		return fmt.Errorf("net outflow of %s (%g) does not match net inflow of %s (%g)",
			source, sourceNet, sink, sinkNet)
	}

	return nil
}
