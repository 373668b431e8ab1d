package solver

import (
	"fmt"

	"github.com/lintang-b-s/water-network-maxflow/pkg"
	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
)

// FlowPath is one source-to-sink delivery route carrying part of the max flow.
type FlowPath struct {
	nodes  []string
	amount float64
}

func (fp FlowPath) GetNodes() []string {
	return fp.nodes
}

func (fp FlowPath) GetAmount() float64 {
	return fp.amount
}

type FlowDecomposer struct {
	graph *datastructure.FlowNetwork
}

func NewFlowDecomposer(graph *datastructure.FlowNetwork) *FlowDecomposer {
	return &FlowDecomposer{graph: graph}
}

// Decompose splits a completed flow assignment into simple source-to-sink paths
// with amounts. It works on a clone, the caller's assignment stays intact. Each
// round walks positive-flow arcs from the source to the sink and peels off the
// path's bottleneck amount, so every round zeroes at least one arc and the sum
// of amounts equals the flow leaving the source. Positive flow remaining once
// no walk reaches the sink anymore sits on directed cycles; the paths found so
// far are returned together with ErrCyclicFlow.
func (fd *FlowDecomposer) Decompose(source, sink string) ([]FlowPath, error) {
	s, t, err := resolveTerminals(fd.graph, source, sink)
	if err != nil {
		return nil, err
	}

	work := fd.graph.Clone()
	work.PrepareResidual()

	paths := make([]FlowPath, 0)
	for {
		walk, bottleneck := fd.findPositiveFlowWalk(work, s, t)
		if len(walk) == 0 {
			break
		}

		for _, edge := range walk {
			edge.AddFlow(-bottleneck)
		}
		paths = append(paths, FlowPath{
			nodes:  fd.walkLabels(work, s, walk),
			amount: bottleneck,
		})
	}

	leftover := 0.0
	work.ForEdgeList(func(edge *datastructure.PipeEdge, eId int) {
		if edge.GetFlow() > pkg.EPSILON {
			leftover += edge.GetFlow()
		}
	})
	if leftover > pkg.EPSILON {
		return paths, fmt.Errorf("%w: %g MLD unattributed", ErrCyclicFlow, leftover)
	}

	return paths, nil
}

// findPositiveFlowWalk follows arcs with strictly positive flow from source
// until the sink is reached, backtracking out of dead ends. The per-vertex
// resume index skips arcs a previous probe already rejected, and the visited
// marks keep the walk free of repeated nodes. Returns the walk edges and the
// minimum flow seen along them, or an empty walk when the sink is unreachable
// over positive flow.
func (fd *FlowDecomposer) findPositiveFlowWalk(work *datastructure.FlowNetwork,
	source, sink datastructure.Index) ([]*datastructure.PipeEdge, float64) {
	for u := 0; u < work.NumberOfVertices(); u++ {
		work.SetLastEdgeIndex(datastructure.Index(u), 0)
		work.SetVisited(datastructure.Index(u), false)
	}

	walk := make([]*datastructure.PipeEdge, 0)
	u := source
	work.SetVisited(source, true)

	for u != sink {
		advanced := false
		for ; work.GetLastEdgeIndex(u) < work.GetVertexEdgesSize(u); work.IncrementLastEdgeIndex(u) {
			edge := work.GetEdgeOfVertex(u, work.GetLastEdgeIndex(u))
			v := edge.GetTo()
			if edge.GetFlow() <= pkg.EPSILON || work.IsVisited(v) {
				continue
			}

			walk = append(walk, edge)
			work.SetVisited(v, true)
			u = v
			advanced = true
			break
		}
		if advanced {
			continue
		}

		if len(walk) == 0 {
			return nil, 0
		}
		lastEdge := walk[len(walk)-1]
		walk = walk[:len(walk)-1]
		work.SetVisited(u, false)
		u = lastEdge.GetFrom()
		work.IncrementLastEdgeIndex(u)
	}

	bottleneck := float64(pkg.INF_FLOW)
	for _, edge := range walk {
		if edge.GetFlow() < bottleneck {
			bottleneck = edge.GetFlow()
		}
	}

	return walk, bottleneck
}

func (fd *FlowDecomposer) walkLabels(work *datastructure.FlowNetwork,
	source datastructure.Index, walk []*datastructure.PipeEdge) []string {
	labels := make([]string, 0, len(walk)+1)
	labels = append(labels, work.LabelOf(source))
	for _, edge := range walk {
		labels = append(labels, work.LabelOf(edge.GetTo()))
	}
	return labels
}
