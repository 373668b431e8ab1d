package solver

import (
	"container/list"

	"github.com/lintang-b-s/water-network-maxflow/pkg"
	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
	"github.com/lintang-b-s/water-network-maxflow/pkg/util"
)

// AugmentationStep records one augmenting path found by Edmonds-Karp: the path
// edges from source to sink, the flow pushed along it, and the running total
// after the push.
type AugmentationStep struct {
	path      []*datastructure.PipeEdge
	pathFlow  float64
	totalFlow float64
}

func (step AugmentationStep) GetPath() []*datastructure.PipeEdge {
	return step.path
}

func (step AugmentationStep) GetPathFlow() float64 {
	return step.pathFlow
}

func (step AugmentationStep) GetTotalFlow() float64 {
	return step.totalFlow
}

// PathLabels expands the path edges to the node names they visit, source first.
func (step AugmentationStep) PathLabels(graph *datastructure.FlowNetwork) []string {
	if len(step.path) == 0 {
		return nil
	}
	labels := make([]string, 0, len(step.path)+1)
	labels = append(labels, graph.LabelOf(step.path[0].GetFrom()))
	for _, edge := range step.path {
		labels = append(labels, graph.LabelOf(edge.GetTo()))
	}
	return labels
}

type EdmondsKarp struct {
	graph *datastructure.FlowNetwork
}

func NewEdmondsKarp(graph *datastructure.FlowNetwork) *EdmondsKarp {
	return &EdmondsKarp{graph: graph}
}

// Solve computes the maximum flow from source to sink by repeatedly augmenting
// along a fewest-hops admissible path. Any flow already on the network is
// cleared first, so re-solving the same network gives the same trace. The
// returned steps replay the whole run in order.
func (ek *EdmondsKarp) Solve(source, sink string) ([]AugmentationStep, float64, error) {
	s, t, err := resolveTerminals(ek.graph, source, sink)
	if err != nil {
		return nil, 0, err
	}
	ek.graph.PrepareResidual()
	ek.graph.ResetFlows()

	steps := make([]AugmentationStep, 0)
	maxFlow := 0.0
	for {
		ek.graph.ResetPrev()

		path, bottleneck := ek.bfsAugmentingPath(s, t)
		if bottleneck <= pkg.EPSILON {
			break
		}

		for _, edge := range path {
			ek.graph.PushFlow(edge, bottleneck)
		}
		maxFlow += bottleneck
		steps = append(steps, AugmentationStep{
			path:      path,
			pathFlow:  bottleneck,
			totalFlow: maxFlow,
		})
	}

	return steps, maxFlow, nil
}

// bfsAugmentingPath searches the residual network breadth-first and returns the
// admissible source-sink path with its bottleneck residual capacity, or a nil
// path when the sink is unreachable. Flows are not modified here.
func (ek *EdmondsKarp) bfsAugmentingPath(source, sink datastructure.Index) ([]*datastructure.PipeEdge, float64) {
	queue := list.New()

	queue.PushBack(source)

	prevSource := &datastructure.PipeEdge{}
	ek.graph.SetPrev(source, prevSource)

	for queue.Len() > 0 {
		u := queue.Remove(queue.Front()).(datastructure.Index)

		if u == sink {
			break
		}

		ek.graph.ForEachVertexEdges(u, func(e *datastructure.PipeEdge) {
			if ek.graph.GetPrev(e.GetTo()) == nil && e.GetResidualCapacity() > pkg.EPSILON {
				ek.graph.SetPrev(e.GetTo(), e)
				queue.PushBack(e.GetTo())
			}
		})
	}

	if ek.graph.GetPrev(sink) == nil {
		return nil, 0
	}

	bottleneck := float64(pkg.INF_FLOW)
	pathLength := 0

	for e := ek.graph.GetPrev(sink); e != prevSource; e = ek.graph.GetPrev(e.GetFrom()) {
		bottleneck = util.MinFloat64(bottleneck, e.GetResidualCapacity())
		pathLength++
	}

	path := make([]*datastructure.PipeEdge, pathLength)
	for e := ek.graph.GetPrev(sink); e != prevSource; e = ek.graph.GetPrev(e.GetFrom()) {
		pathLength--
		path[pathLength] = e
	}

	return path, bottleneck
}
