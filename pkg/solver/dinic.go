package solver

import (
	"container/list"
	"math"

	"github.com/lintang-b-s/water-network-maxflow/pkg"
	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
	"github.com/lintang-b-s/water-network-maxflow/pkg/util"
)

const INVALID_LEVEL = math.MaxInt

type DinicMaxFlow struct {
	graph *datastructure.FlowNetwork
}

func NewDinicMaxFlow(graph *datastructure.FlowNetwork) *DinicMaxFlow {
	return &DinicMaxFlow{graph: graph}
}

// Solve computes the maximum flow from source to sink in phases. Each phase
// rebuilds the shortest-path level graph with a breadth-first search and then
// saturates it with a blocking flow, so no augmenting path of the current
// length survives into the next phase.
func (dmf *DinicMaxFlow) Solve(source, sink string) (float64, error) {
	s, t, err := resolveTerminals(dmf.graph, source, sink)
	if err != nil {
		return 0, err
	}
	dmf.graph.PrepareResidual()
	dmf.graph.ResetFlows()

	maxFlow := 0.0
	for {
		dmf.bfsComputeLevelGraph(s)
		if dmf.graph.GetVertexLevel(t) == INVALID_LEVEL {
			break
		}
		maxFlow += dmf.blockingFlow(s, t)
	}

	return maxFlow, nil
}

func (dmf *DinicMaxFlow) bfsComputeLevelGraph(source datastructure.Index) {
	for u := 0; u < dmf.graph.NumberOfVertices(); u++ {
		dmf.graph.SetVertexLevel(datastructure.Index(u), INVALID_LEVEL)
	}

	levelQueue := list.New()

	dmf.graph.SetVertexLevel(source, 0)
	levelQueue.PushBack(source)

	for levelQueue.Len() > 0 {
		u := levelQueue.Front().Value.(datastructure.Index)

		uLevel := dmf.graph.GetVertexLevel(u)
		level := uLevel + 1

		dmf.graph.ForEachVertexEdges(u, func(edge *datastructure.PipeEdge) {
			target := edge.GetTo()

			residual := edge.GetResidualCapacity()
			if residual > pkg.EPSILON && dmf.graph.GetVertexLevel(target) > level {
				dmf.graph.SetVertexLevel(target, level)
				levelQueue.PushBack(target)
			}
		})

		levelQueue.Remove(levelQueue.Front())
	}
}

// dfsAugmentingPath. perform dfs from nodeId to find augmenting path in the
// level graph. Every vertex resumes from its last considered edge, and a vertex
// that turns out to be a dead end gets its level invalidated so later probes of
// this phase skip it immediately.
func (dmf *DinicMaxFlow) dfsAugmentingPath(nodeId, sink datastructure.Index, maxFlow float64) float64 {
	// termination

	if nodeId == sink || maxFlow <= pkg.EPSILON {
		return maxFlow
	}

	for ; dmf.graph.GetLastEdgeIndex(nodeId) < dmf.graph.GetVertexEdgesSize(nodeId); dmf.graph.IncrementLastEdgeIndex(nodeId) {
		j := dmf.graph.GetLastEdgeIndex(nodeId)
		edge := dmf.graph.GetEdgeOfVertex(nodeId, j)
		v := edge.GetTo()
		residual := edge.GetResidualCapacity()
		if dmf.graph.GetVertexLevel(v) != dmf.graph.GetVertexLevel(nodeId)+1 {
			continue
		}

		if flow := dmf.dfsAugmentingPath(v, sink, util.MinFloat64(residual, maxFlow)); flow > pkg.EPSILON {
			dmf.graph.PushFlow(edge, flow)
			return flow
		}
	}
	dmf.graph.SetVertexLevel(nodeId, INVALID_LEVEL)

	return 0
}

func (dmf *DinicMaxFlow) blockingFlow(source, sink datastructure.Index) float64 {
	flowIncrease := 0.0
	dmf.resetCurrentEdges()

	for {
		flow := dmf.dfsAugmentingPath(source, sink, float64(pkg.INF_FLOW))
		if flow <= pkg.EPSILON {
			break
		}
		flowIncrease += flow
	}

	return flowIncrease
}

func (dmf *DinicMaxFlow) resetCurrentEdges() {
	for i := 0; i < dmf.graph.NumberOfVertices(); i++ {
		dmf.graph.SetLastEdgeIndex(datastructure.Index(i), 0)
	}
}
