package solver

import (
	"math"

	"github.com/lintang-b-s/water-network-maxflow/pkg"
	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
	"github.com/lintang-b-s/water-network-maxflow/pkg/util"
)

type PushRelabel struct {
	graph *datastructure.FlowNetwork

	height     []int
	excess     []float64
	active     []datastructure.Index
	inWorklist []bool
}

func NewPushRelabel(graph *datastructure.FlowNetwork) *PushRelabel {
	return &PushRelabel{graph: graph}
}

// Solve computes the maximum flow from source to sink with the preflow-push
// method. The source starts at height n, every pipe leaving it is saturated,
// and nodes holding excess are discharged from a worklist. A node whose relabel
// raised its height moves to the front of the worklist and the scan restarts
// there, which keeps the worklist topologically ordered by admissible arcs
// (see CLRS section 26.5, relabel-to-front). Worklist members are never
// removed, a drained node is simply a no-op when the scan passes it again.
func (pr *PushRelabel) Solve(source, sink string) (float64, error) {
	s, t, err := resolveTerminals(pr.graph, source, sink)
	if err != nil {
		return 0, err
	}
	pr.graph.PrepareResidual()
	pr.graph.ResetFlows()

	numberOfVertices := pr.graph.NumberOfVertices()
	pr.height = make([]int, numberOfVertices)
	pr.excess = make([]float64, numberOfVertices)
	pr.active = make([]datastructure.Index, 0, numberOfVertices)
	pr.inWorklist = make([]bool, numberOfVertices)

	pr.height[s] = numberOfVertices
	pr.saturateSourcePipes(s, t)

	i := 0
	for i < len(pr.active) {
		u := pr.active[i]
		oldHeight := pr.height[u]

		pr.discharge(u, s, t)

		if pr.excess[u] > pkg.EPSILON {
			pr.relabel(u)
		}

		if pr.height[u] > oldHeight {
			copy(pr.active[1:i+1], pr.active[:i])
			pr.active[0] = u
			i = 0
		} else {
			i++
		}
	}

	return pr.graph.PositiveInflow(t), nil
}

// saturateSourcePipes pushes the full remaining capacity of every pipe leaving
// the source and seeds the worklist with the receiving nodes, in the order the
// pipes hang off the source.
func (pr *PushRelabel) saturateSourcePipes(source, sink datastructure.Index) {
	pr.graph.ForEachVertexEdges(source, func(edge *datastructure.PipeEdge) {
		residual := edge.GetResidualCapacity()
		if residual <= pkg.EPSILON {
			return
		}
		pr.graph.PushFlow(edge, residual)
		v := edge.GetTo()
		pr.excess[v] += residual
		if v != sink && !pr.inWorklist[v] {
			pr.active = append(pr.active, v)
			pr.inWorklist[v] = true
		}
	})
}

// discharge sweeps the outgoing arcs of u once, pushing excess along every
// admissible arc until the excess is gone or the arcs are exhausted. Nodes
// receiving their first excess are appended to the worklist.
func (pr *PushRelabel) discharge(u, source, sink datastructure.Index) {
	size := pr.graph.GetVertexEdgesSize(u)
	for j := 0; j < size; j++ {
		edge := pr.graph.GetEdgeOfVertex(u, j)
		if !pr.push(u, edge) {
			continue
		}

		v := edge.GetTo()
		if v != source && v != sink && pr.excess[v] > pkg.EPSILON && !pr.inWorklist[v] {
			pr.active = append(pr.active, v)
			pr.inWorklist[v] = true
		}

		if pr.excess[u] <= pkg.EPSILON {
			break
		}
	}
}

// push moves min(excess, residual) across the arc. The move is admissible only
// when the arc has residual capacity left and u sits strictly higher than the
// receiving node.
func (pr *PushRelabel) push(u datastructure.Index, edge *datastructure.PipeEdge) bool {
	v := edge.GetTo()
	if pr.height[u] <= pr.height[v] {
		return false
	}

	send := util.MinFloat64(pr.excess[u], edge.GetResidualCapacity())
	if send <= pkg.EPSILON {
		return false
	}

	pr.graph.PushFlow(edge, send)
	pr.excess[u] -= send
	pr.excess[v] += send
	return true
}

// relabel lifts u to one above its lowest residual-capacity neighbor. With no
// such neighbor the height stays put, the node cannot discharge until a
// neighbor's height changes.
func (pr *PushRelabel) relabel(u datastructure.Index) {
	minHeight := math.MaxInt
	pr.graph.ForEachVertexEdges(u, func(edge *datastructure.PipeEdge) {
		if edge.GetResidualCapacity() > pkg.EPSILON && pr.height[edge.GetTo()] < minHeight {
			minHeight = pr.height[edge.GetTo()]
		}
	})

	if minHeight < math.MaxInt {
		pr.height[u] = minHeight + 1
	}
}
