package solver

import (
	"fmt"

	"github.com/lintang-b-s/water-network-maxflow/pkg"
	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
)

// CutEdge is one saturated pipe crossing the minimum cut, reported with the
// node names and the original capacity of the pipe.
type CutEdge struct {
	from     string
	to       string
	capacity float64
}

func NewCutEdge(from, to string, capacity float64) CutEdge {
	return CutEdge{
		from:     from,
		to:       to,
		capacity: capacity,
	}
}

func (ce CutEdge) GetFrom() string {
	return ce.from
}

func (ce CutEdge) GetTo() string {
	return ce.to
}

func (ce CutEdge) GetCapacity() float64 {
	return ce.capacity
}

// MinCut partitions the nodes into the source side (flag set) and the sink side
// (flag unset) and lists the pipes crossing from the former into the latter.
type MinCut struct {
	flags    []bool
	cutEdges []CutEdge
}

func NewMinCut(numberOfVertices int) *MinCut {
	return &MinCut{
		flags:    make([]bool, numberOfVertices),
		cutEdges: make([]CutEdge, 0),
	}
}

func (mc *MinCut) SetFlag(u datastructure.Index, flag bool) {
	mc.flags[u] = flag
}

func (mc *MinCut) GetFlag(u datastructure.Index) bool {
	return mc.flags[u]
}

func (mc *MinCut) GetCutEdges() []CutEdge {
	return mc.cutEdges
}

func (mc *MinCut) NumberOfCutEdges() int {
	return len(mc.cutEdges)
}

// TotalCapacity is the capacity of the cut. On a maximum flow assignment it
// equals the max-flow value (max-flow min-cut theorem).
func (mc *MinCut) TotalCapacity() float64 {
	total := 0.0
	for _, cutEdge := range mc.cutEdges {
		total += cutEdge.capacity
	}
	return total
}

type MinCutExtractor struct {
	graph *datastructure.FlowNetwork
}

func NewMinCutExtractor(graph *datastructure.FlowNetwork) *MinCutExtractor {
	return &MinCutExtractor{graph: graph}
}

// Extract walks the residual network from the source over arcs with positive
// residual capacity and reports every pipe leaving the reachable set, in the
// order the pipes were added to the network. Pipes with capacity 0 are left out
// of the report even when they structurally cross the cut. An empty result
// means the network has no bottleneck. The flow assignment already on the graph
// is read, not modified, so run a solver first.
func (mce *MinCutExtractor) Extract(source string) (*MinCut, error) {
	s, ok := mce.graph.IndexOf(source)
	if !ok {
		return nil, fmt.Errorf("%w: source %q", datastructure.ErrUnknownNode, source)
	}

	minCut := NewMinCut(mce.graph.NumberOfVertices())

	stack := []datastructure.Index{s}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if minCut.GetFlag(u) {
			continue
		}
		minCut.SetFlag(u, true)

		mce.graph.ForEachVertexEdges(u, func(edge *datastructure.PipeEdge) {
			if edge.GetResidualCapacity() > pkg.EPSILON && !minCut.GetFlag(edge.GetTo()) {
				stack = append(stack, edge.GetTo())
			}
		})
	}

	mce.graph.ForEdgeList(func(edge *datastructure.PipeEdge, eId int) {
		if minCut.GetFlag(edge.GetFrom()) && !minCut.GetFlag(edge.GetTo()) && edge.GetCapacity() > 0 {
			minCut.cutEdges = append(minCut.cutEdges, NewCutEdge(
				mce.graph.LabelOf(edge.GetFrom()),
				mce.graph.LabelOf(edge.GetTo()),
				edge.GetCapacity(),
			))
		}
	})

	return minCut, nil
}
