package simulation

import (
	"sort"

	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
	"github.com/lintang-b-s/water-network-maxflow/pkg/util"
)

// PipeUtilization is one physical pipe with the share of its capacity the
// flow assignment uses.
type PipeUtilization struct {
	from     string
	to       string
	flow     float64
	capacity float64
	ratio    float64
}

func (u PipeUtilization) GetFrom() string {
	return u.from
}

func (u PipeUtilization) GetTo() string {
	return u.to
}

func (u PipeUtilization) GetFlow() float64 {
	return u.flow
}

func (u PipeUtilization) GetCapacity() float64 {
	return u.capacity
}

func (u PipeUtilization) GetRatio() float64 {
	return u.ratio
}

// BuildUtilization reports every physical pipe of a solved network, busiest
// first. Negative flow on a pipe means the paired pipe carries it, so it
// counts as idle here.
func BuildUtilization(network *datastructure.FlowNetwork) []PipeUtilization {
	rows := make([]PipeUtilization, 0, network.NumberOfEdges())
	network.ForEdgeList(func(edge *datastructure.PipeEdge, eId int) {
		if network.IsSyntheticEdge(edge) {
			return
		}

		flow := edge.GetFlow()
		if flow < 0 {
			flow = 0
		}
		capacity := edge.GetCapacity()
		ratio := 0.0
		if capacity > 0 {
			ratio = util.RoundFloat(flow/capacity, 4)
		}

		rows = append(rows, PipeUtilization{
			from:     network.LabelOf(edge.GetFrom()),
			to:       network.LabelOf(edge.GetTo()),
			flow:     flow,
			capacity: capacity,
			ratio:    ratio,
		})
	})

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ratio > rows[j].ratio
	})
	return rows
}
