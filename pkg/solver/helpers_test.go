package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
)

// lineNetwork: S->A (5), A->T (3). Max flow 3, min cut {(A,T,3)}.
func lineNetwork(t *testing.T) *datastructure.FlowNetwork {
	return buildNetwork(t, []datastructure.PipeRecord{
		datastructure.NewPipeRecord("S", "A", 5),
		datastructure.NewPipeRecord("A", "T", 3),
	})
}

// failedPipeNetwork: the line network with the A->T pipe forced offline.
func failedPipeNetwork(t *testing.T) *datastructure.FlowNetwork {
	return buildNetwork(t, []datastructure.PipeRecord{
		datastructure.NewPipeRecord("S", "A", 5),
		datastructure.NewPipeRecord("A", "T", 0),
	})
}

// parallelNetwork: two disjoint routes, S->A->T (2) and S->B->T (3). Max flow 5.
func parallelNetwork(t *testing.T) *datastructure.FlowNetwork {
	return buildNetwork(t, []datastructure.PipeRecord{
		datastructure.NewPipeRecord("S", "A", 2),
		datastructure.NewPipeRecord("S", "B", 3),
		datastructure.NewPipeRecord("A", "T", 2),
		datastructure.NewPipeRecord("B", "T", 3),
	})
}

// diamondNetwork: both branches merge in C before the sink. Max flow 2.
func diamondNetwork(t *testing.T) *datastructure.FlowNetwork {
	return buildNetwork(t, []datastructure.PipeRecord{
		datastructure.NewPipeRecord("S", "A", 1),
		datastructure.NewPipeRecord("S", "B", 1),
		datastructure.NewPipeRecord("A", "C", 1),
		datastructure.NewPipeRecord("B", "C", 1),
		datastructure.NewPipeRecord("C", "T", 2),
	})
}

// antiparallelNetwork: A and B are joined by pipes in both directions.
// Max flow 4, limited by A->B.
func antiparallelNetwork(t *testing.T) *datastructure.FlowNetwork {
	return buildNetwork(t, []datastructure.PipeRecord{
		datastructure.NewPipeRecord("S", "A", 8),
		datastructure.NewPipeRecord("A", "B", 4),
		datastructure.NewPipeRecord("B", "A", 3),
		datastructure.NewPipeRecord("B", "T", 6),
	})
}

// classicNetwork: the CLRS figure 26.1 network. Max flow 23.
func classicNetwork(t *testing.T) *datastructure.FlowNetwork {
	return buildNetwork(t, []datastructure.PipeRecord{
		datastructure.NewPipeRecord("S", "V1", 16),
		datastructure.NewPipeRecord("S", "V2", 13),
		datastructure.NewPipeRecord("V1", "V3", 12),
		datastructure.NewPipeRecord("V2", "V1", 4),
		datastructure.NewPipeRecord("V3", "V2", 9),
		datastructure.NewPipeRecord("V2", "V4", 14),
		datastructure.NewPipeRecord("V4", "V3", 7),
		datastructure.NewPipeRecord("V3", "T", 20),
		datastructure.NewPipeRecord("V4", "T", 4),
	})
}

// detourNetwork: excess must travel A->B and come back once B->T saturates.
// Max flow 3, limited by B->T.
func detourNetwork(t *testing.T) *datastructure.FlowNetwork {
	return buildNetwork(t, []datastructure.PipeRecord{
		datastructure.NewPipeRecord("S", "A", 5),
		datastructure.NewPipeRecord("A", "B", 10),
		datastructure.NewPipeRecord("B", "A", 10),
		datastructure.NewPipeRecord("B", "T", 3),
	})
}

func buildNetwork(t *testing.T, records []datastructure.PipeRecord) *datastructure.FlowNetwork {
	g, err := datastructure.NewFlowNetworkFromRecords(records)
	require.NoError(t, err)
	return g
}
