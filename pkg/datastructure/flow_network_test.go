package datastructure_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
)

type FlowNetworkSuite struct {
	suite.Suite
}

// TestAddPipeCreatesNodes: nodes appear on first mention, in mention order.
func (s *FlowNetworkSuite) TestAddPipeCreatesNodes() {
	g := datastructure.NewFlowNetwork()
	require.NoError(s.T(), g.AddPipe("S", "A", 5))
	require.NoError(s.T(), g.AddPipe("A", "T", 3))

	require.Equal(s.T(), 3, g.NumberOfVertices())
	require.Equal(s.T(), 2, g.NumberOfEdges())

	u, ok := g.IndexOf("S")
	require.True(s.T(), ok)
	require.Equal(s.T(), "S", g.LabelOf(u))

	_, ok = g.IndexOf("B")
	require.False(s.T(), ok)
}

// TestNegativeCapacityRejected: the pipe is refused before any node is created.
func (s *FlowNetworkSuite) TestNegativeCapacityRejected() {
	g := datastructure.NewFlowNetwork()
	err := g.AddPipe("S", "A", -2)
	require.Error(s.T(), err)
	require.True(s.T(), errors.Is(err, datastructure.ErrInvalidCapacity))

	require.Equal(s.T(), 0, g.NumberOfVertices())
	require.Equal(s.T(), 0, g.NumberOfEdges())
}

// TestDuplicatePipeRejected: at most one pipe per ordered node pair.
func (s *FlowNetworkSuite) TestDuplicatePipeRejected() {
	g := datastructure.NewFlowNetwork()
	require.NoError(s.T(), g.AddPipe("S", "A", 5))

	err := g.AddPipe("S", "A", 7)
	require.True(s.T(), errors.Is(err, datastructure.ErrDuplicatePipe))
	require.Equal(s.T(), 1, g.NumberOfEdges())
}

// TestSelfLoopIgnored: a pipe from a node to itself is dropped silently.
func (s *FlowNetworkSuite) TestSelfLoopIgnored() {
	g := datastructure.NewFlowNetwork()
	require.NoError(s.T(), g.AddPipe("A", "A", 5))
	require.Equal(s.T(), 0, g.NumberOfEdges())
}

// TestPrepareResidualAddsReverseArcs: every pipe gets a capacity-0 partner.
func (s *FlowNetworkSuite) TestPrepareResidualAddsReverseArcs() {
	g := datastructure.NewFlowNetwork()
	require.NoError(s.T(), g.AddPipe("S", "A", 5))
	g.PrepareResidual()

	require.Equal(s.T(), 2, g.NumberOfEdges())

	forward := g.GetEdgeById(0)
	reversed := g.GetReversedEdge(forward)
	require.Equal(s.T(), forward.GetTo(), reversed.GetFrom())
	require.Equal(s.T(), forward.GetFrom(), reversed.GetTo())
	require.Equal(s.T(), 0.0, reversed.GetCapacity())
	require.True(s.T(), g.IsSyntheticEdge(reversed))
	require.False(s.T(), g.IsSyntheticEdge(forward))
	require.Same(s.T(), forward, g.GetReversedEdge(reversed))
}

// TestPrepareResidualIdempotent: preparing twice adds nothing and keeps flows.
func (s *FlowNetworkSuite) TestPrepareResidualIdempotent() {
	g := datastructure.NewFlowNetwork()
	require.NoError(s.T(), g.AddPipe("S", "A", 5))
	require.NoError(s.T(), g.AddPipe("A", "T", 3))
	g.PrepareResidual()
	edgesAfterFirst := g.NumberOfEdges()

	g.PushFlow(g.GetEdgeById(0), 2)
	g.PrepareResidual()

	require.Equal(s.T(), edgesAfterFirst, g.NumberOfEdges())
	require.Equal(s.T(), 2.0, g.GetEdgeById(0).GetFlow())
	require.Equal(s.T(), -2.0, g.GetReversedEdge(g.GetEdgeById(0)).GetFlow())
}

// TestPrepareResidualPairsAntiparallelPipes: two physical pipes in opposite
// directions become each other's reverse arc, no synthetic arc is created.
func (s *FlowNetworkSuite) TestPrepareResidualPairsAntiparallelPipes() {
	g := datastructure.NewFlowNetwork()
	require.NoError(s.T(), g.AddPipe("A", "B", 5))
	require.NoError(s.T(), g.AddPipe("B", "A", 3))
	g.PrepareResidual()

	require.Equal(s.T(), 2, g.NumberOfEdges())

	forward := g.GetEdgeById(0)
	reversed := g.GetReversedEdge(forward)
	require.Equal(s.T(), 3.0, reversed.GetCapacity())
	require.False(s.T(), g.IsSyntheticEdge(reversed))
}

// TestAddPipeUpgradesSyntheticArc: a pipe added where an earlier prepare left a
// synthetic arc reuses that arc and keeps the pairing intact.
func (s *FlowNetworkSuite) TestAddPipeUpgradesSyntheticArc() {
	g := datastructure.NewFlowNetwork()
	require.NoError(s.T(), g.AddPipe("A", "B", 5))
	g.PrepareResidual()
	require.Equal(s.T(), 2, g.NumberOfEdges())

	require.NoError(s.T(), g.AddPipe("B", "A", 4))
	g.PrepareResidual()

	require.Equal(s.T(), 2, g.NumberOfEdges())
	reversed := g.GetReversedEdge(g.GetEdgeById(0))
	require.Equal(s.T(), 4.0, reversed.GetCapacity())
	require.False(s.T(), g.IsSyntheticEdge(reversed))

	err := g.AddPipe("B", "A", 9)
	require.True(s.T(), errors.Is(err, datastructure.ErrDuplicatePipe))
}

// TestPushFlowKeepsSkewSymmetry: flow(u,v) == -flow(v,u) after every push.
func (s *FlowNetworkSuite) TestPushFlowKeepsSkewSymmetry() {
	g := datastructure.NewFlowNetwork()
	require.NoError(s.T(), g.AddPipe("S", "A", 5))
	g.PrepareResidual()

	forward := g.GetEdgeById(0)
	g.PushFlow(forward, 3)

	require.Equal(s.T(), 3.0, forward.GetFlow())
	require.Equal(s.T(), -3.0, g.GetReversedEdge(forward).GetFlow())
	require.Equal(s.T(), 2.0, forward.GetResidualCapacity())
	require.Equal(s.T(), 3.0, g.GetReversedEdge(forward).GetResidualCapacity())

	g.PushFlow(forward, -1)
	require.Equal(s.T(), 2.0, forward.GetFlow())
	require.Equal(s.T(), -2.0, g.GetReversedEdge(forward).GetFlow())
}

// TestCloneKeepsFlows: the copy carries the assignment, mutations stay apart.
func (s *FlowNetworkSuite) TestCloneKeepsFlows() {
	g := datastructure.NewFlowNetwork()
	require.NoError(s.T(), g.AddPipe("S", "A", 5))
	require.NoError(s.T(), g.AddPipe("A", "T", 3))
	g.PrepareResidual()
	g.PushFlow(g.GetEdgeById(0), 3)

	clone := g.Clone()
	require.Equal(s.T(), g.NumberOfVertices(), clone.NumberOfVertices())
	require.Equal(s.T(), g.NumberOfEdges(), clone.NumberOfEdges())
	require.Equal(s.T(), 3.0, clone.GetEdgeById(0).GetFlow())

	clone.PushFlow(clone.GetEdgeById(0), 1)
	require.Equal(s.T(), 4.0, clone.GetEdgeById(0).GetFlow())
	require.Equal(s.T(), 3.0, g.GetEdgeById(0).GetFlow())

	u, ok := clone.IndexOf("A")
	require.True(s.T(), ok)
	require.Equal(s.T(), "A", clone.LabelOf(u))
}

// TestResetFlows clears the assignment but not the capacities.
func (s *FlowNetworkSuite) TestResetFlows() {
	g := datastructure.NewFlowNetwork()
	require.NoError(s.T(), g.AddPipe("S", "A", 5))
	g.PrepareResidual()
	g.PushFlow(g.GetEdgeById(0), 3)

	g.ResetFlows()
	require.Equal(s.T(), 0.0, g.GetEdgeById(0).GetFlow())
	require.Equal(s.T(), 0.0, g.GetReversedEdge(g.GetEdgeById(0)).GetFlow())
	require.Equal(s.T(), 5.0, g.GetEdgeById(0).GetCapacity())
}

// TestPositiveInflowOutflow: only positive flow counts toward the totals.
func (s *FlowNetworkSuite) TestPositiveInflowOutflow() {
	g := datastructure.NewFlowNetwork()
	require.NoError(s.T(), g.AddPipe("S", "A", 5))
	require.NoError(s.T(), g.AddPipe("B", "A", 4))
	g.PrepareResidual()
	g.PushFlow(g.GetEdgeById(0), 3)
	g.PushFlow(g.GetEdgeById(1), 2)

	a, ok := g.IndexOf("A")
	require.True(s.T(), ok)
	require.InDelta(s.T(), 5.0, g.PositiveInflow(a), 1e-9)

	sIdx, ok := g.IndexOf("S")
	require.True(s.T(), ok)
	require.InDelta(s.T(), 3.0, g.PositiveOutflow(sIdx), 1e-9)
}

// TestFromRecordsBuildsPreparedNetwork: records load and pair in one call.
func (s *FlowNetworkSuite) TestFromRecordsBuildsPreparedNetwork() {
	records := []datastructure.PipeRecord{
		datastructure.NewPipeRecord("S", "A", 5),
		datastructure.NewPipeRecord("A", "T", 3),
	}
	g, err := datastructure.NewFlowNetworkFromRecords(records)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, g.NumberOfVertices())
	require.Equal(s.T(), 4, g.NumberOfEdges())
}

// TestFromRecordsRejectsBadInput: duplicates and negative capacities surface.
func (s *FlowNetworkSuite) TestFromRecordsRejectsBadInput() {
	_, err := datastructure.NewFlowNetworkFromRecords([]datastructure.PipeRecord{
		datastructure.NewPipeRecord("S", "A", 5),
		datastructure.NewPipeRecord("S", "A", 2),
	})
	require.True(s.T(), errors.Is(err, datastructure.ErrDuplicatePipe))

	_, err = datastructure.NewFlowNetworkFromRecords([]datastructure.PipeRecord{
		datastructure.NewPipeRecord("S", "A", -1),
	})
	require.True(s.T(), errors.Is(err, datastructure.ErrInvalidCapacity))
}

func TestFlowNetworkSuite(t *testing.T) {
	suite.Run(t, new(FlowNetworkSuite))
}
