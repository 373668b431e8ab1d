package solver_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
	"github.com/lintang-b-s/water-network-maxflow/pkg/solver"
)

type PushRelabelSuite struct {
	suite.Suite
}

// TestLineNetwork: S->A (5), A->T (3) => 3 delivered, 2 pushed back to S.
func (s *PushRelabelSuite) TestLineNetwork() {
	g := lineNetwork(s.T())

	maxFlow, err := solver.NewPushRelabel(g).Solve("S", "T")
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 3.0, maxFlow, 1e-6)
	require.NoError(s.T(), solver.ValidateFlow(g, "S", "T"))
}

// TestFailedPipe: the only route is offline => 0.
func (s *PushRelabelSuite) TestFailedPipe() {
	g := failedPipeNetwork(s.T())

	maxFlow, err := solver.NewPushRelabel(g).Solve("S", "T")
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 0.0, maxFlow, 1e-6)
}

// TestParallelPaths: both receivers discharge straight into T => 5.
func (s *PushRelabelSuite) TestParallelPaths() {
	g := parallelNetwork(s.T())

	maxFlow, err := solver.NewPushRelabel(g).Solve("S", "T")
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 5.0, maxFlow, 1e-6)
}

// TestDiamond: merging branches => 2.
func (s *PushRelabelSuite) TestDiamond() {
	g := diamondNetwork(s.T())

	maxFlow, err := solver.NewPushRelabel(g).Solve("S", "T")
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 2.0, maxFlow, 1e-6)
}

// TestClassicNetwork: CLRS figure 26.1 => 23.
func (s *PushRelabelSuite) TestClassicNetwork() {
	g := classicNetwork(s.T())

	maxFlow, err := solver.NewPushRelabel(g).Solve("S", "T")
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 23.0, maxFlow, 1e-6)
	require.NoError(s.T(), solver.ValidateFlow(g, "S", "T"))
}

// TestDetour: the saturation parks 5 units on A but only 3 fit through B->T;
// the surplus must climb back over the source height and drain into S, leaving
// a conserved assignment behind.
func (s *PushRelabelSuite) TestDetour() {
	g := detourNetwork(s.T())

	maxFlow, err := solver.NewPushRelabel(g).Solve("S", "T")
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 3.0, maxFlow, 1e-6)
	require.NoError(s.T(), solver.ValidateFlow(g, "S", "T"))
}

// TestAntiparallelPipes: max flow 4.
func (s *PushRelabelSuite) TestAntiparallelPipes() {
	g := antiparallelNetwork(s.T())

	maxFlow, err := solver.NewPushRelabel(g).Solve("S", "T")
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 4.0, maxFlow, 1e-6)
	require.NoError(s.T(), solver.ValidateFlow(g, "S", "T"))
}

// TestSinkAdjacentToSource: saturation credits T directly, no discharging runs.
func (s *PushRelabelSuite) TestSinkAdjacentToSource() {
	g := buildNetwork(s.T(), []datastructure.PipeRecord{
		datastructure.NewPipeRecord("S", "T", 7),
	})

	maxFlow, err := solver.NewPushRelabel(g).Solve("S", "T")
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 7.0, maxFlow, 1e-6)
}

// TestUnknownTerminals: a missing node name fails before any saturation.
func (s *PushRelabelSuite) TestUnknownTerminals() {
	g := lineNetwork(s.T())

	_, err := solver.NewPushRelabel(g).Solve("Q", "T")
	require.True(s.T(), errors.Is(err, datastructure.ErrUnknownNode))

	g.ForEdgeList(func(e *datastructure.PipeEdge, eId int) {
		require.Equal(s.T(), 0.0, e.GetFlow())
	})
}

func TestPushRelabelSuite(t *testing.T) {
	suite.Run(t, new(PushRelabelSuite))
}
