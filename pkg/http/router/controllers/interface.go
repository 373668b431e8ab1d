package controllers

import (
	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
	"github.com/lintang-b-s/water-network-maxflow/pkg/simulation"
	"github.com/lintang-b-s/water-network-maxflow/pkg/solver"
)

type SolverService interface {
	SolveNetwork(records []datastructure.PipeRecord, source, sink, algorithm string,
		leakagePercent float64, failurePipe string) (simulation.RunResult, []solver.FlowPath,
		*solver.MinCut, []simulation.PipeUtilization, error)
	CompareNetwork(records []datastructure.PipeRecord, source, sink string,
		leakagePercent float64, failurePipe string) ([]simulation.RunResult, bool, error)
}
