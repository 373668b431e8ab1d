package usecases

import (
	"errors"
	"time"

	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
	"github.com/lintang-b-s/water-network-maxflow/pkg/scenario"
	"github.com/lintang-b-s/water-network-maxflow/pkg/simulation"
	"github.com/lintang-b-s/water-network-maxflow/pkg/solver"
	"github.com/lintang-b-s/water-network-maxflow/pkg/util"
	"go.uber.org/zap"
)

type SolverService struct {
	log     *zap.Logger
	timeout time.Duration
}

func NewSolverService(log *zap.Logger, timeout time.Duration) *SolverService {
	return &SolverService{
		log:     log,
		timeout: timeout,
	}
}

// SolveNetwork builds the network with the requested what-if scenario
// applied, solves it with one algorithm, and derives the flow paths, min
// cut and pipe utilization of the assignment.
func (ss *SolverService) SolveNetwork(records []datastructure.PipeRecord, source, sink,
	algorithm string, leakagePercent float64, failurePipe string) (simulation.RunResult,
	[]solver.FlowPath, *solver.MinCut, []simulation.PipeUtilization, error) {
	base, err := ss.buildNetwork(records, leakagePercent, failurePipe)
	if err != nil {
		return simulation.RunResult{}, nil, nil, nil, err
	}

	comparator := simulation.NewComparator(base, source, sink, ss.timeout, ss.log)
	result := comparator.RunSingle(algorithm)
	if err := result.Err(); err != nil {
		return simulation.RunResult{}, nil, nil, nil, ss.mapSolveError(err)
	}

	network := result.GetNetwork()
	paths, err := solver.NewFlowDecomposer(network).Decompose(source, sink)
	if err != nil {
		if !errors.Is(err, solver.ErrCyclicFlow) {
			return simulation.RunResult{}, nil, nil, nil,
				util.WrapErrorf(err, util.ErrInternalServerError, "decompose flow: %s", err)
		}
		ss.log.Sugar().Warnf("flow decomposition: %v", err)
	}

	cut, err := solver.NewMinCutExtractor(network).Extract(source)
	if err != nil {
		return simulation.RunResult{}, nil, nil, nil,
			util.WrapErrorf(err, util.ErrInternalServerError, "extract min cut: %s", err)
	}

	rows := simulation.BuildUtilization(network)
	return result, paths, cut, rows, nil
}

// CompareNetwork runs every algorithm on the scenario network. Input errors
// fail the whole request; per-run failures such as a timeout stay on their
// row.
func (ss *SolverService) CompareNetwork(records []datastructure.PipeRecord, source, sink string,
	leakagePercent float64, failurePipe string) ([]simulation.RunResult, bool, error) {
	base, err := ss.buildNetwork(records, leakagePercent, failurePipe)
	if err != nil {
		return nil, false, err
	}

	results := simulation.NewComparator(base, source, sink, ss.timeout, ss.log).Run()
	for _, result := range results {
		if errors.Is(result.Err(), datastructure.ErrUnknownNode) ||
			errors.Is(result.Err(), solver.ErrSameTerminals) {
			return nil, false, ss.mapSolveError(result.Err())
		}
	}
	return results, simulation.MaxFlowsAgree(results), nil
}

func (ss *SolverService) buildNetwork(records []datastructure.PipeRecord,
	leakagePercent float64, failurePipe string) (*datastructure.FlowNetwork, error) {
	var err error
	if leakagePercent > 0 {
		records, err = scenario.ApplyLeakage(records, leakagePercent)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "%s", err)
		}
	}
	if failurePipe != "" {
		from, to, err := scenario.ParseFailurePipe(failurePipe)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "%s", err)
		}
		records, err = scenario.ApplyPipeFailure(records, from, to)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrNotFound, "%s", err)
		}
	}

	base, err := datastructure.NewFlowNetworkFromRecords(records)
	if err != nil {
		if errors.Is(err, datastructure.ErrDuplicatePipe) {
			return nil, util.WrapErrorf(err, util.ErrConflict, "%s", err)
		}
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "%s", err)
	}
	return base, nil
}

func (ss *SolverService) mapSolveError(err error) error {
	switch {
	case errors.Is(err, datastructure.ErrUnknownNode):
		return util.WrapErrorf(err, util.ErrNotFound, "%s", err)
	case errors.Is(err, solver.ErrSameTerminals):
		return util.WrapErrorf(err, util.ErrBadParamInput, "%s", err)
	case errors.Is(err, simulation.ErrUnknownAlgorithm):
		return util.WrapErrorf(err, util.ErrBadParamInput, "%s", err)
	default:
		return util.WrapErrorf(err, util.ErrInternalServerError, "%s", err)
	}
}
