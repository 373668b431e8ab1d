// Package simulation runs the max flow solvers against one network, times
// them, and reports per-pipe utilization for the resulting assignment.
package simulation

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lintang-b-s/water-network-maxflow/pkg"
	"github.com/lintang-b-s/water-network-maxflow/pkg/concurrent"
	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
	"github.com/lintang-b-s/water-network-maxflow/pkg/solver"
	"go.uber.org/zap"
)

const (
	AlgorithmEdmondsKarp = "Edmonds-Karp"
	AlgorithmDinic       = "Dinic"
	AlgorithmPushRelabel = "Push-Relabel"
)

// Algorithms returns the solver names in report order.
func Algorithms() []string {
	return []string{AlgorithmEdmondsKarp, AlgorithmDinic, AlgorithmPushRelabel}
}

var (
	ErrSolveTimeout     = errors.New("max flow solve exceeded the time limit")
	ErrUnknownAlgorithm = errors.New("unknown max flow algorithm")
)

// RunResult holds the outcome of one solver run on its own clone of the
// network. The clone keeps the flow assignment for follow-up reports.
type RunResult struct {
	algorithm string
	maxFlow   float64
	duration  time.Duration
	steps     []solver.AugmentationStep
	network   *datastructure.FlowNetwork
	err       error
}

func (r RunResult) GetAlgorithm() string {
	return r.algorithm
}

func (r RunResult) GetMaxFlow() float64 {
	return r.maxFlow
}

func (r RunResult) GetDuration() time.Duration {
	return r.duration
}

// GetSteps returns the augmentation trace. Only Edmonds-Karp records one.
func (r RunResult) GetSteps() []solver.AugmentationStep {
	return r.steps
}

func (r RunResult) GetNetwork() *datastructure.FlowNetwork {
	return r.network
}

func (r RunResult) Err() error {
	return r.err
}

// Comparator solves the same source-sink demand with every algorithm. Each
// run works on a clone of the base network, so runs never see each other's
// flows.
type Comparator struct {
	base    *datastructure.FlowNetwork
	source  string
	sink    string
	timeout time.Duration
	logger  *zap.Logger
}

func NewComparator(base *datastructure.FlowNetwork, source, sink string,
	timeout time.Duration, logger *zap.Logger) *Comparator {
	return &Comparator{
		base:    base,
		source:  source,
		sink:    sink,
		timeout: timeout,
		logger:  logger,
	}
}

// Run solves with all algorithms concurrently and returns the results in
// Algorithms() order.
func (c *Comparator) Run() []RunResult {
	algorithms := Algorithms()

	wp := concurrent.NewWorkerPool[string, RunResult](len(algorithms), len(algorithms))
	wp.Start(c.RunSingle)
	for _, algorithm := range algorithms {
		wp.AddJob(algorithm)
	}
	wp.Close()
	wp.Wait()

	byAlgorithm := make(map[string]RunResult, len(algorithms))
	for _, res := range wp.CollectAll() {
		byAlgorithm[res.algorithm] = res
	}

	results := make([]RunResult, 0, len(algorithms))
	for _, algorithm := range algorithms {
		res := byAlgorithm[algorithm]
		if res.err != nil {
			c.logger.Sugar().Warnf("%s failed: %v", res.algorithm, res.err)
		} else {
			c.logger.Sugar().Infof("%s: max flow %.2f MLD in %v", res.algorithm,
				res.maxFlow, res.duration)
		}
		results = append(results, res)
	}

	if !MaxFlowsAgree(results) {
		c.logger.Sugar().Warnf("max flow algorithms disagree on %s -> %s",
			c.source, c.sink)
	}
	return results
}

// RunSingle solves with one algorithm on a fresh clone, honoring the
// comparator timeout. On timeout the clone is abandoned mid-solve, so the
// result carries no network.
func (c *Comparator) RunSingle(algorithm string) RunResult {
	network := c.base.Clone()

	done := make(chan RunResult, 1)
	go func() {
		start := time.Now()
		steps, maxFlow, err := c.solve(algorithm, network)
		done <- RunResult{
			algorithm: algorithm,
			maxFlow:   maxFlow,
			duration:  time.Since(start),
			steps:     steps,
			network:   network,
			err:       err,
		}
	}()

	if c.timeout <= 0 {
		return <-done
	}
	select {
	case res := <-done:
		return res
	case <-time.After(c.timeout):
		return RunResult{
			algorithm: algorithm,
			err:       fmt.Errorf("%w: %s after %v", ErrSolveTimeout, algorithm, c.timeout),
		}
	}
}

func (c *Comparator) solve(algorithm string,
	network *datastructure.FlowNetwork) ([]solver.AugmentationStep, float64, error) {
	switch algorithm {
	case AlgorithmEdmondsKarp:
		return solver.NewEdmondsKarp(network).Solve(c.source, c.sink)
	case AlgorithmDinic:
		maxFlow, err := solver.NewDinicMaxFlow(network).Solve(c.source, c.sink)
		return nil, maxFlow, err
	case AlgorithmPushRelabel:
		maxFlow, err := solver.NewPushRelabel(network).Solve(c.source, c.sink)
		return nil, maxFlow, err
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}
}

// MaxFlowsAgree reports whether every successful run found the same max flow.
func MaxFlowsAgree(results []RunResult) bool {
	first := math.NaN()
	for _, res := range results {
		if res.err != nil {
			continue
		}
		if math.IsNaN(first) {
			first = res.maxFlow
			continue
		}
		if math.Abs(res.maxFlow-first) > pkg.EPSILON {
			return false
		}
	}
	return true
}
