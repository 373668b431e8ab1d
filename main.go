package main

import (
	"flag"
	"strings"

	"github.com/lintang-b-s/water-network-maxflow/pkg"
	"github.com/lintang-b-s/water-network-maxflow/pkg/csvparser"
	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
	"github.com/lintang-b-s/water-network-maxflow/pkg/logger"
	"github.com/lintang-b-s/water-network-maxflow/pkg/scenario"
	"github.com/lintang-b-s/water-network-maxflow/pkg/simulation"
	"github.com/lintang-b-s/water-network-maxflow/pkg/solver"
	"go.uber.org/zap"
)

var (
	edgeFile       = flag.String("edges", "./data/edges.csv", "pipe edge list csv with columns u,v,capacity_mld (.bz2 supported)")
	sourceNode     = flag.String("source", pkg.DEFAULT_SOURCE_NAME, "source node name (water treatment plant)")
	sinkNode       = flag.String("sink", pkg.DEFAULT_SINK_NAME, "sink node name (demand zone)")
	algorithm      = flag.String("algorithm", "all", "max flow algorithm: all, Edmonds-Karp, Dinic or Push-Relabel")
	leakagePercent = flag.Float64("leakage", 0, "leakage scenario: shrink every capacity by this percent (0-100)")
	failurePipe    = flag.String("failure_pipe", "", "failure scenario: \"u,v\" pipe forced to zero capacity")
	solveTimeout   = flag.Duration("timeout", 0, "per-algorithm solve time limit (0 = no limit)")
	debug          = flag.Bool("debug", false, "validate the flow assignment after solving")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	records, err := csvparser.NewCSVParser().Parse(*edgeFile, logger)
	if err != nil {
		logger.Sugar().Fatalf("parse edge list: %v", err)
	}

	if *leakagePercent > 0 {
		records, err = scenario.ApplyLeakage(records, *leakagePercent)
		if err != nil {
			logger.Sugar().Fatalf("leakage scenario: %v", err)
		}
		logger.Sugar().Infof("leakage scenario: every capacity reduced by %.1f%%", *leakagePercent)
	}
	if *failurePipe != "" {
		from, to, err := scenario.ParseFailurePipe(*failurePipe)
		if err != nil {
			logger.Sugar().Fatalf("failure scenario: %v", err)
		}
		records, err = scenario.ApplyPipeFailure(records, from, to)
		if err != nil {
			logger.Sugar().Fatalf("failure scenario: %v", err)
		}
		logger.Sugar().Infof("failure scenario: pipe %s -> %s taken offline", from, to)
	}

	network, err := datastructure.NewFlowNetworkFromRecords(records)
	if err != nil {
		logger.Sugar().Fatalf("build network: %v", err)
	}

	comparator := simulation.NewComparator(network, *sourceNode, *sinkNode, *solveTimeout, logger)

	var results []simulation.RunResult
	if *algorithm == "all" {
		results = comparator.Run()
	} else {
		results = []simulation.RunResult{comparator.RunSingle(*algorithm)}
	}

	var chosen *simulation.RunResult
	for i := range results {
		if results[i].Err() != nil {
			logger.Sugar().Warnf("%s: %v", results[i].GetAlgorithm(), results[i].Err())
			continue
		}
		logger.Sugar().Infof("Max Flow = %.2f MLD (%s, %v)", results[i].GetMaxFlow(),
			results[i].GetAlgorithm(), results[i].GetDuration())
		if chosen == nil {
			chosen = &results[i]
		}
	}
	if chosen == nil {
		logger.Sugar().Fatalf("no algorithm produced a flow assignment")
	}

	solved := chosen.GetNetwork()
	for _, step := range chosen.GetSteps() {
		logger.Sugar().Infof("augmenting path %s: +%.2f MLD (total %.2f MLD)",
			strings.Join(step.PathLabels(solved), " -> "), step.GetPathFlow(), step.GetTotalFlow())
	}

	paths, err := solver.NewFlowDecomposer(solved).Decompose(*sourceNode, *sinkNode)
	if err != nil {
		logger.Sugar().Warnf("flow decomposition: %v", err)
	}
	for _, path := range paths {
		logger.Sugar().Infof("flow path %s carries %.2f MLD",
			strings.Join(path.GetNodes(), " -> "), path.GetAmount())
	}

	cut, err := solver.NewMinCutExtractor(solved).Extract(*sourceNode)
	if err != nil {
		logger.Sugar().Fatalf("extract min cut: %v", err)
	}
	if cut.NumberOfCutEdges() == 0 {
		logger.Info("No bottlenecks detected.")
	} else {
		for _, edge := range cut.GetCutEdges() {
			logger.Sugar().Infof("bottleneck pipe %s -> %s (%.2f MLD)",
				edge.GetFrom(), edge.GetTo(), edge.GetCapacity())
		}
		logger.Sugar().Infof("min cut capacity = %.2f MLD", cut.TotalCapacity())
	}

	for i, row := range simulation.BuildUtilization(solved) {
		if i >= 10 {
			break
		}
		logger.Sugar().Infof("utilization %s -> %s: %.2f/%.2f MLD (%.0f%%)",
			row.GetFrom(), row.GetTo(), row.GetFlow(), row.GetCapacity(), row.GetRatio()*100)
	}

	if *debug {
		if err := solver.ValidateFlow(solved, *sourceNode, *sinkNode); err != nil {
			logger.Sugar().Fatalf("flow validation: %v", err)
		}
		s, _ := solved.IndexOf(*sourceNode)
		t, _ := solved.IndexOf(*sinkNode)
		logger.Info("flow assignment validated",
			zap.Float64("source_outflow_mld", solved.PositiveOutflow(s)),
			zap.Float64("sink_inflow_mld", solved.PositiveInflow(t)))
	}
}
