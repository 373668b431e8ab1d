package controllers

import (
	"github.com/lintang-b-s/water-network-maxflow/pkg/simulation"
	"github.com/lintang-b-s/water-network-maxflow/pkg/solver"
)

type pipeDTO struct {
	From     string  `json:"u" validate:"required"`
	To       string  `json:"v" validate:"required"`
	Capacity float64 `json:"capacity_mld" validate:"min=0"`
}

type maxflowRequest struct {
	Pipes          []pipeDTO `json:"pipes" validate:"required,min=1,dive"`
	Source         string    `json:"source" validate:"required"`
	Sink           string    `json:"sink" validate:"required"`
	Algorithm      string    `json:"algorithm" validate:"omitempty,oneof=Edmonds-Karp Dinic Push-Relabel"`
	LeakagePercent float64   `json:"leakage_percent" validate:"min=0,max=100"`
	FailurePipe    string    `json:"failure_pipe"`
}

type compareRequest struct {
	Pipes          []pipeDTO `json:"pipes" validate:"required,min=1,dive"`
	Source         string    `json:"source" validate:"required"`
	Sink           string    `json:"sink" validate:"required"`
	LeakagePercent float64   `json:"leakage_percent" validate:"min=0,max=100"`
	FailurePipe    string    `json:"failure_pipe"`
}

type augmentationStepDTO struct {
	Path      []string `json:"path"`
	PathFlow  float64  `json:"path_flow_mld"`
	TotalFlow float64  `json:"total_flow_mld"`
}

type flowPathDTO struct {
	Nodes  []string `json:"nodes"`
	Amount float64  `json:"amount_mld"`
}

type cutEdgeDTO struct {
	From     string  `json:"u"`
	To       string  `json:"v"`
	Capacity float64 `json:"capacity_mld"`
}

type utilizationDTO struct {
	From        string  `json:"u"`
	To          string  `json:"v"`
	Flow        float64 `json:"flow_mld"`
	Capacity    float64 `json:"capacity_mld"`
	Utilization float64 `json:"utilization"`
}

type maxflowResponse struct {
	Algorithm         string                `json:"algorithm"`
	MaxFlow           float64               `json:"max_flow_mld"`
	Runtime           string                `json:"runtime"`
	AugmentationSteps []augmentationStepDTO `json:"augmentation_steps,omitempty"`
	FlowPaths         []flowPathDTO         `json:"flow_paths"`
	MinCut            []cutEdgeDTO          `json:"min_cut"`
	CutCapacity       float64               `json:"cut_capacity_mld"`
	Utilization       []utilizationDTO      `json:"utilization"`
}

func NewMaxflowResponse(result simulation.RunResult, paths []solver.FlowPath,
	cut *solver.MinCut, rows []simulation.PipeUtilization) maxflowResponse {
	steps := make([]augmentationStepDTO, 0, len(result.GetSteps()))
	for _, step := range result.GetSteps() {
		steps = append(steps, augmentationStepDTO{
			Path:      step.PathLabels(result.GetNetwork()),
			PathFlow:  step.GetPathFlow(),
			TotalFlow: step.GetTotalFlow(),
		})
	}

	flowPaths := make([]flowPathDTO, 0, len(paths))
	for _, path := range paths {
		flowPaths = append(flowPaths, flowPathDTO{
			Nodes:  path.GetNodes(),
			Amount: path.GetAmount(),
		})
	}

	cutEdges := make([]cutEdgeDTO, 0, cut.NumberOfCutEdges())
	for _, edge := range cut.GetCutEdges() {
		cutEdges = append(cutEdges, cutEdgeDTO{
			From:     edge.GetFrom(),
			To:       edge.GetTo(),
			Capacity: edge.GetCapacity(),
		})
	}

	utilization := make([]utilizationDTO, 0, len(rows))
	for _, row := range rows {
		utilization = append(utilization, utilizationDTO{
			From:        row.GetFrom(),
			To:          row.GetTo(),
			Flow:        row.GetFlow(),
			Capacity:    row.GetCapacity(),
			Utilization: row.GetRatio(),
		})
	}

	return maxflowResponse{
		Algorithm:         result.GetAlgorithm(),
		MaxFlow:           result.GetMaxFlow(),
		Runtime:           result.GetDuration().String(),
		AugmentationSteps: steps,
		FlowPaths:         flowPaths,
		MinCut:            cutEdges,
		CutCapacity:       cut.TotalCapacity(),
		Utilization:       utilization,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type comparisonRowDTO struct {
	Algorithm string  `json:"algorithm"`
	MaxFlow   float64 `json:"max_flow_mld"`
	Runtime   string  `json:"runtime"`
	Error     string  `json:"error,omitempty"`
}

type comparisonResponse struct {
	Results []comparisonRowDTO `json:"results"`
	Agree   bool               `json:"algorithms_agree"`
}

func NewComparisonResponse(results []simulation.RunResult, agree bool) comparisonResponse {
	rows := make([]comparisonRowDTO, 0, len(results))
	for _, result := range results {
		row := comparisonRowDTO{
			Algorithm: result.GetAlgorithm(),
			MaxFlow:   result.GetMaxFlow(),
			Runtime:   result.GetDuration().String(),
		}
		if result.Err() != nil {
			row.Error = result.Err().Error()
		}
		rows = append(rows, row)
	}
	return comparisonResponse{
		Results: rows,
		Agree:   agree,
	}
}
