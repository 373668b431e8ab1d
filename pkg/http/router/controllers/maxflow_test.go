package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/water-network-maxflow/pkg/http/router/controllers"
	helper "github.com/lintang-b-s/water-network-maxflow/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/water-network-maxflow/pkg/http/usecases"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type MaxflowAPISuite struct {
	suite.Suite
	router *httprouter.Router
}

func (suite *MaxflowAPISuite) SetupTest() {
	log := zap.NewNop()
	suite.router = httprouter.New()
	group := helper.NewRouteGroup(suite.router, "/api")
	controllers.New(usecases.NewSolverService(log, 0), log).Routes(group)
}

func (suite *MaxflowAPISuite) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

const classicPipesJSON = `[
	{"u": "S", "v": "V1", "capacity_mld": 16},
	{"u": "S", "v": "V2", "capacity_mld": 13},
	{"u": "V1", "v": "V3", "capacity_mld": 12},
	{"u": "V2", "v": "V1", "capacity_mld": 4},
	{"u": "V3", "v": "V2", "capacity_mld": 9},
	{"u": "V2", "v": "V4", "capacity_mld": 14},
	{"u": "V4", "v": "V3", "capacity_mld": 7},
	{"u": "V3", "v": "T", "capacity_mld": 20},
	{"u": "V4", "v": "T", "capacity_mld": 4}
]`

// TestMaxflowEndpoint: a valid request returns the max flow with paths, min
// cut and utilization in the data envelope.
func (suite *MaxflowAPISuite) TestMaxflowEndpoint() {
	rec := suite.postJSON("/api/maxflow",
		`{"pipes": `+classicPipesJSON+`, "source": "S", "sink": "T", "algorithm": "Dinic"}`)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Algorithm   string  `json:"algorithm"`
			MaxFlow     float64 `json:"max_flow_mld"`
			CutCapacity float64 `json:"cut_capacity_mld"`
			FlowPaths   []struct {
				Nodes  []string `json:"nodes"`
				Amount float64  `json:"amount_mld"`
			} `json:"flow_paths"`
			Utilization []struct {
				From  string  `json:"u"`
				Ratio float64 `json:"utilization"`
			} `json:"utilization"`
		} `json:"data"`
	}
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(suite.T(), "Dinic", resp.Data.Algorithm)
	require.InDelta(suite.T(), 23.0, resp.Data.MaxFlow, 1e-6)
	require.InDelta(suite.T(), 23.0, resp.Data.CutCapacity, 1e-6)
	require.NotEmpty(suite.T(), resp.Data.FlowPaths)
	require.Len(suite.T(), resp.Data.Utilization, 9)
}

// TestMaxflowDefaultsToDinic: omitting the algorithm still solves.
func (suite *MaxflowAPISuite) TestMaxflowDefaultsToDinic() {
	rec := suite.postJSON("/api/maxflow",
		`{"pipes": `+classicPipesJSON+`, "source": "S", "sink": "T"}`)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Algorithm string `json:"algorithm"`
		} `json:"data"`
	}
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(suite.T(), "Dinic", resp.Data.Algorithm)
}

// TestMaxflowEdmondsKarpTrace: asking for Edmonds-Karp includes the
// augmentation steps.
func (suite *MaxflowAPISuite) TestMaxflowEdmondsKarpTrace() {
	rec := suite.postJSON("/api/maxflow",
		`{"pipes": `+classicPipesJSON+`, "source": "S", "sink": "T", "algorithm": "Edmonds-Karp"}`)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Steps []struct {
				Path      []string `json:"path"`
				TotalFlow float64  `json:"total_flow_mld"`
			} `json:"augmentation_steps"`
		} `json:"data"`
	}
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(suite.T(), resp.Data.Steps)
	last := resp.Data.Steps[len(resp.Data.Steps)-1]
	require.InDelta(suite.T(), 23.0, last.TotalFlow, 1e-6)
}

// TestMaxflowValidation: missing terminals and out-of-range algorithm names
// are rejected before any solve.
func (suite *MaxflowAPISuite) TestMaxflowValidation() {
	rec := suite.postJSON("/api/maxflow", `{"pipes": `+classicPipesJSON+`, "sink": "T"}`)
	require.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	rec = suite.postJSON("/api/maxflow",
		`{"pipes": `+classicPipesJSON+`, "source": "S", "sink": "T", "algorithm": "Ford-Fulkerson"}`)
	require.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	rec = suite.postJSON("/api/maxflow", `{"pipes": [], "source": "S", "sink": "T"}`)
	require.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	rec = suite.postJSON("/api/maxflow", `{not json`)
	require.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

// TestMaxflowUnknownTerminal: a sink that is not in the pipe list => 404.
func (suite *MaxflowAPISuite) TestMaxflowUnknownTerminal() {
	rec := suite.postJSON("/api/maxflow",
		`{"pipes": `+classicPipesJSON+`, "source": "S", "sink": "Nowhere"}`)
	require.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

// TestMaxflowDuplicatePipe: the same pipe twice in the payload => 409.
func (suite *MaxflowAPISuite) TestMaxflowDuplicatePipe() {
	rec := suite.postJSON("/api/maxflow",
		`{"pipes": [{"u": "S", "v": "T", "capacity_mld": 5}, {"u": "S", "v": "T", "capacity_mld": 7}],
		  "source": "S", "sink": "T"}`)
	require.Equal(suite.T(), http.StatusConflict, rec.Code)
}

// TestCompareEndpoint: the comparison lists all three algorithms and flags
// agreement.
func (suite *MaxflowAPISuite) TestCompareEndpoint() {
	rec := suite.postJSON("/api/maxflow/compare",
		`{"pipes": `+classicPipesJSON+`, "source": "S", "sink": "T"}`)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Results []struct {
				Algorithm string  `json:"algorithm"`
				MaxFlow   float64 `json:"max_flow_mld"`
			} `json:"results"`
			Agree bool `json:"algorithms_agree"`
		} `json:"data"`
	}
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(suite.T(), resp.Data.Agree)
	require.Len(suite.T(), resp.Data.Results, 3)
	for _, row := range resp.Data.Results {
		require.InDelta(suite.T(), 23.0, row.MaxFlow, 1e-6)
	}
}

// TestCompareScenario: a failed pipe reshapes the comparison for every
// algorithm the same way.
func (suite *MaxflowAPISuite) TestCompareScenario() {
	rec := suite.postJSON("/api/maxflow/compare",
		`{"pipes": `+classicPipesJSON+`, "source": "S", "sink": "T", "failure_pipe": "V3,T"}`)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Results []struct {
				MaxFlow float64 `json:"max_flow_mld"`
			} `json:"results"`
			Agree bool `json:"algorithms_agree"`
		} `json:"data"`
	}
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(suite.T(), resp.Data.Agree)
	for _, row := range resp.Data.Results {
		require.InDelta(suite.T(), 4.0, row.MaxFlow, 1e-6)
	}
}

func TestMaxflowAPISuite(t *testing.T) {
	suite.Run(t, new(MaxflowAPISuite))
}
