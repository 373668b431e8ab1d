package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/water-network-maxflow/pkg/datastructure"
	helper "github.com/lintang-b-s/water-network-maxflow/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/water-network-maxflow/pkg/simulation"
	"go.uber.org/zap"
)

type solverAPI struct {
	solverService SolverService
	log           *zap.Logger
}

func New(solverService SolverService, log *zap.Logger) *solverAPI {
	return &solverAPI{
		solverService: solverService,
		log:           log,
	}
}

func (api *solverAPI) Routes(group *helper.RouteGroup) {
	group.POST("/maxflow", api.maxflow)
	group.POST("/maxflow/compare", api.compare)
}

func (api *solverAPI) maxflow(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request maxflowRequest
		err     error
	)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	if request.Algorithm == "" {
		request.Algorithm = simulation.AlgorithmDinic
	}

	result, paths, cut, rows, err := api.solverService.SolveNetwork(
		toPipeRecords(request.Pipes), request.Source, request.Sink,
		request.Algorithm, request.LeakagePercent, request.FailurePipe)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewMaxflowResponse(result, paths, cut, rows)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *solverAPI) compare(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request compareRequest
		err     error
	)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	results, agree, err := api.solverService.CompareNetwork(
		toPipeRecords(request.Pipes), request.Source, request.Sink,
		request.LeakagePercent, request.FailurePipe)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewComparisonResponse(results, agree)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func toPipeRecords(pipes []pipeDTO) []datastructure.PipeRecord {
	records := make([]datastructure.PipeRecord, 0, len(pipes))
	for _, pipe := range pipes {
		records = append(records, datastructure.NewPipeRecord(pipe.From, pipe.To, pipe.Capacity))
	}
	return records
}
