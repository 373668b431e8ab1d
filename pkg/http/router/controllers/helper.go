package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/water-network-maxflow/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]interface{}

func (api *solverAPI) writeJSON(w http.ResponseWriter, status int, data envelope,
	headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

func (api *solverAPI) logError(r *http.Request, err error) {
	api.log.Error("http handler error", zap.Error(err),
		zap.String("request_method", r.Method),
		zap.String("request_url", r.URL.String()))
}

func (api *solverAPI) errorResponseJSON(w http.ResponseWriter, r *http.Request,
	status int, message string) {
	var resp errorResponse
	resp.Error.Code = http.StatusText(status)
	resp.Error.Message = message

	js, err := json.Marshal(resp)
	if err != nil {
		api.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
}

func (api *solverAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponseJSON(w, r, http.StatusBadRequest, err.Error())
}

func (api *solverAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponseJSON(w, r, http.StatusNotFound, err.Error())
}

func (api *solverAPI) ConflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponseJSON(w, r, http.StatusConflict, err.Error())
}

func (api *solverAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.logError(r, err)
	api.errorResponseJSON(w, r, http.StatusInternalServerError, util.MessageInternalServerError)
}

// getStatusCode writes the error with the http status matching its domain
// code.
func (api *solverAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	var domainErr *util.Error
	if !errors.As(err, &domainErr) {
		api.ServerErrorResponse(w, r, err)
		return
	}

	switch domainErr.Code() {
	case util.ErrBadParamInput:
		api.BadRequestResponse(w, r, err)
	case util.ErrNotFound:
		api.NotFoundResponse(w, r, err)
	case util.ErrConflict:
		api.ConflictResponse(w, r, err)
	default:
		api.ServerErrorResponse(w, r, err)
	}
}

func translateError(err error, trans ut.Translator) []error {
	if err == nil {
		return nil
	}

	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}

	errs := make([]error, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
