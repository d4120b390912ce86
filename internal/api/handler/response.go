package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, logger log.Logger, payload any) {
	writeJSONStatus(w, logger, http.StatusOK, payload)
}

func writeJSONStatus(w http.ResponseWriter, logger log.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("dashboard: falha ao serializar resposta")
	}
}

// writeServiceError traduz os erros dos casos de uso para os códigos da API
func writeServiceError(w http.ResponseWriter, logger log.Logger, err error) {
	switch {
	case errors.Is(err, reporting.ErrInvalidFilters):
		logger.WithError(err).Warn("dashboard: filtros inválidos")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, reporting.ErrUnknownView):
		logger.WithError(err).Warn("dashboard: visão inexistente")
		apiErrors.WriteError(w, apiErrors.ErrViewNotFound, err.Error(), map[string]any{
			"views": validViews,
		})
	case errors.Is(err, loading.ErrDatasetUnavailable):
		logger.WithError(err).Error("dashboard: dados indisponíveis")
		apiErrors.WriteError(w, apiErrors.ErrDatasetUnavailable, "Erro carregando dados", err.Error())
	default:
		logger.WithError(err).Error("dashboard: erro inesperado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
	}
}

var validViews = []string{
	reporting.ViewCategories,
	reporting.ViewCategoryDetail,
	reporting.ViewBrands,
	reporting.ViewDaily,
	reporting.ViewVisitors,
	reporting.ViewProducts,
	reporting.ViewEvents,
	reporting.ViewSummary,
}

// parseFilters lê start_date, end_date (YYYY-MM-DD) e category da query string
func parseFilters(r *http.Request) (*domain.SalesFilters, string, error) {
	query := r.URL.Query()

	startDate, err := utils.ParseDate(query.Get("start_date"))
	if err != nil {
		return nil, "start_date", err
	}

	endDate, err := utils.ParseDate(query.Get("end_date"))
	if err != nil {
		return nil, "end_date", err
	}

	return &domain.SalesFilters{
		StartDate: startDate,
		EndDate:   endDate,
		Category:  query.Get("category"),
	}, "", nil
}

// filtersOrError escreve 400 quando a query string é inválida
func filtersOrError(w http.ResponseWriter, r *http.Request, logger log.Logger) (*domain.SalesFilters, bool) {
	filters, param, err := parseFilters(r)
	if err != nil {
		logger.WithFields(log.Fields{
			param:   r.URL.Query().Get(param),
			"error": err.Error(),
		}).Warn("dashboard: parâmetro de data inválido")

		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", map[string]string{
			"param": param,
		})
		return nil, false
	}

	return filters, true
}
