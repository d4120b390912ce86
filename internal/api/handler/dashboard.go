package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

func GetDashboard(service reporting.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, ok := filtersOrError(w, r, logger)
		if !ok {
			return
		}

		dashboard, err := service.GetDashboard(r.Context(), filters)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		logger.WithFields(log.Fields{
			"dataset_id": dashboard.DatasetID,
			"category":   dashboard.Filters.Category,
			"records":    dashboard.Headline.SalesRecords,
		}).Info("dashboard: dashboard gerado")

		writeJSON(w, logger, dashboard)
	})
}

func GetKPIs(service reporting.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, ok := filtersOrError(w, r, logger)
		if !ok {
			return
		}

		kpis, err := service.GetKPIs(r.Context(), filters)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, kpis)
	})
}

func GetView(service reporting.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		view := httprouter.ParamsFromContext(r.Context()).ByName("view")
		logger = logger.WithField("view", view)

		filters, ok := filtersOrError(w, r, logger)
		if !ok {
			return
		}

		rows, err := service.GetView(r.Context(), view, filters)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, map[string]any{
			"view": view,
			"data": rows,
		})
	})
}

func GetFilterOptions(service reporting.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		options, err := service.GetFilterOptions(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, options)
	})
}

func GetDatasetInfo(service reporting.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		info, err := service.GetDatasetInfo(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, info)
	})
}
