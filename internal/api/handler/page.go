package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageFuncs = template.FuncMap{
	"money": func(v float64) string {
		return "$" + decimal.NewFromFloat(v).StringFixed(2)
	},
	"pct": func(v float64) string {
		return decimal.NewFromFloat(v).StringFixed(1) + "%"
	},
	"num": func(v float64) string {
		return decimal.NewFromFloat(v).StringFixed(2)
	},
	"date": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(time.DateOnly)
	},
	"itemID": func(id *int64) string {
		if id == nil {
			return "-"
		}
		return fmt.Sprint(*id)
	},
}

var pageTemplate = template.Must(template.New("dashboard.html").Funcs(pageFuncs).ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	Dashboard *domain.DashboardResponse
	Error     string
}

// DashboardPage renderiza o dashboard em HTML com os mesmos filtros da API
func DashboardPage(service reporting.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		status := http.StatusOK
		data := pageData{}

		filters, param, err := parseFilters(r)
		if err == nil {
			data.Dashboard, err = service.GetDashboard(r.Context(), filters)
		} else {
			err = errors.Wrapf(err, "parâmetro %s inválido", param)
		}

		if err != nil {
			logger.WithError(err).Warn("page: erro ao gerar dashboard")
			status = pageStatus(err, filters == nil)
			data.Error = err.Error()
		}

		var buf bytes.Buffer
		if err := pageTemplate.Execute(&buf, data); err != nil {
			logger.WithError(err).Error("page: falha ao renderizar template")
			http.Error(w, "Erro interno no servidor", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if data.Dashboard != nil {
			w.Header().Set("X-Dataset-ID", data.Dashboard.DatasetID)
		}
		w.WriteHeader(status)
		if _, err := buf.WriteTo(w); err != nil {
			logger.WithError(err).Warn("page: falha ao escrever resposta")
		}
	})
}

func pageStatus(err error, badQuery bool) int {
	switch {
	case badQuery, errors.Is(err, reporting.ErrInvalidFilters):
		return http.StatusBadRequest
	case errors.Is(err, loading.ErrDatasetUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
