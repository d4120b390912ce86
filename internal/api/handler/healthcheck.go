package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// HealthcheckHandler responde 200 com o snapshot atual ou 503 quando os dados não carregaram
func HealthcheckHandler(service reporting.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		info, err := service.GetDatasetInfo(r.Context())
		if err != nil {
			logger.WithError(err).Warn("healthcheck: dados indisponíveis")
			apiErrors.WriteError(w, apiErrors.ErrDatasetUnavailable, "Dados indisponíveis", nil)
			return
		}

		writeJSON(w, logger, map[string]any{
			"status":     "ok",
			"time":       time.Now(),
			"dataset_id": info.ID,
			"loaded_at":  info.LoadedAt,
		})
	})
}
