package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeDatasetReload = "dataset-reload"
	CronJobTypeAll           = "all"
)

// ManualSyncer é implementado pelos serviços agendados que aceitam execução manual
type ManualSyncer interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	DatasetReloadService ManualSyncer
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeDatasetReload, CronJobTypeAll:
			if services.DatasetReloadService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de recarga de dados não disponível", nil)
				return
			}
			services.DatasetReloadService.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: dataset-reload, all", nil)
			return
		}

		logger.WithField("type", cronType).Info("cron: execução manual iniciada")

		writeJSONStatus(w, logger, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status da cron job informada, ou de todas com "all"
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType != CronJobTypeDatasetReload && cronType != CronJobTypeAll {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: dataset-reload, all", nil)
			return
		}

		status := map[string]any{}
		if services.DatasetReloadService != nil {
			status[CronJobTypeDatasetReload] = services.DatasetReloadService.GetStatus()
		}

		writeJSON(w, log.ForContext(r.Context()), status)
	})
}
