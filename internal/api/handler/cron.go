package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/branch-analytics-api/internal/scheduler"
	"github.com/vfg2006/branch-analytics-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeUploadCleanup = "upload-cleanup"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	UploadCleanupService *scheduler.UploadCleanupService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeUploadCleanup:
			if services.UploadCleanupService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de limpeza de uploads não disponível", nil)
				return
			}
			services.UploadCleanupService.TriggerManualCleanup()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: upload-cleanup", nil)
			return
		}

		logrus.WithField("type", cronType).Info("Cron job disparada manualmente")

		respondJSON(w, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, map[string]any{
			"upload-cleanup": services.UploadCleanupService.GetStatus(),
		})
	}
}
