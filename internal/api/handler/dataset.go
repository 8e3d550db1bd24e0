package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/vfg2006/margin-report-api/internal/domain"
	"github.com/vfg2006/margin-report-api/internal/scheduler"
	"github.com/vfg2006/margin-report-api/internal/usecases/reporting"
	"github.com/vfg2006/margin-report-api/pkg/apiErrors"
	"github.com/vfg2006/margin-report-api/pkg/log"
)

// ReloadScheduler é o agendador de recarga visto pela API
type ReloadScheduler interface {
	TriggerManualSync() bool
	RunNow(ctx context.Context) (*domain.Dataset, error)
	GetStatus() map[string]any
}

// GetDatasetStatus retorna o dataset publicado e o status da recarga
func GetDatasetStatus(service reporting.Reporter, reloader ReloadScheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := DatasetStatusResponse{}

		if dataset := service.Dataset(); dataset != nil {
			info := dataset.Info()
			response.Loaded = true
			response.Dataset = &info
			w.Header().Set(DatasetIDHeader, dataset.ID)
		}

		if reloader != nil {
			response.Reload = reloader.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, response)
	})
}

// ReloadDataset recarrega o dataset. Com wait=true a recarga roda na própria
// requisição e a resposta traz o novo dataset; sem ele a recarga é só disparada.
// Com agendador, as duas formas passam por ele para manter o status em dia.
func ReloadDataset(service reporting.Reporter, reloader ReloadScheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		if r.URL.Query().Get("wait") == "true" || reloader == nil {
			var (
				dataset *domain.Dataset
				err     error
			)
			if reloader != nil {
				dataset, err = reloader.RunNow(r.Context())
			} else {
				dataset, err = service.Reload(r.Context())
			}
			if errors.Is(err, scheduler.ErrReloadInProgress) {
				apiErrors.WriteError(w, apiErrors.ErrReloadInProgress, err.Error(), nil)
				return
			}
			if err != nil {
				writeServiceError(w, r, err, "Erro ao recarregar dataset")
				return
			}

			info := dataset.Info()
			logger.WithFields(log.Fields{"dataset_id": info.ID, "rows": info.Rows}).Info("Dataset recarregado")

			w.Header().Set(DatasetIDHeader, info.ID)
			writeJSON(w, r, http.StatusOK, DatasetStatusResponse{Loaded: true, Dataset: &info})
			return
		}

		triggered := reloader.TriggerManualSync()
		message := "Recarga do dataset iniciada"
		if !triggered {
			message = "Recarga do dataset já em andamento"
		}
		logger.Info(message)

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message":   message,
			"triggered": triggered,
		})
	})
}
