package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/margin-report-api/infrastructure/charts"
	"github.com/vfg2006/margin-report-api/internal/usecases/reporting"
	"github.com/vfg2006/margin-report-api/pkg/apiErrors"
	"github.com/vfg2006/margin-report-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DatasetIDHeader identifica em qual dataset a resposta foi calculada
const DatasetIDHeader = "X-Dataset-ID"

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao codificar resposta")
	}
}

// writeServiceError traduz os erros do serviço de relatório para o erro padronizado da API
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger := log.ForContext(r.Context()).WithError(err)

	var reportErr *reporting.ReportError
	switch {
	case errors.As(err, &reportErr):
		if reportErr.Code == apiErrors.ErrDatasetNotLoaded {
			logger.Warn(fallback)
		} else {
			logger.Error(fallback)
		}
		apiErrors.WriteError(w, reportErr.Code, reportErr.Error(), nil)

	case errors.Is(err, charts.ErrNotEnoughData):
		logger.Warn(fallback)
		apiErrors.WriteError(w, apiErrors.ErrNotEnoughData, "Dados insuficientes para o gráfico", nil)

	case errors.Is(err, charts.ErrUnknownChart):
		apiErrors.WriteError(w, apiErrors.ErrUnknownChart, err.Error(), nil)

	default:
		logger.Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}
