package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/margin-report-api/internal/usecases/reporting"
)

// HealthcheckHandler responde sempre 200 enquanto o processo está de pé; o
// status "degraded" indica que ainda não há dataset carregado.
func HealthcheckHandler(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := HealthcheckResponse{Status: "ok", Time: time.Now()}

		if dataset := service.Dataset(); dataset != nil {
			response.DatasetID = dataset.ID
		} else {
			response.Status = "degraded"
		}

		writeJSON(w, r, http.StatusOK, response)
	})
}
