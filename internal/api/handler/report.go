package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vfg2006/margin-report-api/internal/usecases/reporting"
	"github.com/vfg2006/margin-report-api/pkg/apiErrors"
	"github.com/vfg2006/margin-report-api/pkg/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func GetReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseFilters(r.URL.Query())
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		report, err := service.Report(filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar relatório")
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"dataset_id":    report.DatasetID,
			"rows":          len(report.All),
			"filtered_rows": len(report.Filtered),
		}).Debug("Relatório gerado")

		w.Header().Set(DatasetIDHeader, report.DatasetID)
		writeJSON(w, r, http.StatusOK, toReportResponse(report))
	})
}

func GetReportOptions(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		options, err := service.Options()
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar opções de filtro")
			return
		}

		w.Header().Set(DatasetIDHeader, options.DatasetID)
		writeJSON(w, r, http.StatusOK, options)
	})
}

// ExportReport devolve as linhas filtradas como planilha. O arquivo é montado em
// memória para que um erro ainda possa virar resposta JSON.
func ExportReport(service reporting.Reporter, fileName string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseFilters(r.URL.Query())
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		var buf bytes.Buffer
		result, err := service.Export(&buf, filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao exportar planilha")
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"dataset_id":    result.DatasetID,
			"filtered_rows": result.Rows,
		}).Info("Planilha exportada")

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Header().Set("X-Export-Rows", strconv.Itoa(result.Rows))
		w.Header().Set(DatasetIDHeader, result.DatasetID)
		w.WriteHeader(http.StatusOK)

		if _, err := buf.WriteTo(w); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Erro ao enviar planilha")
		}
	})
}
