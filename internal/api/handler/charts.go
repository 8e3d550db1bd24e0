package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/margin-report-api/infrastructure/charts"
	"github.com/vfg2006/margin-report-api/internal/domain"
	"github.com/vfg2006/margin-report-api/internal/usecases/reporting"
	"github.com/vfg2006/margin-report-api/pkg/apiErrors"
	"github.com/vfg2006/margin-report-api/pkg/log"
)

const (
	queryFormat = "format"
	queryScope  = "scope"
	formatPNG   = "png"
)

// GetChart devolve as séries de um gráfico em JSON ou, com format=png, a imagem.
// Por padrão o gráfico usa o dataset inteiro; scope=filtered aplica os filtros da query.
func GetChart(service reporting.Reporter, renderer *charts.Renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		kind, err := charts.ParseKind(httprouter.ParamsFromContext(r.Context()).ByName("name"))
		if err != nil {
			writeServiceError(w, r, err, "Gráfico desconhecido")
			return
		}

		var filters *domain.FilterSet
		switch scope := query.Get(queryScope); scope {
		case "", domain.ChartScopeAll:
		case domain.ChartScopeFiltered:
			parsed, err := parseFilters(query)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
				return
			}
			filters = &parsed
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "scope inválido: use all ou filtered", nil)
			return
		}

		data, err := service.Charts(filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao agregar dados do gráfico")
			return
		}
		w.Header().Set(DatasetIDHeader, data.DatasetID)

		if query.Get(queryFormat) == formatPNG {
			var buf bytes.Buffer
			if err := renderer.Render(&buf, kind, data); err != nil {
				writeServiceError(w, r, err, "Erro ao desenhar gráfico")
				return
			}

			w.Header().Set("Content-Type", "image/png")
			w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
			w.WriteHeader(http.StatusOK)
			if _, err := buf.WriteTo(w); err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("Erro ao enviar gráfico")
			}
			return
		}

		response := ChartResponse{Name: string(kind), Scope: data.Scope}
		switch kind {
		case charts.KindMonthlyMargin:
			response.Points = toMonthPoints(data.MonthlyMargin)
		case charts.KindSubcategoryMargin:
			response.Points = toCategoryPoints(data.SubcategoryMargin)
		case charts.KindSegmentMargin:
			response.Points = toCategoryPoints(data.SegmentMarginRatio)
		}

		writeJSON(w, r, http.StatusOK, response)
	})
}
