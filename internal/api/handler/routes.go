package handler

import (
	"net/http"

	"github.com/vfg2006/margin-report-api/infrastructure/charts"
	"github.com/vfg2006/margin-report-api/internal/api/handler/router"
	"github.com/vfg2006/margin-report-api/internal/usecases/reporting"
)

func Healthcheck(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(service),
		},
	}
}

func Report(service reporting.Reporter, exportFileName string) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/report",
			Method:  http.MethodGet,
			Handler: GetReport(service),
		},
		{
			Path:    "/v1/report/options",
			Method:  http.MethodGet,
			Handler: GetReportOptions(service),
		},
		{
			Path:    "/v1/report/export",
			Method:  http.MethodGet,
			Handler: ExportReport(service, exportFileName),
		},
	}
}

func Charts(service reporting.Reporter, renderer *charts.Renderer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/charts/:name",
			Method:  http.MethodGet,
			Handler: GetChart(service, renderer),
		},
	}
}

func Dataset(service reporting.Reporter, reloader ReloadScheduler) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dataset",
			Method:  http.MethodGet,
			Handler: GetDatasetStatus(service, reloader),
		},
		{
			Path:    "/v1/dataset/reload",
			Method:  http.MethodPost,
			Handler: ReloadDataset(service, reloader),
		},
	}
}
