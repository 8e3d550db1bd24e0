package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/margin-report-api/infrastructure/charts"
	"github.com/vfg2006/margin-report-api/infrastructure/spreadsheet"
	"github.com/vfg2006/margin-report-api/internal/config"
	"github.com/vfg2006/margin-report-api/internal/usecases/reporting"
	"github.com/xuri/excelize/v2"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Export: config.Export{SheetName: "Detailed data", FileName: "filtered_data.xlsx"},
		Charts: config.Charts{Width: 640, Height: 480},
		Cors:   config.Cors{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func writeSalesFile(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Месяц", "Менеджер", "Наименование клиента", "Субкатегория", "Наименование продукта",
			"Сумма фактических продаж 2024", "Сумма Д2 б/НДС", "Сумма НПК б/НДС"},
		{1, "Ivanova", "Alfa", "Cables", "P1", 1000, 700, 650},
		{2, "Petrov", "Beta", "Lamps", "P2", 200, 190, 180},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func newTestHandler(t *testing.T, load bool) http.Handler {
	t.Helper()

	cfg := newTestConfig()
	service := reporting.NewService(
		spreadsheet.NewFileSource(writeSalesFile(t), "", 1),
		spreadsheet.NewWriter(cfg.Export.SheetName),
	)
	if load {
		_, err := service.Load(context.Background())
		require.NoError(t, err)
	}

	return NewHandler(cfg, service, nil, charts.NewRenderer(cfg.Charts.Width, cfg.Charts.Height))
}

func TestHandler_ReportThroughMiddlewares(t *testing.T) {
	h := newTestHandler(t, true)

	req := httptest.NewRequest(http.MethodGet, "/v1/report?manager=Petrov", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("X-Correlation-ID", "corr-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "corr-1", rec.Header().Get("X-Correlation-ID"))
	assert.NotEmpty(t, rec.Header().Get("X-Dataset-ID"))
	assert.Contains(t, rec.Body.String(), `"product_name":"P2"`)
	assert.NotContains(t, rec.Body.String(), `"product_name":"P1"`)
}

func TestHandler_NotLoadedUntilReload(t *testing.T) {
	h := newTestHandler(t, false)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/report", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/dataset/reload", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"loaded":true`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/report/options", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"managers":["Ivanova","Petrov"]`)
}

func TestHandler_UnknownRoutes(t *testing.T) {
	h := newTestHandler(t, true)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v2/report", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "API_001")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/report", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "API_002")
}

func TestHandler_Preflight(t *testing.T) {
	h := newTestHandler(t, true)

	req := httptest.NewRequest(http.MethodOptions, "/v1/report/export", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestHandler_ExportAndChart(t *testing.T) {
	h := newTestHandler(t, true)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/report/export?margin_level=High", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Export-Rows"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "filtered_data.xlsx")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/charts/monthly-margin?format=png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}
