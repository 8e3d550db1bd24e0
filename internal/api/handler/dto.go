package handler

import (
	"time"

	"github.com/vfg2006/margin-report-api/internal/domain"
	"github.com/vfg2006/margin-report-api/pkg/utils"
)

// Na fronteira JSON os valores NaN viram null

type RecordResponse struct {
	Month             *float64 `json:"month"`
	Manager           string   `json:"manager"`
	ClientName        string   `json:"client_name"`
	Subcategory       *string  `json:"subcategory"`
	ProductName       string   `json:"product_name"`
	ActualSalesAmount *float64 `json:"actual_sales_amount"`
	CostAmountD2      *float64 `json:"cost_amount_d2"`
	CostAmountNPK     *float64 `json:"cost_amount_npk"`
	MarginAmount      *float64 `json:"margin_amount"`
	MarginPctOfCost   *float64 `json:"margin_pct_of_cost"`
	MarginPctOfSales  *float64 `json:"margin_pct_of_sales"`
	Segment           string   `json:"segment"`
}

type SummaryResponse struct {
	Rows             int      `json:"rows"`
	ActualSales      float64  `json:"actual_sales"`
	CostD2           float64  `json:"cost_d2"`
	CostNPK          float64  `json:"cost_npk"`
	MarginAmount     float64  `json:"margin_amount"`
	MarginPctOfSales *float64 `json:"margin_pct_of_sales"`
}

type FiltersResponse struct {
	Months        []int    `json:"months"`
	Manager       string   `json:"manager"`
	ClientName    string   `json:"client_name"`
	Subcategories []string `json:"subcategories"`
	MarginLevel   string   `json:"margin_level"`
}

type ReportResponse struct {
	DatasetID string           `json:"dataset_id"`
	Filters   FiltersResponse  `json:"filters"`
	TotalRows int              `json:"total_rows"`
	Summary   SummaryResponse  `json:"summary"`
	Rows      []RecordResponse `json:"rows"`
}

type MonthPointResponse struct {
	Month int     `json:"month"`
	Value float64 `json:"value"`
}

type CategoryPointResponse struct {
	Label string   `json:"label"`
	Count int      `json:"count"`
	Value *float64 `json:"value"`
}

// ChartResponse traz os pontos do gráfico: MonthPointResponse para o mensal e
// CategoryPointResponse para os de barras
type ChartResponse struct {
	Name   string `json:"name"`
	Scope  string `json:"scope"`
	Points any    `json:"points"`
}

type DatasetStatusResponse struct {
	Loaded  bool                `json:"loaded"`
	Dataset *domain.DatasetInfo `json:"dataset"`
	Reload  map[string]any      `json:"reload,omitempty"`
}

type HealthcheckResponse struct {
	Status    string    `json:"status"`
	DatasetID string    `json:"dataset_id,omitempty"`
	Time      time.Time `json:"time"`
}

func toRecordResponse(r domain.Record) RecordResponse {
	var subcategory *string
	if r.HasSubcategory() {
		s := r.Subcategory
		subcategory = &s
	}

	return RecordResponse{
		Month:             utils.FloatPtr(r.Month),
		Manager:           r.Manager,
		ClientName:        r.ClientName,
		Subcategory:       subcategory,
		ProductName:       r.ProductName,
		ActualSalesAmount: utils.FloatPtr(r.ActualSalesAmount),
		CostAmountD2:      utils.FloatPtr(r.CostAmountD2),
		CostAmountNPK:     utils.FloatPtr(r.CostAmountNPK),
		MarginAmount:      utils.FloatPtr(r.MarginAmount),
		MarginPctOfCost:   utils.FloatPtr(r.MarginPctOfCost),
		MarginPctOfSales:  utils.FloatPtr(r.MarginPctOfSales),
		Segment:           r.Segment.String(),
	}
}

func toReportResponse(report *domain.Report) ReportResponse {
	rows := make([]RecordResponse, 0, len(report.Filtered))
	for _, r := range report.Filtered {
		rows = append(rows, toRecordResponse(r))
	}

	return ReportResponse{
		DatasetID: report.DatasetID,
		Filters:   toFiltersResponse(report.Filters),
		TotalRows: len(report.All),
		Summary:   toSummaryResponse(report.Summary),
		Rows:      rows,
	}
}

func toFiltersResponse(f domain.FilterSet) FiltersResponse {
	return FiltersResponse{
		Months:        f.Months,
		Manager:       f.Manager,
		ClientName:    f.ClientName,
		Subcategories: f.Subcategories,
		MarginLevel:   string(f.MarginLevel),
	}
}

func toSummaryResponse(s domain.Summary) SummaryResponse {
	return SummaryResponse{
		Rows:             s.Rows,
		ActualSales:      s.ActualSales,
		CostD2:           s.CostD2,
		CostNPK:          s.CostNPK,
		MarginAmount:     s.MarginAmount,
		MarginPctOfSales: utils.FloatPtr(s.MarginPctOfSales),
	}
}

func toCategoryPoints(values []domain.CategoryValue) []CategoryPointResponse {
	points := make([]CategoryPointResponse, 0, len(values))
	for _, v := range values {
		points = append(points, CategoryPointResponse{
			Label: v.Label,
			Count: v.Count,
			Value: utils.FloatPtr(v.Value),
		})
	}
	return points
}

func toMonthPoints(values []domain.MonthValue) []MonthPointResponse {
	points := make([]MonthPointResponse, 0, len(values))
	for _, v := range values {
		points = append(points, MonthPointResponse{Month: v.Month, Value: v.Value})
	}
	return points
}
