package domain

import (
	"math"
	"sort"
)

// MonthValue é um ponto de uma série agregada por mês
type MonthValue struct {
	Month int
	Value float64
}

// CategoryValue é uma barra de uma série agregada por categoria
type CategoryValue struct {
	Label string
	Count int
	Value float64
}

// Summary consolida os totais de um conjunto de linhas. Valores NaN são ignorados.
type Summary struct {
	Rows             int
	ActualSales      float64
	CostD2           float64
	CostNPK          float64
	MarginAmount     float64
	MarginPctOfSales float64
}

// ChartData reúne as séries usadas pelos gráficos
type ChartData struct {
	DatasetID          string
	Scope              string
	MonthlyMargin      []MonthValue
	SubcategoryMargin  []CategoryValue
	SegmentMarginRatio []CategoryValue
}

// Escopos possíveis para os gráficos
const (
	ChartScopeAll      = "all"
	ChartScopeFiltered = "filtered"
)

// BuildChartData calcula todas as séries dos gráficos para as linhas informadas
func BuildChartData(scope string, records []Record) *ChartData {
	return &ChartData{
		Scope:              scope,
		MonthlyMargin:      MonthlyMargin(records),
		SubcategoryMargin:  SubcategoryMarginRatio(records),
		SegmentMarginRatio: SegmentMarginRatio(records),
	}
}

// MonthlyMargin soma a margem por mês. Linhas sem mês válido são descartadas
// e margens NaN não entram na soma.
func MonthlyMargin(records []Record) []MonthValue {
	sums := make(map[int]float64)
	for _, r := range records {
		month, ok := r.MonthNumber()
		if !ok {
			continue
		}
		if _, exists := sums[month]; !exists {
			sums[month] = 0
		}
		if !math.IsNaN(r.MarginAmount) {
			sums[month] += r.MarginAmount
		}
	}

	result := make([]MonthValue, 0, len(sums))
	for month, total := range sums {
		result = append(result, MonthValue{Month: month, Value: total})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })

	return result
}

// SubcategoryMarginRatio calcula a média da margem sobre a venda por subcategoria,
// ordenada da menor para a maior. Linhas sem subcategoria são descartadas.
func SubcategoryMarginRatio(records []Record) []CategoryValue {
	return meanBy(records, func(r Record) (string, bool) {
		return r.Subcategory, r.HasSubcategory()
	})
}

// SegmentMarginRatio calcula a média da margem sobre a venda por segmento
func SegmentMarginRatio(records []Record) []CategoryValue {
	return meanBy(records, func(r Record) (string, bool) {
		return r.Segment.String(), true
	})
}

type meanAcc struct {
	count int
	valid int
	sum   float64
}

func meanBy(records []Record, key func(Record) (string, bool)) []CategoryValue {
	groups := make(map[string]*meanAcc)
	for _, r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}
		acc, exists := groups[k]
		if !exists {
			acc = &meanAcc{}
			groups[k] = acc
		}
		acc.count++
		if !math.IsNaN(r.MarginPctOfSales) && !math.IsInf(r.MarginPctOfSales, 0) {
			acc.valid++
			acc.sum += r.MarginPctOfSales
		}
	}

	result := make([]CategoryValue, 0, len(groups))
	for label, acc := range groups {
		mean := math.NaN()
		if acc.valid > 0 {
			mean = acc.sum / float64(acc.valid)
		}
		result = append(result, CategoryValue{Label: label, Count: acc.count, Value: mean})
	}

	// Ordena por rótulo primeiro para que empates fiquem estáveis
	sort.Slice(result, func(i, j int) bool { return result[i].Label < result[j].Label })
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].Value, result[j].Value
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a < b
	})

	return result
}

// Summarize consolida os totais das linhas informadas
func Summarize(records []Record) Summary {
	s := Summary{Rows: len(records)}
	for _, r := range records {
		s.ActualSales += finiteOrZero(r.ActualSalesAmount)
		s.CostD2 += finiteOrZero(r.CostAmountD2)
		s.CostNPK += finiteOrZero(r.CostAmountNPK)
		s.MarginAmount += finiteOrZero(r.MarginAmount)
	}
	s.MarginPctOfSales = percentOf(s.MarginAmount, s.ActualSales)

	return s
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
