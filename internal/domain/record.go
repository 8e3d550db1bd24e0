package domain

import "math"

// RawRecord representa uma linha da planilha de origem, com os valores
// ainda em texto bruto. Campo vazio significa célula ausente.
type RawRecord struct {
	Month             string
	Manager           string
	ClientName        string
	Subcategory       string
	ProductName       string
	ActualSalesAmount string
	CostAmountD2      string
	CostAmountNPK     string
}

// Record é uma linha já tipada e enriquecida com as métricas derivadas.
// Valores numéricos ausentes ou inválidos são NaN.
type Record struct {
	Month       float64
	Manager     string
	ClientName  string
	Subcategory string // vazio = sem subcategoria
	ProductName string

	ActualSalesAmount float64
	CostAmountD2      float64
	CostAmountNPK     float64

	// Métricas derivadas
	MarginAmount     float64
	MarginPctOfCost  float64
	MarginPctOfSales float64
	Segment          Segment
}

// MonthNumber retorna o mês como inteiro quando ele é um número inteiro finito.
func (r Record) MonthNumber() (int, bool) {
	if math.IsNaN(r.Month) || math.IsInf(r.Month, 0) || r.Month != math.Trunc(r.Month) {
		return 0, false
	}
	return int(r.Month), true
}

// HasSubcategory indica se a linha possui subcategoria preenchida
func (r Record) HasSubcategory() bool {
	return r.Subcategory != ""
}

// CalculateMargins calcula as métricas de margem a partir dos valores de venda e custo.
// Divisão por zero ou por NaN resulta em NaN.
func CalculateMargins(sales, costD2 float64) (amount, pctOfCost, pctOfSales float64) {
	amount = sales - costD2
	pctOfCost = percentOf(amount, costD2)
	pctOfSales = percentOf(amount, sales)
	return amount, pctOfCost, pctOfSales
}

func percentOf(value, base float64) float64 {
	if base == 0 || math.IsNaN(base) {
		return math.NaN()
	}
	return value / base * 100
}
