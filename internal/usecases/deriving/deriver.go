// Package deriving transforma as linhas brutas da planilha em linhas tipadas
// com as métricas de margem e o segmento calculados.
package deriving

import (
	"math"
	"strconv"
	"strings"

	"github.com/vfg2006/margin-report-api/internal/domain"
)

// Derive converte cada linha bruta em uma linha derivada. Toda linha de entrada
// gera exatamente uma linha de saída; valores numéricos inválidos viram NaN.
func Derive(raw []domain.RawRecord) []domain.Record {
	records := make([]domain.Record, len(raw))
	for i, r := range raw {
		records[i] = DeriveOne(r)
	}
	return records
}

// DeriveOne converte uma única linha bruta. Os campos de texto são mantidos
// exatamente como vieram da célula.
func DeriveOne(raw domain.RawRecord) domain.Record {
	rec := domain.Record{
		Month:             ParseNumber(raw.Month),
		Manager:           raw.Manager,
		ClientName:        raw.ClientName,
		Subcategory:       raw.Subcategory,
		ProductName:       raw.ProductName,
		ActualSalesAmount: ParseNumber(raw.ActualSalesAmount),
		CostAmountD2:      ParseNumber(raw.CostAmountD2),
		CostAmountNPK:     ParseNumber(raw.CostAmountNPK),
	}

	rec.MarginAmount, rec.MarginPctOfCost, rec.MarginPctOfSales = domain.CalculateMargins(rec.ActualSalesAmount, rec.CostAmountD2)
	rec.Segment = domain.Classify(rec.MarginPctOfSales)

	return rec
}

// ParseNumber converte o texto de uma célula em número. Células vazias, texto
// não numérico e infinitos resultam em NaN.
func ParseNumber(value string) float64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return math.NaN()
	}

	lower := strings.ToLower(strings.TrimLeft(s, "+-"))
	if strings.HasPrefix(lower, "0x") || strings.Contains(lower, "_") {
		return math.NaN()
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return math.NaN()
	}

	return f
}
