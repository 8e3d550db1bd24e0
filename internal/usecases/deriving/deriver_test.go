package deriving

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/margin-report-api/internal/domain"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		isNaN bool
	}{
		{name: "inteiro", input: "1000", want: 1000},
		{name: "decimal com espaços", input: "  12.5 ", want: 12.5},
		{name: "negativo", input: "-300.25", want: -300.25},
		{name: "notação exponencial", input: "1.5E3", want: 1500},
		{name: "vazio", input: "", isNaN: true},
		{name: "só espaços", input: "   ", isNaN: true},
		{name: "texto", input: "n/a", isNaN: true},
		{name: "vírgula decimal", input: "12,5", isNaN: true},
		{name: "infinito", input: "Inf", isNaN: true},
		{name: "hexadecimal", input: "0x1F", isNaN: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNumber(tt.input)
			if tt.isNaN {
				assert.True(t, math.IsNaN(got), "esperado NaN, obtido %v", got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveOne_HighMarginScenario(t *testing.T) {
	rec := DeriveOne(domain.RawRecord{
		Month:             "3",
		Manager:           "Ivanova",
		ClientName:        "Client A",
		ActualSalesAmount: "1000",
		CostAmountD2:      "700",
		CostAmountNPK:     "650",
	})

	assert.Equal(t, 3.0, rec.Month)
	assert.Equal(t, 300.0, rec.MarginAmount)
	assert.InDelta(t, 42.857, rec.MarginPctOfCost, 0.001)
	assert.Equal(t, 30.0, rec.MarginPctOfSales)
	assert.Equal(t, domain.SegmentHigh, rec.Segment)
}

func TestDeriveOne_ZeroCost(t *testing.T) {
	rec := DeriveOne(domain.RawRecord{ActualSalesAmount: "500", CostAmountD2: "0"})

	assert.Equal(t, 500.0, rec.MarginAmount)
	assert.True(t, math.IsNaN(rec.MarginPctOfCost))
	assert.Equal(t, 100.0, rec.MarginPctOfSales)
	assert.Equal(t, domain.SegmentHigh, rec.Segment)
}

func TestDeriveOne_MalformedNumbersDegradeToNaN(t *testing.T) {
	rec := DeriveOne(domain.RawRecord{
		Month:             "março",
		ActualSalesAmount: "abc",
		CostAmountD2:      "",
		CostAmountNPK:     "—",
	})

	assert.True(t, math.IsNaN(rec.Month))
	assert.True(t, math.IsNaN(rec.ActualSalesAmount))
	assert.True(t, math.IsNaN(rec.CostAmountD2))
	assert.True(t, math.IsNaN(rec.CostAmountNPK))
	assert.True(t, math.IsNaN(rec.MarginAmount))
	assert.True(t, math.IsNaN(rec.MarginPctOfCost))
	assert.True(t, math.IsNaN(rec.MarginPctOfSales))
	assert.Equal(t, domain.SegmentLow, rec.Segment)
}

func TestDeriveOne_KeepsCategoricalValuesVerbatim(t *testing.T) {
	rec := DeriveOne(domain.RawRecord{
		Manager:     " Ivanova ",
		ClientName:  "Alfa\t",
		Subcategory: " ",
		ProductName: "P1 ",
	})

	assert.Equal(t, " Ivanova ", rec.Manager)
	assert.Equal(t, "Alfa\t", rec.ClientName)
	assert.Equal(t, " ", rec.Subcategory)
	assert.True(t, rec.HasSubcategory())
	assert.Equal(t, "P1 ", rec.ProductName)
}

func TestDeriveOne_ZeroSales(t *testing.T) {
	rec := DeriveOne(domain.RawRecord{ActualSalesAmount: "0", CostAmountD2: "100"})

	assert.Equal(t, -100.0, rec.MarginAmount)
	assert.Equal(t, -100.0, rec.MarginPctOfCost)
	assert.True(t, math.IsNaN(rec.MarginPctOfSales))
	assert.Equal(t, domain.SegmentLow, rec.Segment)
}

func TestDerive_TotalityAndOrder(t *testing.T) {
	raw := []domain.RawRecord{
		{ProductName: "A", ActualSalesAmount: "100", CostAmountD2: "90"},
		{ProductName: "B", ActualSalesAmount: "???", CostAmountD2: "90"},
		{ProductName: "C"},
		{ProductName: "D", ActualSalesAmount: "200", CostAmountD2: "160"},
	}
	original := append([]domain.RawRecord(nil), raw...)

	records := Derive(raw)

	require.Len(t, records, len(raw))
	for i, r := range records {
		assert.Equal(t, raw[i].ProductName, r.ProductName)
		assert.True(t, r.Segment.IsValid())
	}
	assert.Equal(t, domain.SegmentLow, records[0].Segment)
	assert.Equal(t, domain.SegmentMedium, records[3].Segment)
	assert.Equal(t, original, raw, "a entrada não deve ser alterada")
}

func TestDerive_SegmentBands(t *testing.T) {
	tests := []struct {
		sales, cost string
		want        domain.Segment
	}{
		{"100", "70", domain.SegmentHigh},      // 30%
		{"100", "70.01", domain.SegmentMedium}, // 29.99%
		{"100", "85", domain.SegmentMedium},    // 15%
		{"100", "85.01", domain.SegmentLow},    // 14.99%
		{"100", "120", domain.SegmentLow},      // negativo
	}

	for _, tt := range tests {
		rec := DeriveOne(domain.RawRecord{ActualSalesAmount: tt.sales, CostAmountD2: tt.cost})
		assert.Equal(t, tt.want, rec.Segment, "sales=%s cost=%s pct=%v", tt.sales, tt.cost, rec.MarginPctOfSales)
	}
}

func TestDerive_Empty(t *testing.T) {
	assert.Empty(t, Derive(nil))
}
