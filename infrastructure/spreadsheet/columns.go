package spreadsheet

import (
	"strings"
	"unicode"
)

// Column identifica uma coluna da planilha de vendas
type Column int

const (
	ColMonth Column = iota
	ColManager
	ColClientName
	ColSubcategory
	ColProductName
	ColActualSales
	ColCostD2
	ColCostNPK
)

// SourceColumns são os cabeçalhos usados na exportação, na ordem da planilha de origem
var SourceColumns = []string{
	"Month",
	"Manager",
	"ClientName",
	"Subcategory",
	"ProductName",
	"ActualSales2024",
	"CostD2ExVAT",
	"CostNPKExVAT",
}

// DerivedColumns são as colunas calculadas acrescentadas na exportação
var DerivedColumns = []string{
	"MarginAmount",
	"MarginPctOfCost",
	"MarginPctOfSales",
	"Segment",
}

// headerAliases mapeia cabeçalhos normalizados para colunas. Aceita os nomes em
// inglês, os nomes de campo e os rótulos em russo da planilha de vendas.
var headerAliases = map[string]Column{
	"month": ColMonth,
	"месяц": ColMonth,

	"manager":  ColManager,
	"менеджер": ColManager,

	"clientname":          ColClientName,
	"наименованиеклиента": ColClientName,

	"subcategory":  ColSubcategory,
	"субкатегория": ColSubcategory,

	"productname":          ColProductName,
	"наименованиепродукта": ColProductName,

	"actualsales2024":            ColActualSales,
	"actualsalesamount":          ColActualSales,
	"суммафактическихпродаж2024": ColActualSales,

	"costd2exvat":  ColCostD2,
	"costamountd2": ColCostD2,
	"суммад2б/ндс": ColCostD2,

	"costnpkexvat":  ColCostNPK,
	"costamountnpk": ColCostNPK,
	"сумманпкб/ндс": ColCostNPK,
}

// normalizeHeader remove espaços, sublinhados e hífens e converte para minúsculas
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsSpace(r) || r == '_' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// mapHeader resolve a posição de cada coluna conhecida no cabeçalho.
// Retorna também os nomes das colunas obrigatórias que não foram encontradas.
func mapHeader(header []string) (map[Column]int, []string) {
	positions := make(map[Column]int, len(SourceColumns))
	for i, h := range header {
		col, ok := headerAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, seen := positions[col]; !seen {
			positions[col] = i
		}
	}

	var missing []string
	for col, name := range SourceColumns {
		if _, ok := positions[Column(col)]; !ok {
			missing = append(missing, name)
		}
	}

	return positions, missing
}
