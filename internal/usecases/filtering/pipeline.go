// Package filtering aplica os filtros escolhidos pelo usuário sobre as linhas derivadas.
package filtering

import (
	"github.com/vfg2006/margin-report-api/internal/domain"
)

// matcher é a forma compilada de um FilterSet, montada uma vez por chamada
type matcher struct {
	months        map[float64]struct{}
	manager       string
	clientName    string
	subcategories map[string]struct{}
	marginLevel   domain.Segment
}

func compile(f domain.FilterSet) matcher {
	m := matcher{}

	if len(f.Months) > 0 {
		m.months = make(map[float64]struct{}, len(f.Months))
		for _, month := range f.Months {
			m.months[float64(month)] = struct{}{}
		}
	}

	if !domain.IsAll(f.Manager) {
		m.manager = f.Manager
	}

	if !domain.IsAll(f.ClientName) {
		m.clientName = f.ClientName
	}

	if f.SubcategoriesEnabled() {
		m.subcategories = make(map[string]struct{}, len(f.Subcategories))
		for _, s := range f.Subcategories {
			m.subcategories[s] = struct{}{}
		}
	}

	if !domain.IsAll(string(f.MarginLevel)) {
		m.marginLevel = f.MarginLevel
	}

	return m
}

func (m matcher) match(r domain.Record) bool {
	if m.months != nil {
		// NaN nunca é chave do mapa, então meses inválidos não casam
		if _, ok := m.months[r.Month]; !ok {
			return false
		}
	}

	if m.manager != "" && r.Manager != m.manager {
		return false
	}

	if m.clientName != "" && r.ClientName != m.clientName {
		return false
	}

	if m.subcategories != nil {
		if !r.HasSubcategory() {
			return false
		}
		if _, ok := m.subcategories[r.Subcategory]; !ok {
			return false
		}
	}

	if m.marginLevel != "" && r.Segment != m.marginLevel {
		return false
	}

	return true
}

// Select retorna os índices, em ordem crescente, das linhas que atendem a
// todos os filtros ativos. A entrada não é alterada.
func Select(records []domain.Record, filters domain.FilterSet) []int {
	m := compile(filters)

	indices := make([]int, 0, len(records))
	for i := range records {
		if m.match(records[i]) {
			indices = append(indices, i)
		}
	}

	return indices
}

// Apply retorna as linhas que atendem a todos os filtros ativos, preservando a
// ordem de entrada. Sem filtro ativo a própria entrada é devolvida, com a
// capacidade limitada; a entrada nunca é alterada.
func Apply(records []domain.Record, filters domain.FilterSet) []domain.Record {
	if filters.IsEmpty() {
		return records[:len(records):len(records)]
	}

	indices := Select(records, filters)
	result := make([]domain.Record, len(indices))
	for i, idx := range indices {
		result[i] = records[idx]
	}

	return result
}
