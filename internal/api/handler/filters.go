package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vfg2006/margin-report-api/internal/domain"
)

// Parâmetros de query aceitos pelos endpoints de relatório
const (
	queryMonths        = "months"
	queryManager       = "manager"
	queryClientName    = "client_name"
	querySubcategories = "subcategories"
	queryMarginLevel   = "margin_level"
)

// parseFilters monta o FilterSet a partir da query. Listas aceitam valores
// separados por vírgula ou o parâmetro repetido; "all" desabilita o filtro.
// Só meses não inteiros são rejeitados; o resto vai para o pipeline como veio.
func parseFilters(query url.Values) (domain.FilterSet, error) {
	filters := domain.FilterSet{
		Manager:       strings.TrimSpace(query.Get(queryManager)),
		ClientName:    strings.TrimSpace(query.Get(queryClientName)),
		Subcategories: listValues(query, querySubcategories),
		MarginLevel:   domain.Segment(strings.TrimSpace(query.Get(queryMarginLevel))),
	}

	for _, v := range listValues(query, queryMonths) {
		if v == domain.AllSentinel {
			filters.Months = nil
			break
		}

		month, err := strconv.Atoi(v)
		if err != nil {
			return domain.FilterSet{}, fmt.Errorf("mês inválido: %q", v)
		}
		filters.Months = append(filters.Months, month)
	}

	return filters, nil
}

func listValues(query url.Values, key string) []string {
	var values []string
	for _, raw := range query[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	}
	return values
}
