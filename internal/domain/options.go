package domain

import "sort"

// FilterOptions lista as opções disponíveis para cada controle de filtro
type FilterOptions struct {
	DatasetID     string    `json:"-"`
	Months        []int     `json:"months"`
	Managers      []string  `json:"managers"`
	ClientNames   []string  `json:"client_names"`
	Subcategories []string  `json:"subcategories"`
	MarginLevels  []Segment `json:"margin_levels"`
}

// BuildFilterOptions extrai os valores distintos e ordenados de cada coluna filtrável.
// Meses inválidos e subcategorias vazias ficam de fora.
func BuildFilterOptions(records []Record) *FilterOptions {
	months := make(map[int]struct{})
	managers := make(map[string]struct{})
	clients := make(map[string]struct{})
	subcategories := make(map[string]struct{})

	for _, r := range records {
		if m, ok := r.MonthNumber(); ok {
			months[m] = struct{}{}
		}
		if r.Manager != "" {
			managers[r.Manager] = struct{}{}
		}
		if r.ClientName != "" {
			clients[r.ClientName] = struct{}{}
		}
		if r.HasSubcategory() {
			subcategories[r.Subcategory] = struct{}{}
		}
	}

	opts := &FilterOptions{
		Months:        make([]int, 0, len(months)),
		Managers:      sortedKeys(managers),
		ClientNames:   sortedKeys(clients),
		Subcategories: sortedKeys(subcategories),
		MarginLevels:  append([]Segment{AllSentinel}, Segments...),
	}
	for m := range months {
		opts.Months = append(opts.Months, m)
	}
	sort.Ints(opts.Months)

	return opts
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
