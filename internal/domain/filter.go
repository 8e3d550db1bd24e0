package domain

// AllSentinel desabilita o filtro de um campo ("selecionar todos")
const AllSentinel = "all"

// FilterSet representa os valores escolhidos pelo usuário nos controles de filtro.
// Cada campo é independente; zero value ou AllSentinel desabilita o predicado.
type FilterSet struct {
	Months        []int
	Manager       string
	ClientName    string
	Subcategories []string
	MarginLevel   Segment
}

// IsAll indica se o valor de um filtro de seleção única está desabilitado
func IsAll(value string) bool {
	return value == "" || value == AllSentinel
}

// SubcategoriesEnabled indica se o filtro de subcategorias está ativo
func (f FilterSet) SubcategoriesEnabled() bool {
	if len(f.Subcategories) == 0 {
		return false
	}
	for _, s := range f.Subcategories {
		if s == AllSentinel {
			return false
		}
	}
	return true
}

// IsEmpty indica se nenhum predicado está ativo
func (f FilterSet) IsEmpty() bool {
	return len(f.Months) == 0 &&
		IsAll(f.Manager) &&
		IsAll(f.ClientName) &&
		!f.SubcategoriesEnabled() &&
		IsAll(string(f.MarginLevel))
}
