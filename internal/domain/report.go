package domain

// Report é o resultado de uma interação com os filtros: a visão filtrada e o
// conjunto completo, que alimenta os gráficos.
type Report struct {
	DatasetID string
	Filters   FilterSet
	Filtered  []Record
	All       []Record
	Summary   Summary
}

// ExportResult descreve uma exportação: o dataset usado e quantas linhas foram gravadas
type ExportResult struct {
	DatasetID string
	Rows      int
}
