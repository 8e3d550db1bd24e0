package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Dataset é o conjunto completo de linhas carregado em uma sessão.
// Depois de criado ele nunca é alterado; um reload gera um novo Dataset.
type Dataset struct {
	ID       string
	Source   string
	LoadedAt time.Time
	records  []Record
}

// NewDataset cria um Dataset imutável a partir das linhas já derivadas
func NewDataset(source string, records []Record) *Dataset {
	return &Dataset{
		ID:       uuid.New().String(),
		Source:   source,
		LoadedAt: time.Now(),
		records:  slices.Clone(records),
	}
}

// Records retorna as linhas do Dataset na ordem de carga. O slice é uma visão
// somente leitura compartilhada entre as requisições e não deve ser alterado;
// a capacidade é limitada para que append nunca escreva sobre ele.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return d.records[:len(d.records):len(d.records)]
}

// Len retorna a quantidade de linhas do Dataset
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// DatasetInfo resume o Dataset atual para a API
type DatasetInfo struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
	Rows     int       `json:"rows"`
}

// Info retorna o resumo do Dataset
func (d *Dataset) Info() DatasetInfo {
	return DatasetInfo{
		ID:       d.ID,
		Source:   d.Source,
		LoadedAt: d.LoadedAt,
		Rows:     len(d.records),
	}
}
