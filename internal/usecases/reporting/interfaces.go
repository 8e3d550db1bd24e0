package reporting

import (
	"context"
	"io"

	"github.com/vfg2006/margin-report-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// RecordSource define de onde vêm as linhas brutas de vendas
type RecordSource interface {
	// Load lê todas as linhas da origem
	Load(ctx context.Context) ([]domain.RawRecord, error)
	// Describe identifica a origem nos logs e no status do dataset
	Describe() string
}

// Exporter grava linhas derivadas em um formato de planilha
type Exporter interface {
	Write(dst io.Writer, records []domain.Record) error
}

// Reporter é o serviço completo do relatório de margem
type Reporter interface {
	// Load lê a origem, deriva as métricas e publica um novo dataset
	Load(ctx context.Context) (*domain.Dataset, error)
	// Reload é o mesmo que Load; o dataset anterior continua publicado em caso de falha
	Reload(ctx context.Context) (*domain.Dataset, error)
	// Dataset retorna o dataset publicado, ou nil antes da primeira carga
	Dataset() *domain.Dataset

	// Report aplica os filtros ao dataset publicado
	Report(filters domain.FilterSet) (*domain.Report, error)
	// Options retorna as opções dos controles de filtro
	Options() (*domain.FilterOptions, error)
	// Charts agrega as séries dos gráficos; com filters nil usa o dataset inteiro
	Charts(filters *domain.FilterSet) (*domain.ChartData, error)
	// Export grava as linhas filtradas e retorna quantas foram escritas e de qual dataset
	Export(w io.Writer, filters domain.FilterSet) (domain.ExportResult, error)
}
