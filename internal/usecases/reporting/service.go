// Package reporting coordena a carga das linhas de vendas e as consultas do
// relatório de margem sobre o dataset publicado.
package reporting

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/margin-report-api/internal/domain"
	"github.com/vfg2006/margin-report-api/internal/usecases/deriving"
	"github.com/vfg2006/margin-report-api/internal/usecases/filtering"
	"github.com/vfg2006/margin-report-api/pkg/apiErrors"
)

// Service implementa Reporter sobre um dataset imutável trocado atomicamente a cada carga
type Service struct {
	source   RecordSource
	exporter Exporter
	current  atomic.Pointer[domain.Dataset]
	loadMu   sync.Mutex
}

// NewService cria o serviço de relatório. O dataset só existe depois do primeiro Load.
func NewService(source RecordSource, exporter Exporter) *Service {
	return &Service{
		source:   source,
		exporter: exporter,
	}
}

var _ Reporter = (*Service)(nil)

func (s *Service) Load(ctx context.Context) (*domain.Dataset, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	startTime := time.Now()
	origin := s.source.Describe()

	raw, err := s.source.Load(ctx)
	if err != nil {
		logrus.WithError(err).WithField("source", origin).Error("Erro ao carregar linhas de vendas")
		return nil, NewSourceError(fmt.Errorf("%w: %w", ErrSourceLoad, err), apiErrors.ErrSourceLoad, origin, "Falha ao ler a origem dos dados")
	}

	dataset := domain.NewDataset(origin, deriving.Derive(raw))
	s.current.Store(dataset)

	logrus.WithFields(logrus.Fields{
		"dataset_id": dataset.ID,
		"source":     origin,
		"rows":       dataset.Len(),
		"duration":   time.Since(startTime).String(),
	}).Info("Dataset carregado")

	return dataset, nil
}

func (s *Service) Reload(ctx context.Context) (*domain.Dataset, error) {
	previous := s.current.Load()

	dataset, err := s.Load(ctx)
	if err != nil {
		if previous != nil {
			logrus.WithField("dataset_id", previous.ID).Warn("Recarga falhou, mantendo dataset anterior")
		}
		return nil, err
	}

	return dataset, nil
}

func (s *Service) Dataset() *domain.Dataset {
	return s.current.Load()
}

func (s *Service) dataset() (*domain.Dataset, error) {
	dataset := s.current.Load()
	if dataset == nil {
		return nil, NewReportError(ErrDatasetNotLoaded, apiErrors.ErrDatasetNotLoaded, "Nenhum dataset carregado")
	}
	return dataset, nil
}

func (s *Service) Report(filters domain.FilterSet) (*domain.Report, error) {
	dataset, err := s.dataset()
	if err != nil {
		return nil, err
	}

	all := dataset.Records()
	filtered := filtering.Apply(all, filters)

	return &domain.Report{
		DatasetID: dataset.ID,
		Filters:   filters,
		Filtered:  filtered,
		All:       all,
		Summary:   domain.Summarize(filtered),
	}, nil
}

func (s *Service) Options() (*domain.FilterOptions, error) {
	dataset, err := s.dataset()
	if err != nil {
		return nil, err
	}

	options := domain.BuildFilterOptions(dataset.Records())
	options.DatasetID = dataset.ID
	return options, nil
}

func (s *Service) Charts(filters *domain.FilterSet) (*domain.ChartData, error) {
	dataset, err := s.dataset()
	if err != nil {
		return nil, err
	}

	var data *domain.ChartData
	if filters == nil {
		data = domain.BuildChartData(domain.ChartScopeAll, dataset.Records())
	} else {
		data = domain.BuildChartData(domain.ChartScopeFiltered, filtering.Apply(dataset.Records(), *filters))
	}
	data.DatasetID = dataset.ID

	return data, nil
}

func (s *Service) Export(w io.Writer, filters domain.FilterSet) (domain.ExportResult, error) {
	dataset, err := s.dataset()
	if err != nil {
		return domain.ExportResult{}, err
	}

	filtered := filtering.Apply(dataset.Records(), filters)
	if err := s.exporter.Write(w, filtered); err != nil {
		logrus.WithError(err).WithField("dataset_id", dataset.ID).Error("Erro ao exportar linhas filtradas")
		return domain.ExportResult{DatasetID: dataset.ID}, NewReportError(fmt.Errorf("%w: %w", ErrExport, err), apiErrors.ErrExport, "Falha ao gerar a planilha")
	}

	return domain.ExportResult{DatasetID: dataset.ID, Rows: len(filtered)}, nil
}
