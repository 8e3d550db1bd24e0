// Package bootstrap monta as dependências compartilhadas pela API e pela CLI.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/margin-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/margin-report-api/infrastructure/repository"
	"github.com/vfg2006/margin-report-api/infrastructure/spreadsheet"
	"github.com/vfg2006/margin-report-api/internal/config"
	"github.com/vfg2006/margin-report-api/internal/usecases/reporting"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewRecordSource escolhe a origem das linhas conforme SOURCE_DRIVER.
// O Closer libera a conexão com o banco quando houver uma.
func NewRecordSource(ctx context.Context, cfg *config.Config) (reporting.RecordSource, io.Closer, error) {
	switch cfg.Source.Driver {
	case config.SourceDriverXLSX:
		return spreadsheet.NewFileSource(cfg.Source.Path, cfg.Source.SheetName, cfg.Source.SheetIndex), nopCloser{}, nil

	case config.SourceDriverPostgres:
		repo, conn, err := NewSalesRecordRepository(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repo, conn, nil

	default:
		return nil, nil, fmt.Errorf("SOURCE_DRIVER inválido: %q", cfg.Source.Driver)
	}
}

// NewSalesRecordRepository conecta no PostgreSQL e cria o repositório de linhas de vendas
func NewSalesRecordRepository(ctx context.Context, cfg *config.Config) (repository.SalesRecordRepository, *postgres.Connection, error) {
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

	repo, err := repository.NewSalesRecordRepository(conn, cfg.Source.Table, cfg.Source.BatchID)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	return repo, conn, nil
}

// NewReportService cria o serviço de relatório com a origem e o exportador configurados
func NewReportService(ctx context.Context, cfg *config.Config) (*reporting.Service, io.Closer, error) {
	source, closer, err := NewRecordSource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	return reporting.NewService(source, spreadsheet.NewWriter(cfg.Export.SheetName)), closer, nil
}

// ConfigureLogLevel aplica LOG_LEVEL, caindo para info quando inválido
func ConfigureLogLevel(level string) {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", level)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Debugf("Nível de log configurado para: %s", logLevel)
}
