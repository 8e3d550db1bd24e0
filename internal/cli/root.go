// Package cli implementa o marginctl, que gera o relatório de margem pelo terminal.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/margin-report-api/internal/bootstrap"
	"github.com/vfg2006/margin-report-api/internal/config"
	"github.com/vfg2006/margin-report-api/internal/domain"
	"github.com/vfg2006/margin-report-api/internal/usecases/reporting"
)

// app guarda o estado compartilhado entre os subcomandos
type app struct {
	cfg *config.Config

	sourcePath string
	sheetName  string
	sheetIndex int
	driver     string
	debug      bool
}

// NewRootCommand cria o comando raiz com todos os subcomandos
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "marginctl",
		Short:         "Relatório de margem sobre a planilha de vendas",
		Long:          `marginctl calcula a margem de cada linha de vendas, aplica os filtros informados e imprime, exporta ou desenha o resultado.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.sourcePath, "source", "", "planilha de origem (sobrescreve SOURCE_PATH)")
	f.StringVar(&a.sheetName, "sheet", "", "nome da aba da planilha")
	f.IntVar(&a.sheetIndex, "sheet-index", 0, "índice da aba, começando em 1")
	f.StringVar(&a.driver, "driver", "", "origem dos dados: xlsx ou postgres (sobrescreve SOURCE_DRIVER)")
	f.BoolVar(&a.debug, "debug", false, "habilita logs de debug")

	root.AddCommand(
		newReportCommand(a),
		newOptionsCommand(a),
		newExportCommand(a),
		newChartsCommand(a),
		newImportCommand(a),
	)

	return root
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	logrus.SetOutput(cmd.ErrOrStderr())

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("source") {
		cfg.Source.Path = a.sourcePath
	}
	if f.Changed("sheet") {
		cfg.Source.SheetName = a.sheetName
	}
	if f.Changed("sheet-index") {
		cfg.Source.SheetIndex = a.sheetIndex
	}
	if f.Changed("driver") {
		cfg.Source.Driver = a.driver
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if a.debug {
		bootstrap.ConfigureLogLevel("debug")
	} else {
		bootstrap.ConfigureLogLevel("warn")
	}

	a.cfg = cfg
	return nil
}

// loadService cria o serviço e carrega o dataset uma única vez para o comando
func (a *app) loadService(ctx context.Context) (*reporting.Service, io.Closer, error) {
	service, closer, err := bootstrap.NewReportService(ctx, a.cfg)
	if err != nil {
		return nil, nil, err
	}

	if _, err := service.Load(ctx); err != nil {
		_ = closer.Close()
		return nil, nil, err
	}

	return service, closer, nil
}

// filterFlags são os filtros aceitos pelos comandos de relatório
type filterFlags struct {
	months        []int
	manager       string
	client        string
	subcategories []string
	marginLevel   string
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntSliceVar(&ff.months, "month", nil, "meses (1-12); pode repetir ou separar por vírgula")
	f.StringVar(&ff.manager, "manager", domain.AllSentinel, "gerente")
	f.StringVar(&ff.client, "client", domain.AllSentinel, "cliente")
	f.StringSliceVar(&ff.subcategories, "subcategory", nil, "subcategorias; pode repetir ou separar por vírgula")
	f.StringVar(&ff.marginLevel, "margin-level", domain.AllSentinel, "nível de margem: all, High, Medium ou Low")
}

func (ff *filterFlags) filterSet() domain.FilterSet {
	return domain.FilterSet{
		Months:        ff.months,
		Manager:       ff.manager,
		ClientName:    ff.client,
		Subcategories: ff.subcategories,
		MarginLevel:   domain.Segment(ff.marginLevel),
	}
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
