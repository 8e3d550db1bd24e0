package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/margin-report-api/infrastructure/spreadsheet"
	"github.com/vfg2006/margin-report-api/internal/bootstrap"
	"github.com/vfg2006/margin-report-api/internal/usecases/deriving"
)

func newImportCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Importa a planilha de vendas para o PostgreSQL como um novo lote",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = a.cfg.Source.Path
			}

			ctx := cmd.Context()
			source := spreadsheet.NewFileSource(file, a.cfg.Source.SheetName, a.cfg.Source.SheetIndex)

			raw, err := source.Load(ctx)
			if err != nil {
				return err
			}
			records := deriving.Derive(raw)

			repo, conn, err := bootstrap.NewSalesRecordRepository(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := repo.EnsureSchema(ctx); err != nil {
				return err
			}

			batchID, err := repo.SaveBatch(ctx, records)
			if err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"batch_id": batchID,
				"rows":     len(records),
				"source":   source.Describe(),
			}).Info("Lote importado")

			printf(cmd, "✓ %d linhas importadas de %s (lote %s)\n", len(records), file, batchID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "planilha a importar (padrão: SOURCE_PATH)")

	return cmd
}
