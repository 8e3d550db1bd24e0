package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCommand(a *app) *cobra.Command {
	var (
		filters filterFlags
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta as linhas filtradas para um arquivo xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = a.cfg.Export.FileName
			}

			service, closer, err := a.loadService(cmd.Context())
			if err != nil {
				return err
			}
			defer closer.Close()

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("erro ao criar %s: %w", output, err)
			}

			result, err := service.Export(file, filters.filterSet())
			if closeErr := file.Close(); err == nil && closeErr != nil {
				err = fmt.Errorf("erro ao fechar %s: %w", output, closeErr)
			}
			if err != nil {
				_ = os.Remove(output)
				return err
			}

			printf(cmd, "✓ %d linhas exportadas para %s\n", result.Rows, output)
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "arquivo de saída (padrão: EXPORT_FILE_NAME)")

	return cmd
}
