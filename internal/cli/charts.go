package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/margin-report-api/infrastructure/charts"
	"github.com/vfg2006/margin-report-api/internal/domain"
)

func newChartsCommand(a *app) *cobra.Command {
	var (
		filters filterFlags
		dir     string
		scope   string
		only    []string
	)

	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Desenha os gráficos de margem em arquivos PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := charts.Kinds
			if len(only) > 0 {
				kinds = make([]charts.Kind, 0, len(only))
				for _, name := range only {
					kind, err := charts.ParseKind(name)
					if err != nil {
						return err
					}
					kinds = append(kinds, kind)
				}
			}

			var filterSet *domain.FilterSet
			switch scope {
			case domain.ChartScopeAll:
			case domain.ChartScopeFiltered:
				fs := filters.filterSet()
				filterSet = &fs
			default:
				return fmt.Errorf("scope inválido: %q (use %s ou %s)", scope, domain.ChartScopeAll, domain.ChartScopeFiltered)
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("erro ao criar %s: %w", dir, err)
			}

			service, closer, err := a.loadService(cmd.Context())
			if err != nil {
				return err
			}
			defer closer.Close()

			data, err := service.Charts(filterSet)
			if err != nil {
				return err
			}

			renderer := charts.NewRenderer(a.cfg.Charts.Width, a.cfg.Charts.Height)
			for _, kind := range kinds {
				var buf bytes.Buffer
				if err := renderer.Render(&buf, kind, data); err != nil {
					if errors.Is(err, charts.ErrNotEnoughData) {
						logrus.WithField("chart", kind).Warn("Gráfico ignorado: dados insuficientes")
						printf(cmd, "⚠ %s: dados insuficientes\n", kind)
						continue
					}
					return err
				}

				path := filepath.Join(dir, kind.FileName())
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("erro ao gravar %s: %w", path, err)
				}
				printf(cmd, "✓ %s\n", path)
			}

			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&dir, "dir", ".", "diretório de saída dos PNGs")
	cmd.Flags().StringVar(&scope, "scope", domain.ChartScopeAll, "all usa o dataset inteiro, filtered aplica os filtros")
	cmd.Flags().StringSliceVar(&only, "chart", nil, "gráficos a desenhar (padrão: todos)")

	return cmd
}
