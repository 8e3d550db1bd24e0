package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vfg2006/margin-report-api/internal/domain"
	"github.com/vfg2006/margin-report-api/pkg/utils"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func newReportCommand(a *app) *cobra.Command {
	var (
		filters filterFlags
		output  string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Imprime as linhas filtradas com as métricas de margem",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closer, err := a.loadService(cmd.Context())
			if err != nil {
				return err
			}
			defer closer.Close()

			report, err := service.Report(filters.filterSet())
			if err != nil {
				return err
			}

			switch output {
			case outputJSON:
				out, err := utils.PrettyJSON(reportJSON(report))
				if err != nil {
					return err
				}
				printf(cmd, "%s\n", out)
				return nil
			case outputTable:
				return writeReportTable(cmd, report, limit)
			default:
				return fmt.Errorf("formato de saída inválido: %q (use %s ou %s)", output, outputTable, outputJSON)
			}
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "formato de saída: table ou json")
	cmd.Flags().IntVar(&limit, "limit", 0, "máximo de linhas impressas (0 = todas)")

	return cmd
}

func writeReportTable(cmd *cobra.Command, report *domain.Report, limit int) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "Month\tManager\tClient\tSubcategory\tProduct\tSales\tCost D2\tCost NPK\tMargin\tMargin % cost\tMargin % sales\tSegment\t")

	rows := report.Filtered
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			utils.FormatMonth(r.Month),
			r.Manager,
			r.ClientName,
			r.Subcategory,
			r.ProductName,
			utils.FormatAmount(r.ActualSalesAmount),
			utils.FormatAmount(r.CostAmountD2),
			utils.FormatAmount(r.CostAmountNPK),
			utils.FormatAmount(r.MarginAmount),
			utils.FormatAmount(r.MarginPctOfCost),
			utils.FormatAmount(r.MarginPctOfSales),
			r.Segment,
		)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	s := report.Summary
	printf(cmd, "\n%d de %d linhas", len(report.Filtered), len(report.All))
	if len(rows) < len(report.Filtered) {
		printf(cmd, " (%d exibidas)", len(rows))
	}
	printf(cmd, "\nVendas: %s  Custo D2: %s  Custo NPK: %s  Margem: %s  Margem %% vendas: %s\n",
		utils.FormatAmount(s.ActualSales),
		utils.FormatAmount(s.CostD2),
		utils.FormatAmount(s.CostNPK),
		utils.FormatAmount(s.MarginAmount),
		utils.FormatAmount(s.MarginPctOfSales),
	)

	return nil
}

// reportJSON troca NaN por null, já que o JSON não representa NaN
func reportJSON(report *domain.Report) map[string]any {
	rows := make([]map[string]any, 0, len(report.Filtered))
	for _, r := range report.Filtered {
		rows = append(rows, map[string]any{
			"month":               utils.FloatPtr(r.Month),
			"manager":             r.Manager,
			"client_name":         r.ClientName,
			"subcategory":         nullableString(r.Subcategory),
			"product_name":        r.ProductName,
			"actual_sales_amount": utils.FloatPtr(r.ActualSalesAmount),
			"cost_amount_d2":      utils.FloatPtr(r.CostAmountD2),
			"cost_amount_npk":     utils.FloatPtr(r.CostAmountNPK),
			"margin_amount":       utils.FloatPtr(r.MarginAmount),
			"margin_pct_of_cost":  utils.FloatPtr(r.MarginPctOfCost),
			"margin_pct_of_sales": utils.FloatPtr(r.MarginPctOfSales),
			"segment":             r.Segment,
		})
	}

	return map[string]any{
		"dataset_id": report.DatasetID,
		"total_rows": len(report.All),
		"summary": map[string]any{
			"rows":                report.Summary.Rows,
			"actual_sales":        report.Summary.ActualSales,
			"cost_d2":             report.Summary.CostD2,
			"cost_npk":            report.Summary.CostNPK,
			"margin_amount":       report.Summary.MarginAmount,
			"margin_pct_of_sales": utils.FloatPtr(report.Summary.MarginPctOfSales),
		},
		"rows": rows,
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func newOptionsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Lista os valores disponíveis para cada filtro",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closer, err := a.loadService(cmd.Context())
			if err != nil {
				return err
			}
			defer closer.Close()

			options, err := service.Options()
			if err != nil {
				return err
			}

			out, err := utils.PrettyJSON(options)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", out)
			return nil
		},
	}
}
