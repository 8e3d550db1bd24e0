package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/margin-report-api/infrastructure/charts"
	"github.com/vfg2006/margin-report-api/infrastructure/spreadsheet"
	"github.com/xuri/excelize/v2"
)

// writeFixture grava uma planilha de vendas pequena no diretório temporário do teste
func writeFixture(t *testing.T) string {
	t.Helper()

	rows := [][]interface{}{
		{"Month", "Manager", "ClientName", "Subcategory", "ProductName", "ActualSales2024", "CostD2ExVAT", "CostNPKExVAT"},
		{1, "Ivanova", "Alfa", "Cables", "P1", 1000, 700, 650},
		{1, "Petrov", "Beta", "Lamps", "P2", 200, 190, 180},
		{2, "Ivanova", "Gama", nil, "P3", 500, 0, nil},
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SOURCE_DRIVER", "xlsx")

	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestReportCommand_Table(t *testing.T) {
	source := writeFixture(t)

	out, err := run(t, "report", "--source", source, "--manager", "Ivanova")
	require.NoError(t, err)

	assert.Contains(t, out, "P1")
	assert.Contains(t, out, "P3")
	assert.NotContains(t, out, "P2")
	assert.Contains(t, out, "1 000,00")
	assert.Contains(t, out, "2 de 3 linhas")
	assert.Contains(t, out, "Margem: 800,00")
}

func TestReportCommand_Limit(t *testing.T) {
	source := writeFixture(t)

	out, err := run(t, "report", "--source", source, "--limit", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "P1")
	assert.NotContains(t, out, "P2")
	assert.Contains(t, out, "3 de 3 linhas (1 exibidas)")
}

func TestReportCommand_JSON(t *testing.T) {
	source := writeFixture(t)

	out, err := run(t, "report", "--source", source, "--month", "2", "-o", "json")
	require.NoError(t, err)

	assert.Contains(t, out, `"product_name": "P3"`)
	assert.Contains(t, out, `"margin_pct_of_cost": null`)
	assert.Contains(t, out, `"subcategory": null`)
	assert.Contains(t, out, `"segment": "High"`)
	assert.NotContains(t, out, "P1")
}

func TestReportCommand_InvalidOutput(t *testing.T) {
	source := writeFixture(t)

	_, err := run(t, "report", "--source", source, "-o", "yaml")
	assert.ErrorContains(t, err, "formato de saída inválido")
}

func TestOptionsCommand(t *testing.T) {
	source := writeFixture(t)

	out, err := run(t, "options", "--source", source)
	require.NoError(t, err)

	assert.Contains(t, out, `"Ivanova"`)
	assert.Contains(t, out, `"Lamps"`)
	assert.Contains(t, out, `"margin_levels"`)
}

func TestExportCommand(t *testing.T) {
	source := writeFixture(t)
	target := filepath.Join(t.TempDir(), "low.xlsx")

	out, err := run(t, "export", "--source", source, "--margin-level", "Low", "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "1 linhas exportadas")

	file, err := os.Open(target)
	require.NoError(t, err)
	defer file.Close()

	records, err := spreadsheet.Reader{}.Read(file)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "P2", records[0].ProductName)
}

func TestChartsCommand(t *testing.T) {
	source := writeFixture(t)
	dir := filepath.Join(t.TempDir(), "charts")

	out, err := run(t, "charts", "--source", source, "--dir", dir)
	require.NoError(t, err)

	for _, kind := range charts.Kinds {
		content, err := os.ReadFile(filepath.Join(dir, kind.FileName()))
		require.NoError(t, err, kind)
		assert.Equal(t, "\x89PNG", string(content[:4]))
		assert.Contains(t, out, kind.FileName())
	}
}

func TestChartsCommand_FilteredWithoutData(t *testing.T) {
	source := writeFixture(t)
	dir := t.TempDir()

	out, err := run(t, "charts", "--source", source, "--dir", dir,
		"--scope", "filtered", "--manager", "Nobody", "--chart", "subcategory-margin")
	require.NoError(t, err)

	assert.Contains(t, out, "dados insuficientes")
	assert.NoFileExists(t, filepath.Join(dir, charts.KindSubcategoryMargin.FileName()))
}

func TestChartsCommand_UnknownChart(t *testing.T) {
	source := writeFixture(t)

	_, err := run(t, "charts", "--source", source, "--dir", t.TempDir(), "--chart", "pie")
	assert.ErrorIs(t, err, charts.ErrUnknownChart)
}

func TestRootCommand_InvalidDriver(t *testing.T) {
	_, err := run(t, "report", "--driver", "csv")
	assert.ErrorContains(t, err, "SOURCE_DRIVER inválido")
}

func TestRootCommand_MissingSource(t *testing.T) {
	_, err := run(t, "report", "--source", filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}
