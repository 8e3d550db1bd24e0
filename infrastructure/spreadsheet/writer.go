package spreadsheet

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/vfg2006/margin-report-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName é a aba usada quando nenhuma é configurada
const DefaultSheetName = "Detailed data"

// Writer grava linhas derivadas em uma planilha .xlsx com valores numéricos nativos
type Writer struct {
	SheetName string
}

// NewWriter cria um Writer para a aba informada
func NewWriter(sheetName string) *Writer {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	return &Writer{SheetName: sheetName}
}

// Write grava o cabeçalho e as linhas no destino. Valores NaN viram células vazias.
func (w *Writer) Write(dst io.Writer, records []domain.Record) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName("Sheet1", w.SheetName); err != nil {
		return errors.Wrap(err, "erro ao nomear aba")
	}

	header := make([]interface{}, 0, len(SourceColumns)+len(DerivedColumns))
	for _, h := range SourceColumns {
		header = append(header, h)
	}
	for _, h := range DerivedColumns {
		header = append(header, h)
	}
	if err := file.SetSheetRow(w.SheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "erro ao escrever cabeçalho")
	}

	if style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = file.SetRowStyle(w.SheetName, 1, 1, style)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "erro ao calcular célula")
		}

		row := recordRow(r)
		if err := file.SetSheetRow(w.SheetName, cell, &row); err != nil {
			return errors.Wrapf(err, "erro ao escrever linha %d", i+2)
		}
	}

	if err := file.Write(dst); err != nil {
		return errors.Wrap(err, "erro ao gravar planilha")
	}

	return nil
}

func recordRow(r domain.Record) []interface{} {
	return []interface{}{
		month(r),
		r.Manager,
		r.ClientName,
		optionalString(r.Subcategory),
		r.ProductName,
		number(r.ActualSalesAmount),
		number(r.CostAmountD2),
		number(r.CostAmountNPK),
		number(r.MarginAmount),
		number(r.MarginPctOfCost),
		number(r.MarginPctOfSales),
		r.Segment.String(),
	}
}

func month(r domain.Record) interface{} {
	if m, ok := r.MonthNumber(); ok {
		return m
	}
	return number(r.Month)
}

func number(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

func optionalString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
