// Package spreadsheet lê e escreve a planilha de vendas no formato .xlsx.
package spreadsheet

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/margin-report-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ErrMissingColumns indica que o cabeçalho não contém todas as colunas obrigatórias
var ErrMissingColumns = errors.New("colunas obrigatórias ausentes")

// ErrSheetNotFound indica que a aba pedida não existe na planilha
var ErrSheetNotFound = errors.New("aba não encontrada")

// Reader extrai as linhas brutas de uma aba da planilha
type Reader struct {
	// SheetName tem prioridade sobre SheetIndex quando informado
	SheetName string
	// SheetIndex começa em 1; valores <= 0 selecionam a primeira aba
	SheetIndex int
}

// Read lê a planilha do reader informado
func (r Reader) Read(src io.Reader) ([]domain.RawRecord, error) {
	file, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir planilha")
	}
	defer func() { _ = file.Close() }()

	sheet, err := r.resolveSheet(file)
	if err != nil {
		return nil, err
	}

	rows, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler a aba %q", sheet)
	}

	return parseRows(rows)
}

func (r Reader) resolveSheet(file *excelize.File) (string, error) {
	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return "", errors.Wrap(ErrSheetNotFound, "planilha sem abas")
	}

	if r.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, r.SheetName) {
				return s, nil
			}
		}
		return "", errors.Wrapf(ErrSheetNotFound, "%q (disponíveis: %s)", r.SheetName, strings.Join(sheets, ", "))
	}

	idx := r.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", errors.Wrapf(ErrSheetNotFound, "índice %d (a planilha tem %d abas)", idx, len(sheets))
	}

	return sheets[idx-1], nil
}

// parseRows converte as linhas da aba em registros brutos. A primeira linha é o
// cabeçalho; linhas totalmente vazias são ignoradas.
func parseRows(rows [][]string) ([]domain.RawRecord, error) {
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrMissingColumns, "aba vazia")
	}

	positions, missing := mapHeader(rows[0])
	if len(missing) > 0 {
		return nil, errors.Wrap(ErrMissingColumns, strings.Join(missing, ", "))
	}

	records := make([]domain.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		cell := func(col Column) string {
			i := positions[col]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}

		records = append(records, domain.RawRecord{
			Month:             cell(ColMonth),
			Manager:           cell(ColManager),
			ClientName:        cell(ColClientName),
			Subcategory:       cell(ColSubcategory),
			ProductName:       cell(ColProductName),
			ActualSalesAmount: cell(ColActualSales),
			CostAmountD2:      cell(ColCostD2),
			CostAmountNPK:     cell(ColCostNPK),
		})
	}

	return records, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// FileSource carrega as linhas de um arquivo .xlsx local
type FileSource struct {
	Path   string
	Reader Reader
}

// NewFileSource cria a origem baseada em arquivo
func NewFileSource(path, sheetName string, sheetIndex int) *FileSource {
	return &FileSource{
		Path:   path,
		Reader: Reader{SheetName: sheetName, SheetIndex: sheetIndex},
	}
}

// Load lê o arquivo inteiro a cada chamada
func (s *FileSource) Load(ctx context.Context) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir arquivo de origem")
	}
	defer f.Close()

	records, err := s.Reader.Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler %s", filepath.Base(s.Path))
	}

	logrus.WithFields(logrus.Fields{
		"path": s.Path,
		"rows": len(records),
	}).Debug("Planilha de origem lida")

	return records, nil
}

// Describe identifica a origem nos logs e no status do dataset
func (s *FileSource) Describe() string {
	return "xlsx:" + filepath.Base(s.Path)
}
