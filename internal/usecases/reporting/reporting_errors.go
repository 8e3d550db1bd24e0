package reporting

import (
	"errors"
	"fmt"
)

// Erros específicos do relatório de margem
var (
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
	ErrSourceLoad       = errors.New("error loading sales records from source")
	ErrExport           = errors.New("error writing spreadsheet")
)

// ReportError é um erro com contexto adicional para o relatório
type ReportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Source  string // Origem dos dados (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError cria um novo ReportError
func NewReportError(err error, code string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewSourceError cria um ReportError ligado à origem dos dados
func NewSourceError(err error, code string, source string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Source:  source,
		Details: details,
	}
}
