package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de rota
	ErrRouteNotFound    = "API_001" // Rota inexistente
	ErrMethodNotAllowed = "API_002" // Método não suportado na rota

	// Erros de dados
	ErrDatasetNotLoaded = "DATA_001" // Nenhum dataset carregado
	ErrNotEnoughData    = "DATA_002" // Dados insuficientes para o gráfico
	ErrUnknownChart     = "DATA_003" // Gráfico inexistente
	ErrReloadInProgress = "DATA_004" // Recarga do dataset já em andamento

	// Erros do servidor
	ErrInternalServer = "SRV_001" // Erro interno do servidor
	ErrSourceLoad     = "SRV_002" // Falha ao ler a origem dos dados
	ErrExport         = "SRV_003" // Falha ao gerar a planilha
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrRouteNotFound:       http.StatusNotFound,
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,
	ErrDatasetNotLoaded:    http.StatusServiceUnavailable,
	ErrNotEnoughData:       http.StatusUnprocessableEntity,
	ErrUnknownChart:        http.StatusNotFound,
	ErrReloadInProgress:    http.StatusConflict,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrSourceLoad:          http.StatusBadGateway,
	ErrExport:              http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
