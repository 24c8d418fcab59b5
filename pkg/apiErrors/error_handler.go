package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro expostos pela API
const (
	// Erros de validação (VAL)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidSortKey      = "VAL_003" // Chave de ordenação desconhecida

	// Erros de análise (ANL)
	ErrNoDatasetLoaded    = "ANL_001" // Nenhum dataset carregado
	ErrNoBranchSelected   = "ANL_002" // Nenhuma filial selecionada
	ErrNoDataForSelection = "ANL_003" // Seleção sem registros
	ErrInvalidBreakdown   = "ANL_004" // Decomposição sem componentes positivos

	// Erros de upload (UPL)
	ErrNoFilesUploaded     = "UPL_001" // Nenhum arquivo enviado
	ErrUnsupportedFileType = "UPL_002" // Extensão não suportada
	ErrNoValidData         = "UPL_003" // Nenhum dado válido nos arquivos
	ErrFileTooLarge        = "UPL_004" // Arquivo acima do limite

	// Erros do servidor (SRV)
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_002" // Erro em serviço externo
	ErrRateLimited     = "SRV_003" // Limite de requisições atingido
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidSortKey:      http.StatusBadRequest,
	ErrNoDatasetLoaded:     http.StatusConflict,
	ErrNoBranchSelected:    http.StatusBadRequest,
	ErrNoDataForSelection:  http.StatusNotFound,
	ErrInvalidBreakdown:    http.StatusUnprocessableEntity,
	ErrNoFilesUploaded:     http.StatusBadRequest,
	ErrUnsupportedFileType: http.StatusBadRequest,
	ErrNoValidData:         http.StatusUnprocessableEntity,
	ErrFileTooLarge:        http.StatusRequestEntityTooLarge,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
	ErrRateLimited:         http.StatusTooManyRequests,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
