// Package handler expõe as operações da API sobre o dataset de vendas
package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/branch-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/chatting"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/comparing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/costing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/trending"
	"github.com/vfg2006/branch-analytics-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// respondJSON serializa o payload de sucesso
func respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Erro ao serializar resposta")
	}
}

// writeUsecaseError mapeia os erros de negócio para os códigos da API.
// Erros fora da taxonomia viram erro interno.
func writeUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case isAny(err, analyzing.ErrNoBranchSelected):
		apiErrors.WriteError(w, apiErrors.ErrNoBranchSelected, "Nenhuma filial selecionada", nil)
	case isAny(err, analyzing.ErrNoDataForSelection):
		apiErrors.WriteError(w, apiErrors.ErrNoDataForSelection, "Nenhum registro para a seleção atual", nil)
	case isAny(err, analyzing.ErrInvalidBreakdown):
		apiErrors.WriteError(w, apiErrors.ErrInvalidBreakdown, "Decomposição sem componentes positivos; escolha outro produto", nil)
	case isAny(err, analyzing.ErrInvalidSortKey):
		apiErrors.WriteError(w, apiErrors.ErrInvalidSortKey, "Chave de ordenação desconhecida", nil)
	case isAny(err, comparing.ErrNoData, trending.ErrNoData, costing.ErrNoData, chatting.ErrNoData):
		apiErrors.WriteError(w, apiErrors.ErrNoDatasetLoaded, "Nenhum dataset carregado; envie os arquivos primeiro", nil)
	case isAny(err, chatting.ErrEmptyQuestion):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Pergunta não informada", nil)
	case isAny(err, chatting.ErrRateLimited):
		apiErrors.WriteError(w, apiErrors.ErrRateLimited, "Muitas requisições de chat; tente novamente em instantes", nil)
	case isAny(err, chatting.ErrChatUnavailable):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Assistente de chat não configurado", nil)
	default:
		logrus.WithError(err).Error("Erro inesperado no processamento da requisição")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
	}
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
