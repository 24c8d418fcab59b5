package handler

import (
	"net/http"

	"github.com/vfg2006/branch-analytics-api/internal/usecases/chatting"
	"github.com/vfg2006/branch-analytics-api/pkg/apiErrors"
)

type chatRequest struct {
	Question string `json:"question"`
}

// Chat responde uma pergunta sobre o dataset usando o assistente de IA
func Chat(service chatting.Chatter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		answer, err := service.Ask(r.Context(), req.Question)
		if err != nil {
			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, answer)
	}
}

// ChatStatus informa se o assistente está configurado
func ChatStatus(service chatting.Chatter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, map[string]bool{"available": service.Available()})
	}
}
