// Package groq integra a aplicação com a API de chat-completions da Groq
package groq

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/branch-analytics-api/infrastructure/integrator/groq/groqclient"
	"github.com/vfg2006/branch-analytics-api/internal/config"
)

// Parâmetros de geração usados pelo analista de dados
const (
	analystTemperature = 0.3
	analystMaxTokens   = 2048
	analystTopP        = 0.9
)

type GroqIntegrator interface {
	// ChatCompletion envia as mensagens ao modelo e retorna o texto da resposta
	ChatCompletion(ctx context.Context, messages []groqclient.Message) (string, error)
}

type GroqService struct {
	cfg    *config.Config
	Client groqclient.Client
}

func New(cfg *config.Config, client groqclient.Client) GroqIntegrator {
	return &GroqService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *GroqService) ChatCompletion(ctx context.Context, messages []groqclient.Message) (string, error) {
	req := groqclient.ChatCompletionRequest{
		Model:       s.cfg.Groq.Model,
		Messages:    messages,
		Temperature: analystTemperature,
		MaxTokens:   analystMaxTokens,
		TopP:        analystTopP,
	}

	resp, err := s.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("resposta vazia do modelo")
	}

	return resp.Choices[0].Message.Content, nil
}
