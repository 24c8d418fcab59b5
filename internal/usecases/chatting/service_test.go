package chatting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/branch-analytics-api/infrastructure/dataset"
	"github.com/vfg2006/branch-analytics-api/infrastructure/integrator/groq/groqclient"
	"github.com/vfg2006/branch-analytics-api/infrastructure/integrator/groq/mocks"
	"github.com/vfg2006/branch-analytics-api/internal/config"
	"github.com/vfg2006/branch-analytics-api/internal/domain"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/comparing"
)

func testConfig(apiKey string, rpm float64) *config.Config {
	cfg := &config.Config{}
	cfg.Display.CurrencySymbol = "Rp"
	cfg.Groq.APIKey = apiKey
	cfg.Groq.RequestsPerMinute = rpm
	return cfg
}

func loadedStore() *dataset.Store {
	store := dataset.NewStore()
	store.Replace([]domain.SalesRecord{
		{Branch: "A", Menu: "Nasi Goreng", SoldAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), Total: 250, Qty: 5, Margin: 50, COGSTotal: 100, COGSPercentage: 40},
		{Branch: "B", Menu: "Es Teh", SoldAt: time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), Total: 100, Qty: 10, Margin: 30, COGSTotal: 40, COGSPercentage: 40},
	}, map[string]domain.BranchFile{})
	return store
}

func TestService_Ask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := loadedStore()
	cfg := testConfig("key", 20)
	mockGroq := mocks.NewMockGroqIntegrator(ctrl)

	mockGroq.EXPECT().
		ChatCompletion(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []groqclient.Message) (string, error) {
			require.Len(t, messages, 2)
			assert.Equal(t, "system", messages[0].Role)

			// O prompt carrega o resumo dos dados e a pergunta
			user := messages[1].Content
			assert.Contains(t, user, "Revenue: Rp 350")
			assert.Contains(t, user, "Best: A")
			assert.Contains(t, user, "Worst: B")
			assert.Contains(t, user, "Nasi Goreng")
			assert.Contains(t, user, "Question: Which branch sells the most?")
			return "Branch A leads in revenue.", nil
		})

	service := NewService(cfg, store, comparing.NewService(cfg, store), mockGroq)
	answer, err := service.Ask(context.Background(), "Which branch sells the most?")
	require.NoError(t, err)
	assert.Equal(t, "Branch A leads in revenue.", answer.Response)
	assert.False(t, answer.Degraded)
}

func TestService_Ask_DegradesWhenModelFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := loadedStore()
	cfg := testConfig("key", 20)
	mockGroq := mocks.NewMockGroqIntegrator(ctrl)
	mockGroq.EXPECT().
		ChatCompletion(gomock.Any(), gomock.Any()).
		Return("", errors.New("upstream timeout"))

	service := NewService(cfg, store, comparing.NewService(cfg, store), mockGroq)
	answer, err := service.Ask(context.Background(), "Any insights?")
	require.NoError(t, err)

	// Falha do modelo degrada para o resumo textual, nunca tela vazia
	assert.True(t, answer.Degraded)
	assert.True(t, strings.Contains(answer.Response, "SALES SUMMARY"))
}

func TestService_Ask_Preconditions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGroq := mocks.NewMockGroqIntegrator(ctrl)
	cfg := testConfig("key", 20)
	store := loadedStore()
	service := NewService(cfg, store, comparing.NewService(cfg, store), mockGroq)

	_, err := service.Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)

	empty := dataset.NewStore()
	emptyService := NewService(cfg, empty, comparing.NewService(cfg, empty), mockGroq)
	_, err = emptyService.Ask(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNoData)

	unconfigured := NewService(testConfig("", 20), store, comparing.NewService(cfg, store), mockGroq)
	assert.False(t, unconfigured.Available())
	_, err = unconfigured.Ask(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrChatUnavailable)
}

func TestService_Ask_RateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := loadedStore()
	cfg := testConfig("key", 1) // burst de 1 requisição
	mockGroq := mocks.NewMockGroqIntegrator(ctrl)
	mockGroq.EXPECT().
		ChatCompletion(gomock.Any(), gomock.Any()).
		Return("ok", nil)

	service := NewService(cfg, store, comparing.NewService(cfg, store), mockGroq)

	_, err := service.Ask(context.Background(), "first")
	require.NoError(t, err)

	_, err = service.Ask(context.Background(), "second")
	assert.ErrorIs(t, err, ErrRateLimited)
}
