// Package chatting responde perguntas sobre o dataset usando o modelo da
// Groq, com o resumo dos dados injetado no prompt. Quando o modelo falha, a
// resposta degrada para o resumo textual em vez de deixar a tela vazia.
package chatting

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/time/rate"

	"github.com/vfg2006/branch-analytics-api/infrastructure/dataset"
	"github.com/vfg2006/branch-analytics-api/infrastructure/integrator/groq"
	"github.com/vfg2006/branch-analytics-api/infrastructure/integrator/groq/groqclient"
	"github.com/vfg2006/branch-analytics-api/internal/config"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/comparing"
	"github.com/vfg2006/branch-analytics-api/pkg/log"
	"github.com/vfg2006/branch-analytics-api/pkg/utils"
)

const systemPrompt = "You are an expert AI data analyst focused on restaurant " +
	"sales and COGS analysis. Give accurate, in-depth answers grounded in the " +
	"provided data, in clear professional language with actionable insights."

const topProductsInPrompt = 5

// ChatAnswer é a resposta do assistente. Degraded indica que o modelo falhou
// e o texto é o resumo local dos dados.
type ChatAnswer struct {
	Response string `json:"response"`
	Degraded bool   `json:"degraded"`
}

type Chatter interface {
	Ask(ctx context.Context, question string) (*ChatAnswer, error)
	Available() bool
}

type Service struct {
	store          *dataset.Store
	comparer       comparing.Comparer
	groqService    groq.GroqIntegrator
	limiter        *rate.Limiter
	currencySymbol string
	configured     bool
}

func NewService(cfg *config.Config, store *dataset.Store, comparer comparing.Comparer, groqService groq.GroqIntegrator) Chatter {
	rpm := cfg.Groq.RequestsPerMinute
	if rpm <= 0 {
		rpm = 20
	}

	return &Service{
		store:          store,
		comparer:       comparer,
		groqService:    groqService,
		limiter:        rate.NewLimiter(rate.Limit(rpm/60), int(rpm)),
		currencySymbol: cfg.Display.CurrencySymbol,
		configured:     cfg.Groq.APIKey != "",
	}
}

// Available informa se o assistente está configurado com uma API key
func (s *Service) Available() bool {
	return s.configured
}

// Ask monta o contexto dos dados, consulta o modelo e devolve a resposta.
// Falhas do modelo não viram erro: a resposta degrada para o resumo textual.
func (s *Service) Ask(ctx context.Context, question string) (*ChatAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if !s.configured {
		return nil, ErrChatUnavailable
	}
	if !s.store.Loaded() {
		return nil, ErrNoData
	}
	if !s.limiter.Allow() {
		return nil, ErrRateLimited
	}

	prompt, err := s.contextPrompt()
	if err != nil {
		return nil, err
	}

	messages := []groqclient.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Sales data:\n%s\n\nQuestion: %s", prompt, question)},
	}

	answer, err := s.groqService.ChatCompletion(ctx, messages)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("chat: model call failed, falling back to data summary")
		return &ChatAnswer{
			Response: "The AI assistant is unavailable right now. Here is a summary of the loaded data:\n\n" + prompt,
			Degraded: true,
		}, nil
	}

	return &ChatAnswer{Response: answer}, nil
}

// contextPrompt resume o dataset no formato injetado no prompt: indicadores
// gerais, melhor e pior filial e os cinco produtos de maior receita
func (s *Service) contextPrompt() (string, error) {
	stats, err := s.comparer.SummaryStats()
	if err != nil {
		return "", err
	}

	comparison, err := s.comparer.BranchComparison()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SALES SUMMARY\n")
	fmt.Fprintf(&b, "Period: %s\n", stats.DateRange)
	fmt.Fprintf(&b, "Branches: %d\n", stats.TotalBranches)
	fmt.Fprintf(&b, "Revenue: %s\n", utils.FormatCurrency(s.currencySymbol, stats.TotalRevenue))
	fmt.Fprintf(&b, "COGS: %s\n", utils.FormatCurrency(s.currencySymbol, stats.TotalCOGS))
	fmt.Fprintf(&b, "Margin: %s\n", utils.FormatCurrency(s.currencySymbol, stats.TotalMargin))
	fmt.Fprintf(&b, "Avg COGS %%: %s\n", utils.FormatPercentage(stats.AvgCOGSPercentage))
	fmt.Fprintf(&b, "Gross Margin %%: %s\n", utils.FormatPercentage(stats.GrossMarginPct))
	fmt.Fprintf(&b, "Transactions: %s\n", utils.FormatNumber(float64(stats.TotalTransactions)))
	fmt.Fprintf(&b, "Avg per Transaction: %s\n", utils.FormatCurrency(s.currencySymbol, stats.AvgTransactionValue))

	ranking := comparison.Ranking
	if len(ranking) > 0 {
		best := ranking[0]
		worst := ranking[len(ranking)-1]
		fmt.Fprintf(&b, "\nBRANCH PERFORMANCE\n")
		fmt.Fprintf(&b, "Best: %s - %s (margin %s)\n",
			best.Branch,
			utils.FormatCurrency(s.currencySymbol, best.TotalRevenue),
			utils.FormatPercentage(best.MarginPercentage))
		fmt.Fprintf(&b, "Worst: %s - %s (margin %s)\n",
			worst.Branch,
			utils.FormatCurrency(s.currencySymbol, worst.TotalRevenue),
			utils.FormatPercentage(worst.MarginPercentage))
		fmt.Fprintf(&b, "Top 3 revenue share: %s\n", utils.FormatPercentage(comparison.Insights.Top3RevenueShare))
	}

	fmt.Fprintf(&b, "\nTOP %d PRODUCTS BY REVENUE\n", topProductsInPrompt)
	for i, p := range s.topProducts(topProductsInPrompt) {
		fmt.Fprintf(&b, "%d. %s - %sx (%s)\n",
			i+1, p.menu, utils.FormatNumber(p.qty), utils.FormatCurrency(s.currencySymbol, p.revenue))
	}

	return strings.TrimSpace(b.String()), nil
}

type productTotal struct {
	menu    string
	qty     float64
	revenue float64
}

func (s *Service) topProducts(n int) []productTotal {
	index := make(map[string]int)
	var totals []productTotal

	for _, r := range s.store.Snapshot() {
		i, ok := index[r.Menu]
		if !ok {
			i = len(totals)
			index[r.Menu] = i
			totals = append(totals, productTotal{menu: r.Menu})
		}
		totals[i].qty += r.Qty
		totals[i].revenue += r.Total
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].revenue > totals[j].revenue
	})

	if len(totals) > n {
		totals = totals[:n]
	}
	return totals
}
