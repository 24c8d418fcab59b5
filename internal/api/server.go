package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/branch-analytics-api/infrastructure/dataset"
	"github.com/vfg2006/branch-analytics-api/infrastructure/excel"
	"github.com/vfg2006/branch-analytics-api/internal/api/handler"
	"github.com/vfg2006/branch-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/branch-analytics-api/internal/config"
	"github.com/vfg2006/branch-analytics-api/internal/scheduler"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/chatting"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/comparing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/costing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/presenting"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/trending"
	"github.com/vfg2006/branch-analytics-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	loader *excel.Loader,
	store *dataset.Store,
	selection *analyzing.Selection,
	analyzer analyzing.Analyzer,
	presenter presenting.Presenter,
	comparer comparing.Comparer,
	trender trending.Trender,
	coster costing.Coster,
	chatter chatting.Chatter,
	uploadCleanupService *scheduler.UploadCleanupService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		UploadCleanupService: uploadCleanupService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Uploads(config, loader, store, selection)...),
		router.WithRoutes(handler.Dashboard(comparer)...),
		router.WithRoutes(handler.ProductAnalysis(analyzer, presenter)...),
		router.WithRoutes(handler.Selection(selection)...),
		router.WithRoutes(handler.Trends(trender)...),
		router.WithRoutes(handler.COGS(coster)...),
		router.WithRoutes(handler.ChatRoutes(chatter)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
	}

	chained := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chained,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
