package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/branch-analytics-api/infrastructure/dataset"
	"github.com/vfg2006/branch-analytics-api/infrastructure/excel"
	"github.com/vfg2006/branch-analytics-api/infrastructure/integrator/groq"
	"github.com/vfg2006/branch-analytics-api/infrastructure/integrator/groq/groqclient"
	"github.com/vfg2006/branch-analytics-api/internal/api"
	"github.com/vfg2006/branch-analytics-api/internal/config"
	"github.com/vfg2006/branch-analytics-api/internal/scheduler"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/chatting"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/comparing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/costing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/presenting"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/trending"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// O dataset vive inteiro em memória; cada upload o substitui de forma
	// atômica
	store := dataset.NewStore()
	loader := excel.NewLoader()
	selection := analyzing.NewSelection()

	groqClient := groqclient.NewClient(cfg)
	groqIntegrator := groq.New(cfg, groqClient)

	analyzer := analyzing.NewService(store)
	presenter := presenting.NewService(cfg)
	comparer := comparing.NewService(cfg, store)
	trender := trending.NewService(store)
	coster := costing.NewService(store)
	chatter := chatting.NewService(cfg, store, comparer, groqIntegrator)

	if !chatter.Available() {
		logrus.Warn("GROQ_API_KEY não configurada; o chat responderá como indisponível")
	}

	// Agendador de limpeza dos arquivos temporários de upload
	uploadCleanupService := scheduler.NewUploadCleanupService(cfg)
	if err := uploadCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de uploads")
	} else {
		logrus.Info("Agendador de limpeza de uploads iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		loader,
		store,
		selection,
		analyzer,
		presenter,
		comparer,
		trender,
		coster,
		chatter,
		uploadCleanupService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
