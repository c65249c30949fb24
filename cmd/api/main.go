package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-pipeline-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-pipeline-api/infrastructure/repository"
	"github.com/vfg2006/campaign-pipeline-api/internal/api"
	"github.com/vfg2006/campaign-pipeline-api/internal/config"
	"github.com/vfg2006/campaign-pipeline-api/internal/scheduler"
	"github.com/vfg2006/campaign-pipeline-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-pipeline-api/internal/usecases/pipelining"
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

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	stagingRepo := repository.NewStagingRepository(pgConn)
	factRepo := repository.NewFactRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	pipelineService := pipelining.NewService(stagingRepo, factRepo, cfg)

	// Inicializa o agendador que republica o snapshot da tabela fato
	republishSyncService := scheduler.NewRepublishSyncService(pipelineService, cfg)

	if err := republishSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de republicação do snapshot")
	} else {
		logrus.Info("Agendador de republicação do snapshot iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		pipelineService,
		authenticator,
		republishSyncService,
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
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
