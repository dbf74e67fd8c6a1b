package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/database/memstore"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/database/postgres"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/database/redis"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/broadsign"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/broadsign/broadsignclient"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/gam"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/gam/gamclient"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/mock"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/repository"
	"github.com/vfg2006/adcp-dispatch-api/internal/api"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
	"github.com/vfg2006/adcp-dispatch-api/internal/events"
	"github.com/vfg2006/adcp-dispatch-api/internal/scheduler"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/approving"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/auditing"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/authenticating"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/dispatching"
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

	principalRepo := repository.NewPrincipalRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	mediaBuyRepo := repository.NewMediaBuyRepository(pgConn)
	taskRepo := repository.NewWorkflowTaskRepository(pgConn)
	auditLogRepo := repository.NewAuditLogRepository(pgConn)
	snapshotRepo := repository.NewDeliverySnapshotRepository(pgConn)

	authenticator := authenticating.NewService(principalRepo, cfg.Auth)

	// Monta os integradores de plataforma; o registro resolve o integrador
	// de cada principal pelo tipo configurado no tenant
	arena := memstore.NewArena()
	mockIntegrator := mock.New(cfg.Mock, arena)

	sessionManager := gamclient.NewSessionManager(cfg.GAM)
	go sessionManager.StartAutoRefresh()
	defer sessionManager.StopAutoRefresh()

	gamClient := gamclient.NewClient(cfg.GAM, sessionManager)
	gamIntegrator := gam.New(cfg.GAM, gamClient)

	broadsignClient := broadsignclient.NewClient(cfg.Broadsign)
	broadsignIntegrator := broadsign.New(cfg.Broadsign, broadsignClient)

	registry := integrator.NewRegistry(mockIntegrator, gamIntegrator, broadsignIntegrator)

	// Trilha de auditoria com gravação assíncrona em melhor esforço
	auditor := auditing.NewService(auditLogRepo, cfg.Audit.BufferSize)
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), cfg.Audit.FlushTimeout)
		defer flushCancel()
		auditor.Shutdown(flushCtx)
	}()

	// Publicador de eventos de status: Redis quando habilitado, no-op caso
	// contrário
	var publisher events.Publisher = events.NewNoopPublisher()
	if cfg.Redis.EventsEnabled {
		redisClient, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
		}
		defer redisClient.Close()
		publisher = events.NewRedisPublisher(redisClient)
	}

	// Motor de aprovação humana com timers canceláveis e webhook de conclusão
	engine := approving.NewService(
		cfg.HITL,
		taskRepo,
		approving.NewTimerScheduler(),
		approving.NewWebhookNotifier(cfg.Webhook.Timeout),
	)
	defer engine.Shutdown()

	dispatcher := dispatching.NewService(
		cfg,
		registry,
		principalRepo,
		productRepo,
		mediaBuyRepo,
		taskRepo,
		snapshotRepo,
		engine,
		auditor,
		publisher,
	)

	// Inicializa os agendadores: varredura de tasks com prazo vencido e
	// sincronização diária de entrega
	workflowSweeperService := scheduler.NewWorkflowSweeperService(taskRepo, engine, cfg)
	deliverySyncService := scheduler.NewDeliverySyncService(
		mediaBuyRepo,
		principalRepo,
		snapshotRepo,
		registry,
		cfg,
	)

	if err := workflowSweeperService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o varredor de tasks de workflow")
	} else {
		logrus.Info("Varredor de tasks de workflow iniciado com sucesso")
	}

	if err := deliverySyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o sincronizador de entrega")
	} else {
		logrus.Info("Sincronizador de entrega iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		dispatcher,
		authenticator,
		workflowSweeperService,
		deliverySyncService,
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
