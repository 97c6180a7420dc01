package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/rank-tracker-api/infrastructure/cache"
	"github.com/vfg2006/rank-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/rank-tracker-api/infrastructure/integrator/googlemaps/mapsclient"
	"github.com/vfg2006/rank-tracker-api/infrastructure/integrator/serpapi"
	"github.com/vfg2006/rank-tracker-api/infrastructure/integrator/serpapi/serpapiclient"
	"github.com/vfg2006/rank-tracker-api/infrastructure/repository"
	"github.com/vfg2006/rank-tracker-api/internal/api"
	"github.com/vfg2006/rank-tracker-api/internal/config"
	"github.com/vfg2006/rank-tracker-api/internal/metrics"
	"github.com/vfg2006/rank-tracker-api/internal/scheduler"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/quota"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/ranking"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/resolving"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/scanning"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/rank-tracker-api/pkg/log"
	"github.com/vfg2006/rank-tracker-api/pkg/utils"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.Configure(cfg.App.LogLevel, cfg.App.Env); err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := postgres.RunMigrations(cfg.Database.DSN); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	positionRepo := repository.NewPositionRepository(pgConn)
	scanCampaignRepo := repository.NewScanCampaignRepository(pgConn)

	metrics.Init(positionRepo)

	geocoder, closeCache := geocoderWithCache(ctx, cfg)
	defer closeCache()

	serpClient := serpapiclient.NewClient(cfg)
	serpIntegrator := serpapi.New(cfg, serpClient)

	resolver := resolving.NewResolver(serpIntegrator, resolving.NewDomainMatcher())
	ledger := ranking.NewPositionLedger(positionRepo, utils.RetryConfig{
		MaxAttempts: cfg.Tracking.LedgerRetryAttempts,
		BaseDelay:   cfg.Tracking.LedgerRetryDelay,
	})
	guard := quota.NewQuotaGuard(userRepo, positionRepo, scanCampaignRepo)

	authenticator := authenticating.NewService(userRepo, cfg)
	trackingService := tracking.NewService(resolver, ledger, guard, serpIntegrator, geocoder, positionRepo, cfg)
	scanService := scanning.NewService(scanCampaignRepo, userRepo, guard, geocoder)

	keywordRefreshService := scheduler.NewKeywordRefreshService(trackingService, cfg)
	creditReconciliationService := scheduler.NewCreditReconciliationService(scanCampaignRepo, cfg)

	if err := keywordRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização de palavras-chave")
	} else {
		logrus.Info("Agendador de atualização de palavras-chave iniciado com sucesso")
	}

	if err := creditReconciliationService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de conciliação de créditos")
	} else {
		logrus.Info("Agendador de conciliação de créditos iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		trackingService,
		scanService,
		keywordRefreshService,
		creditReconciliationService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource garante que o .env ao lado do binário seja encontrado em desenvolvimento
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)
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

// geocoderWithCache liga o cache Redis na frente do Geocoding quando REDIS_ADDR está definido
func geocoderWithCache(ctx context.Context, cfg *config.Config) (tracking.Geocoder, func() error) {
	mapsClient := mapsclient.NewClient(cfg)
	noop := func() error { return nil }

	if cfg.Redis.Addr == "" {
		logrus.Info("Cache de geocodificação desabilitado")
		return mapsClient, noop
	}

	store, closeStore, err := cache.NewRedisStore(ctx, cfg.Redis)
	if err != nil {
		logrus.WithError(err).Warn("Redis indisponível, seguindo sem cache de geocodificação")
		return mapsClient, noop
	}

	logrus.WithField("addr", cfg.Redis.Addr).Info("Cache de geocodificação habilitado")
	return cache.NewGeocodeCache(mapsClient, store, cfg.Redis.GeocodeTTL), closeStore
}
