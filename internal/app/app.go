package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/storefront-backend/internal/cfg"
	v1Http "github.com/DRSN-tech/storefront-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/storefront-backend/internal/infrastructure/kafka"
	"github.com/DRSN-tech/storefront-backend/internal/infrastructure/storefront"
	cartSync "github.com/DRSN-tech/storefront-backend/internal/infrastructure/sync"
	"github.com/DRSN-tech/storefront-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/storefront-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront-backend/internal/repository/redis"
	redisConv "github.com/DRSN-tech/storefront-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/clients"
	"github.com/DRSN-tech/storefront-backend/pkg/closer"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/DRSN-tech/storefront-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App собирает зависимости и управляет жизненным циклом сервиса.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	httpSrv *v1Http.Server
	closer  *closer.Closer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(5 * time.Second)

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(_ context.Context) error {
		db.Close()
		log.Infof("Postgres pool closed")
		return nil
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(_ context.Context) error {
		return redisClient.Client.Close()
	})

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(_ context.Context) error {
		return producer.Close()
	})

	cartConv := redisConv.NewCartConverterImpl()
	remoteConv := pgdbConv.NewRemoteCartConverterImpl()
	orderConv := pgdbConv.NewOrderConverterImpl()

	cartRepo := redis.NewCartRepo(redisClient, cartConv, cfg.Redis, log)
	remoteCartRepo := pgdb.NewRemoteCartRepo(db.Pool, remoteConv)
	orderRepo := pgdb.NewOrderRepo(db.Pool, orderConv)

	promoEngine, err := usecase.NewPromoEngine(cfg.Promo)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cartUC := usecase.NewCartUC(cartRepo, promoEngine, cfg.Pricing, log)

	syncAdapter := cartSync.NewAdapter(remoteCartRepo, cfg.Checkout.SyncDebounce, cfg.Checkout.SyncMaxRetries, log)
	cartUC.SetObserver(syncAdapter)
	cl.Add(func(_ context.Context) error {
		syncAdapter.Stop()
		return nil
	})

	gateway := storefront.NewClient(cfg.Storefront, log)
	checkoutUC := usecase.NewCheckoutUC(cartUC, gateway, orderRepo, producer, cfg.Checkout, log)
	cl.Add(func(_ context.Context) error {
		checkoutUC.Stop()
		return nil
	})

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(cartUC, checkoutUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	return &App{
		cfg:     cfg,
		logger:  log,
		httpSrv: httpSrv,
		closer:  cl,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до сигнала остановки
// или фатальной ошибки сервера.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("Resource shutdown finished with errors: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
