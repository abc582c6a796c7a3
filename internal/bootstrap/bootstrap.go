package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"swapcore/internal/application"
	"swapcore/internal/config"
	httpserver "swapcore/internal/infrastructure/http"
	"swapcore/internal/infrastructure/logx"
	"swapcore/internal/infrastructure/operator"
	"swapcore/internal/infrastructure/pricesource"
	redisstore "swapcore/internal/infrastructure/redis"
	"swapcore/internal/infrastructure/watcher"
)

// App holds every wired component shared by the API and watcher processes.
type App struct {
	Config   config.Config
	Operator *operator.Client
	Quotes   *application.QuoteService
	Store    *application.QuoteStore
	Book     *application.OrderBook
	Sink     *httpserver.RingSink
	Watcher  *watcher.Watcher
	Ping     func(context.Context) error
}

// Build wires the full application graph. The returned cleanup closes any
// opened connections.
func Build(ctx context.Context, cfg config.Config) (*App, func(), error) {
	log := logx.L()

	httpClient := &http.Client{Timeout: 10 * time.Second}
	client := operator.NewClient(cfg.OperatorURLs, httpClient, log)

	sources := []application.PriceSource{
		pricesource.NewOperatorSource(client),
		pricesource.NewZeroExSource(cfg.ZeroExURLs, httpClient, log),
	}

	store := application.NewQuoteStore()
	quotes := application.NewQuoteService(client, sources, store, log,
		application.WithSourceTimeout(cfg.SourceTimeout))

	book := application.NewOrderBook()
	snapshots, ping, cleanup := buildSnapshots(cfg, log)

	if snap, found, err := snapshots.Load(ctx); err != nil {
		log.Warn("order snapshot load failed", zap.Error(err))
	} else if found {
		book.Restore(snap)
		log.Info("order book restored from snapshot")
	}

	sink := httpserver.NewRingSink(100)
	player := application.NewCuePlayer(func(h *application.AudioHandle) {
		log.Debug("audio cue", zap.String("cue", string(h.Cue)), zap.String("path", h.Path))
	})
	book.Subscribe(application.NewNotifier(sink, player))
	book.Subscribe(application.NewBookPersister(book, snapshots, log))

	app := &App{
		Config:   cfg,
		Operator: client,
		Quotes:   quotes,
		Store:    store,
		Book:     book,
		Sink:     sink,
		Watcher:  watcher.New(book, client, cfg.WatcherPoll, log),
		Ping:     ping,
	}
	return app, cleanup, nil
}

func buildSnapshots(cfg config.Config, log *zap.Logger) (application.SnapshotStore, func(context.Context) error, func()) {
	if cfg.SnapshotBackend != "redis" {
		log.Info("order snapshots disabled")
		return application.NoopSnapshots{}, nil, func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ping := func(ctx context.Context) error { return client.Ping(ctx).Err() }
	cleanup := func() { _ = client.Close() }
	return redisstore.New(client, cfg.SnapshotKey), ping, cleanup
}
