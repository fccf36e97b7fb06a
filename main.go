package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	restapi "github.com/hedisam/chainfeed/api/rest"
	"github.com/hedisam/chainfeed/internal/custompromauto"
	"github.com/hedisam/chainfeed/internal/dashboard"
	"github.com/hedisam/chainfeed/internal/enrich"
	"github.com/hedisam/chainfeed/internal/glacier"
	"github.com/hedisam/chainfeed/internal/network"
	"github.com/hedisam/chainfeed/internal/store/memdb"
	"github.com/hedisam/chainfeed/internal/stream"
	"github.com/hedisam/chainfeed/internal/synthetic"
)

const (
	sourceGlacier   = "glacier"
	sourceSynthetic = "synthetic"

	minPollInterval = 50 * time.Millisecond
)

type Options struct {
	ServerAddr        string        `long:"server-addr" env:"CHAINFEED_SERVER_ADDR" default:"localhost:8080" description:"Server addr to serve the http server on"`
	Source            string        `long:"source" env:"CHAINFEED_SOURCE" default:"glacier" choice:"glacier" choice:"synthetic" description:"Where blocks, transactions and chain metadata come from"`
	GlacierURL        string        `long:"glacier-url" env:"CHAINFEED_GLACIER_URL" default:"https://glacier-api.avax.network" description:"Base URL of the explorer API"`
	GlacierAPIKey     string        `long:"glacier-api-key" env:"CHAINFEED_GLACIER_API_KEY" description:"Explorer API key, sent as the x-glacier-api-key header"`
	BlockPollInterval time.Duration `long:"block-poll-interval" env:"CHAINFEED_BLOCK_POLL_INTERVAL" default:"1s" description:"How often the latest blocks are polled"`
	TxPollInterval    time.Duration `long:"tx-poll-interval" env:"CHAINFEED_TX_POLL_INTERVAL" default:"100ms" description:"How often the latest transactions are polled"`
	MaxItems          int           `long:"max-items" env:"CHAINFEED_MAX_ITEMS" default:"20" description:"Number of records shown per feed"`
	LookupsPerSecond  int           `long:"lookups-per-second" env:"CHAINFEED_LOOKUPS_PER_SECOND" default:"5" description:"Chain metadata lookups allowed per second, 0 disables the limit"`
	Seed              int64         `long:"seed" env:"CHAINFEED_SEED" description:"Seed of the synthetic source, defaults to the current time"`
	Verbose           bool          `short:"v" long:"verbose" description:"Verbose output"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	_, err := parser.Parse()
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	logger := logrus.New()
	ensureValidOpts(logger, parser, opts)

	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	feedStore := memdb.NewFeedStore()
	chainStore := memdb.NewChainStore()

	sources, graph := newSources(logger, opts)
	cfg := dashboard.DefaultConfig()
	cfg.Blocks = cfg.Blocks.WithMaxItems(opts.MaxItems)
	cfg.Blocks.PollInterval = opts.BlockPollInterval
	cfg.Transactions = cfg.Transactions.WithMaxItems(opts.MaxItems)
	cfg.Transactions.PollInterval = opts.TxPollInterval
	cfg.EnrichOptions = []enrich.Option{enrich.WithLookupsPerSecond(opts.LookupsPerSecond)}

	session := dashboard.New(logger, cfg, sources, dashboard.Stores{
		Feeds:  feedStore,
		Chains: chainStore,
	})
	sessionDone := make(chan struct{})
	go func() {
		defer close(sessionDone)
		session.Run(ctx)
	}()

	restServer := restapi.NewServer(logger, feedStore, chainStore, graph)
	mux := http.NewServeMux()
	restapi.RegisterFunc(logger, mux, http.MethodGet, "/api/v1/feeds/{kind}", restServer.GetFeed)
	restapi.RegisterFunc(logger, mux, http.MethodGet, "/api/v1/chains/{chainId}", restServer.GetChain)
	restapi.RegisterFunc(logger, mux, http.MethodGet, "/api/v1/network", restServer.GetNetwork)
	restapi.RegisterFunc(logger, mux, http.MethodGet, "/api/v1/stats", restServer.GetStats)

	// use a custom prom registry to avoid recording the default http handler metrics
	mux.Handle("/metrics", promhttp.HandlerFor(custompromauto.Registry(), promhttp.HandlerOpts{}))

	mustListenAndServe(ctx, logger, opts.ServerAddr, cors.Default().Handler(mux))
	<-sessionDone
}

// newSources returns the record sources of the feeds and the network graph that
// matches their chain ids.
func newSources(logger *logrus.Logger, opts Options) (dashboard.Sources, network.Source) {
	if opts.Source == sourceSynthetic {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		logger.WithField("seed", seed).Info("Using the synthetic source")
		src := synthetic.New(seed)
		return dashboard.Sources{
			Blocks:       stream.SourceFunc(src.LatestBlockRecords),
			Transactions: stream.SourceFunc(src.LatestTransactionRecords),
			Chains:       src,
		}, network.NewStatic(network.Mesh(synthetic.Chains))
	}

	httpClient := &http.Client{Timeout: time.Second * 10}
	client := glacier.New(logger, httpClient, opts.GlacierURL, opts.GlacierAPIKey)
	return dashboard.Sources{
		Blocks:       stream.SourceFunc(client.LatestBlockRecords),
		Transactions: stream.SourceFunc(client.LatestTransactionRecords),
		Chains:       client,
	}, network.NewLive(logger, client, network.DefaultRefreshInterval)
}

func mustListenAndServe(ctx context.Context, logger *logrus.Logger, addr string, handler http.Handler) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.WithField("addr", addr).Info("Serving dashboard api...")
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed with error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	logger.Info("Shutting down server...")
	err := srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.WithError(err).Error("Failed to shutdown server gracefully")
	}
}

func ensureValidOpts(logger *logrus.Logger, parser *flags.Parser, opts Options) {
	fail := func(msg string) {
		logger.Error(msg)
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	if opts.ServerAddr == "" {
		fail("--server-addr is required")
	}
	if opts.Source == sourceGlacier && opts.GlacierURL == "" {
		fail("--glacier-url is required with --source=glacier")
	}
	if opts.BlockPollInterval < minPollInterval {
		fail("--block-poll-interval is too small, it cannot be less than 50ms")
	}
	if opts.TxPollInterval < minPollInterval {
		fail("--tx-poll-interval is too small, it cannot be less than 50ms")
	}
	if opts.MaxItems < 1 {
		fail("--max-items is too small, it cannot be less than 1")
	}
	if opts.LookupsPerSecond < 0 {
		fail("--lookups-per-second cannot be negative")
	}
}
