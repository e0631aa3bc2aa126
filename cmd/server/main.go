package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/microbiomedata/nmdc-orcid-creditor/claims"
	"github.com/microbiomedata/nmdc-orcid-creditor/internal/config"
	"github.com/microbiomedata/nmdc-orcid-creditor/internal/logging"
	"github.com/microbiomedata/nmdc-orcid-creditor/internal/metrics"
	"github.com/microbiomedata/nmdc-orcid-creditor/internal/redisclient"
	"github.com/microbiomedata/nmdc-orcid-creditor/ledger"
	"github.com/microbiomedata/nmdc-orcid-creditor/orcid"
	"github.com/microbiomedata/nmdc-orcid-creditor/server"
	"github.com/microbiomedata/nmdc-orcid-creditor/server/authflowrepo"
	"github.com/microbiomedata/nmdc-orcid-creditor/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	// A .env file is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("godotenv.Load: %w", err)
	}

	c := config.New()
	logging.Setup(os.Stdout, c.GetEnv(), c.GetLogLevel())
	if err := c.Validate(); err != nil {
		return err
	}
	displayAppname(c.GetAppName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, cleanup, err := buildServer(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return listenAndServe(httpServer)
	})
	g.Go(func() error {
		<-gctx.Done()
		return shutdown(httpServer)
	})
	return g.Wait()
}

func buildServer(ctx context.Context, c config.Config) (http.Handler, func(), error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	baseClient := &http.Client{Timeout: c.GetUpstreamTimeout()}

	codec, err := sessions.NewCodec(c.GetSessionSecret(), c.GetMaxSessionAge())
	if err != nil {
		return nil, nil, fmt.Errorf("sessions.NewCodec: %w", err)
	}

	login := orcid.NewLoginProvider(orcid.LoginConfig{
		ClientID:     c.GetClientID(),
		ClientSecret: c.GetClientSecret(),
		AuthorizeURL: c.GetAuthorizeURL(),
		TokenURL:     c.GetTokenURL(),
		RedirectURL:  c.GetBaseURL() + server.RouteCallback,
		Scopes:       c.GetScopes(),
		OIDCIssuer:   c.GetOIDCIssuer(),
		JWKSURL:      c.GetJWKSURL(),
	}, collector.InstrumentClient("orcid_oauth", baseClient))

	ledgerClient := ledger.NewClient(collector.InstrumentClient("ledger", baseClient), c.GetLedgerURL(), c.GetLedgerSharedSecret())
	submitter := orcid.NewSubmitter(collector.InstrumentClient("orcid_api", baseClient), c.GetAPIBaseURL(), c.GetOrganization())

	resolverOpts := []claims.Option{
		claims.WithOutcomeRecorder(collector),
		claims.WithClaimTimeout(c.GetClaimLockTTL()),
	}
	if t := c.GetUpstreamTimeout(); t >= c.GetClaimLockTTL() {
		log.Warn().Dur("upstream_timeout", t).Dur("claim_lock_ttl", c.GetClaimLockTTL()).
			Msg("Upstream timeout is not shorter than the claim lock TTL; claims are cut off at the TTL")
	}
	cleanup := func() {}

	var health func(context.Context) error
	redisClient, err := redisclient.New(ctx, c.GetRedisURL())
	if err != nil {
		return nil, nil, fmt.Errorf("redisclient.New: %w", err)
	}
	if redisClient != nil {
		log.Info().Msg("Using Redis for claim locks")
		resolverOpts = append(resolverOpts, claims.WithLocker(claims.NewRedisLocker(redisClient.Client, c.GetClaimLockTTL())))
		health = redisClient.Health
		cleanup = func() {
			if err := redisClient.Close(); err != nil {
				log.Err(err).Msg("redis close")
			}
		}
	}

	s, err := server.New(c, server.Dependencies{
		Login:     login,
		Ledger:    ledgerClient,
		Claims:    claims.NewResolver(ledgerClient, submitter, resolverOpts...),
		Sessions:  codec,
		AuthFlows: authflowrepo.NewInMemoryRepo(),
		Metrics:   metrics.Handler(registry),
		Health:    health,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("server.New: %w", err)
	}
	return s, cleanup, nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
