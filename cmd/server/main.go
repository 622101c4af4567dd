package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"onboard/internal/identity"
	jwttoken "onboard/internal/jwt_token"
	"onboard/internal/onboarding/handler"
	"onboard/internal/onboarding/invite"
	"onboard/internal/onboarding/kyc"
	onboardingmetrics "onboard/internal/onboarding/metrics"
	onboardingservice "onboard/internal/onboarding/service"
	orgmetrics "onboard/internal/organization/metrics"
	orgservice "onboard/internal/organization/service"
	"onboard/internal/platform/config"
	"onboard/internal/platform/httpserver"
	"onboard/internal/platform/logger"
	"onboard/internal/platform/metrics"
	"onboard/internal/ratelimit"
	"onboard/pkg/platform/audit/publisher"
	"onboard/pkg/platform/httputil"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "onboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	be, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer be.Close()

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	org := orgservice.New(be.clients, be.branches,
		orgservice.WithLogger(log),
		orgservice.WithMetrics(orgmetrics.New(reg)),
	)
	if be.seed {
		if err := seedDevelopment(ctx, be.users, org, jwtService, log); err != nil {
			return fmt.Errorf("seed development data: %w", err)
		}
	}

	auditPublisher := publisher.New(be.audit,
		publisher.WithLogger(log),
		publisher.WithMetrics(publisher.NewMetrics(reg)),
	)

	opts := []onboardingservice.Option{
		onboardingservice.WithLogger(log),
		onboardingservice.WithMetrics(onboardingmetrics.New(reg)),
		onboardingservice.WithAuditPublisher(auditPublisher),
		onboardingservice.WithNotifier(be.notifier),
		onboardingservice.WithLocker(be.locker),
		onboardingservice.WithTokenManager(invite.NewManager(
			invite.WithTTL(cfg.Invite.TTL),
			invite.WithPlaintextDebug(cfg.IsDevelopment()),
		)),
		onboardingservice.WithInviteBaseURL(cfg.Invite.BaseURL),
		onboardingservice.WithLockTTL(cfg.Invite.LockTTL),
	}
	if be.tx != nil {
		opts = append(opts, onboardingservice.WithTxRunner(be.tx))
	}
	onboarding := onboardingservice.New(
		be.customers,
		kyc.NewEngine(be.entities),
		identity.NewResolver(be.users),
		org,
		opts...,
	)

	httpMetrics := metrics.New(reg)
	limiter := ratelimit.New(be.limits, log,
		ratelimit.WithDisabled(cfg.RateLimit.Disabled),
		ratelimit.WithRegisterer(reg),
	)
	router := chi.NewRouter()
	router.Use(chimw.RealIP)
	router.Handle("/metrics", metrics.Handler(reg))
	router.Get("/healthz", healthz(be))
	handler.New(onboarding, log, httpMetrics, jwttoken.NewJWTServiceAdapter(jwtService), cfg.IsDevelopment(),
		handler.WithPublicLimiter(limiter.Limit(ratelimit.Policy{
			Class:  "invite_validate",
			Limit:  cfg.RateLimit.InviteValidatePerWindow,
			Window: cfg.RateLimit.Window,
		})),
	).Register(router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(ctx, httpserver.New(cfg.Addr, router), log)
	})
	if be.relay != nil {
		g.Go(func() error {
			return be.relay.Run(ctx)
		})
	}

	log.Info("starting onboard", "addr", cfg.Addr, "environment", cfg.Environment)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("onboard stopped")
	return nil
}

func healthz(be *backends) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := be.Health(r.Context()); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "error": err.Error()})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}
}
