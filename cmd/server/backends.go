package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"onboard/internal/identity"
	identitymodels "onboard/internal/identity/models"
	userstore "onboard/internal/identity/store/user"
	"onboard/internal/onboarding/kyc"
	"onboard/internal/onboarding/lock"
	"onboard/internal/onboarding/notify"
	onboardingservice "onboard/internal/onboarding/service"
	customerstore "onboard/internal/onboarding/store/customer"
	"onboard/internal/onboarding/store/entitykyc"
	orgservice "onboard/internal/organization/service"
	branchstore "onboard/internal/organization/store/branch"
	clientstore "onboard/internal/organization/store/client"
	"onboard/internal/platform/config"
	"onboard/internal/platform/kafka"
	"onboard/internal/platform/postgres"
	"onboard/internal/platform/redis"
	"onboard/internal/ratelimit"
	audit "onboard/pkg/platform/audit"
	auditmemory "onboard/pkg/platform/audit/store/memory"
	auditpostgres "onboard/pkg/platform/audit/store/postgres"
	"onboard/pkg/platform/audit/worker"
	"onboard/pkg/platform/circuit"
	txcontext "onboard/pkg/platform/tx"
)

// lockAcquireWait bounds how long an acceptance waits for a concurrent one on the
// same customer.
const lockAcquireWait = 2 * time.Second

type userStore interface {
	identity.UserStore
	Create(ctx context.Context, u *identitymodels.User) error
}

// backends holds the storage and messaging adapters chosen from configuration.
// Without DATABASE_URL everything lives in memory.
type backends struct {
	users     userStore
	clients   orgservice.ClientStore
	branches  orgservice.BranchStore
	customers onboardingservice.CustomerStore
	entities  kyc.EntityStore
	audit     audit.Store
	tx        onboardingservice.TxRunner
	locker    onboardingservice.Locker
	limits    ratelimit.Store
	notifier  onboardingservice.Notifier
	relay     *worker.Relay
	seed      bool

	pool     *pgxpool.Pool
	redis    *redis.Client
	producer *kafka.Producer
}

func openBackends(ctx context.Context, cfg config.Server, log *slog.Logger) (*backends, error) {
	be := &backends{}
	if err := be.openStores(ctx, cfg, log); err != nil {
		return nil, err
	}
	if err := be.openLocker(ctx, cfg, log); err != nil {
		be.Close()
		return nil, err
	}
	if err := be.openMessaging(ctx, cfg, log); err != nil {
		be.Close()
		return nil, err
	}
	return be, nil
}

func (be *backends) openStores(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	if cfg.Postgres.URL == "" {
		log.Info("DATABASE_URL not set, using in-memory stores")
		be.users = userstore.NewInMemory()
		be.clients = clientstore.NewInMemory()
		be.branches = branchstore.NewInMemory()
		be.customers = customerstore.NewInMemory()
		be.entities = entitykyc.NewInMemory()
		be.audit = auditmemory.NewInMemoryStore()
		be.seed = cfg.IsDevelopment()
		return nil
	}

	pool, err := postgres.Connect(ctx, cfg.Postgres, log)
	if err != nil {
		return err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return err
	}
	be.pool = pool
	be.users = userstore.NewPostgres(pool)
	be.clients = clientstore.NewPostgres(pool)
	be.branches = branchstore.NewPostgres(pool)
	be.customers = customerstore.NewPostgres(pool)
	be.entities = entitykyc.NewPostgres(pool)
	be.audit = auditpostgres.New(pool)
	be.tx = txcontext.NewRunner(pool, 0)
	log.Info("connected to postgres")
	return nil
}

func (be *backends) openLocker(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if client == nil {
		log.Info("REDIS_URL not set, acceptance locks and rate limits are process local")
		be.locker = lock.NewMemory(lockAcquireWait)
		be.limits = ratelimit.NewMemory()
		return nil
	}
	be.redis = client
	be.locker = lock.NewRedis(client.Client, lockAcquireWait)
	be.limits = ratelimit.NewRedis(client.Client)
	return nil
}

func (be *backends) openMessaging(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	fallback := notify.NewLog(log)
	if !cfg.Kafka.Enabled() {
		log.Info("KAFKA_BROKERS not set, invite deliveries are only logged")
		be.notifier = fallback
		return nil
	}

	producer, err := kafka.NewProducer(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	be.producer = producer
	if err := producer.EnsureTopics(ctx, 1, 1, cfg.Kafka.InviteTopic, cfg.Kafka.AuditTopic); err != nil {
		return fmt.Errorf("ensure kafka topics: %w", err)
	}

	be.notifier = notify.NewResilient(
		notify.NewKafka(producer, cfg.Kafka.InviteTopic),
		fallback,
		circuit.New("invite-delivery"),
		log,
	)
	if outbox, ok := be.audit.(*auditpostgres.Store); ok {
		be.relay = worker.NewRelay(outbox, producer, cfg.Kafka.AuditTopic,
			worker.WithLogger(log),
			worker.WithInterval(cfg.Kafka.RelayInterval),
			worker.WithBatchSize(cfg.Kafka.RelayBatch),
		)
	}
	return nil
}

// Health pings every configured remote dependency.
func (be *backends) Health(ctx context.Context) error {
	var errs []error
	if be.pool != nil {
		if err := be.pool.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("postgres: %w", err))
		}
	}
	if be.redis != nil {
		if err := be.redis.Health(ctx); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if be.producer != nil {
		if err := be.producer.Health(ctx); err != nil {
			errs = append(errs, fmt.Errorf("kafka: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (be *backends) Close() {
	if be.producer != nil {
		be.producer.Close()
	}
	if be.redis != nil {
		_ = be.redis.Close()
	}
	if be.pool != nil {
		be.pool.Close()
	}
}
