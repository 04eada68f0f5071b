package container

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"storefront/assembly/internal/client"
	"storefront/assembly/internal/config"
	"storefront/assembly/internal/domain"
	"storefront/assembly/internal/queue"
	"storefront/assembly/internal/repository"
	"storefront/assembly/internal/service"
	"storefront/assembly/internal/state"
)

// Container holds all initialized components
type Container struct {
	Config       *config.Config
	Client       client.StorefrontClient
	Repository   repository.TreeRepository
	Queue        queue.Queue
	StateManager state.StateManager
	TreeCache    state.TreeCache

	Service *service.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	db, err := pgxpool.New(context.Background(),
		fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Name,
		))
	if err != nil {
		return nil, err
	}
	container.db = db

	treeRepo := repository.NewTreeRepository(db)
	container.Repository = treeRepo

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	container.redis = rdb

	log.Info("✅ Connected to Redis successfully")

	redisQueue, err := queue.NewRedisQueue(rdb, cfg.Redis)
	if err != nil {
		return nil, err
	}
	container.Queue = redisQueue

	stateManager := state.NewRedisStateManager(rdb)
	container.StateManager = stateManager

	treeCache := state.NewRedisTreeCache(rdb, time.Duration(cfg.Redis.TreeCacheTTL)*time.Second)
	container.TreeCache = treeCache

	storefrontClient := client.NewStorefrontClient(cfg.Storefront)
	container.Client = storefrontClient

	service := service.NewService(
		treeRepo,
		storefrontClient,
		redisQueue,
		stateManager,
		treeCache,
		domain.ClassifyGroup,
		cfg.Storefront.Categories,
		cfg.Storefront.MaxWorkers,
		cfg.Redis.ConsumerGroup,
		cfg.Redis.MinIdleTime,
	)
	container.Service = service

	return container, nil
}

// Run executes a full sync: crawl listings while workers drain the queue
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Service.SyncAll(ctx)
	})

	g.Go(func() error {
		return c.Service.RunWorkers(ctx, c.Config.Storefront.MaxWorkers)
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	c.db.Close()
	c.redis.Close()

	log.Info("Container shut down successfully")
	return nil
}
