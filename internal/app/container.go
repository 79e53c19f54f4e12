package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	identityCommands "github.com/felixgeelhaar/slotswap/internal/identity/application/commands"
	identityQueries "github.com/felixgeelhaar/slotswap/internal/identity/application/queries"
	identityDomain "github.com/felixgeelhaar/slotswap/internal/identity/domain"
	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database/postgres" // Register Postgres driver
	_ "github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/idempotency"
	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/migrations"
	slotCommands "github.com/felixgeelhaar/slotswap/internal/slots/application/commands"
	slotQueries "github.com/felixgeelhaar/slotswap/internal/slots/application/queries"
	slotDomain "github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/felixgeelhaar/slotswap/internal/slots/infrastructure/calendar"
	swapCommands "github.com/felixgeelhaar/slotswap/internal/swaps/application/commands"
	swapQueries "github.com/felixgeelhaar/slotswap/internal/swaps/application/queries"
	swapDomain "github.com/felixgeelhaar/slotswap/internal/swaps/domain"
	"github.com/felixgeelhaar/slotswap/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis
	RedisClient *redis.Client

	// Repositories
	UserRepo identityDomain.Repository
	SlotRepo slotDomain.Repository
	SwapRepo swapDomain.Repository
	ViewRepo swapDomain.ViewRepository

	// Unit of Work
	UnitOfWork *database.BreakerUnitOfWork

	// Idempotency-Key records for the HTTP API
	Idempotency idempotency.Store

	// Identity Handlers
	RegisterUserHandler *identityCommands.RegisterUserHandler
	ListUsersHandler    *identityQueries.ListUsersHandler
	GetUserHandler      *identityQueries.GetUserHandler

	// Slot Command Handlers
	CreateSlotHandler *slotCommands.CreateSlotHandler
	UpdateSlotHandler *slotCommands.UpdateSlotHandler
	DeleteSlotHandler *slotCommands.DeleteSlotHandler

	// Slot Query Handlers
	ListMySlotsHandler    *slotQueries.ListMySlotsHandler
	ExportCalendarHandler *slotQueries.ExportCalendarHandler

	// Negotiation Engine
	ProposeSwapHandler   *swapCommands.ProposeSwapHandler
	RespondToSwapHandler *swapCommands.RespondToSwapHandler

	// Query Views
	ListMarketplaceHandler *swapQueries.ListMarketplaceHandler
	ListIncomingHandler    *swapQueries.ListIncomingHandler
	ListOutgoingHandler    *swapQueries.ListOutgoingHandler
	RequestHistoryHandler  *swapQueries.RequestHistoryHandler
}

// NewContainer opens the store selected by cfg, applies migrations and wires every handler.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	conn, err := database.NewConnection(ctx, cfg.Database())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DBConn = conn
	c.DBDriver = conn.Driver()
	logger.Info("connected to database", "driver", c.DBDriver.String())

	if err := migrations.Up(ctx, conn, logger); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := c.initRepositories(); err != nil {
		conn.Close()
		return nil, err
	}
	c.UnitOfWork = database.NewBreakerUnitOfWork(database.NewUnitOfWork(conn), cfg.Breaker(), logger)

	if err := c.initIdempotency(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	c.initHandlers()
	return c, nil
}

func (c *Container) initRepositories() error {
	factory := NewRepositoryFactory(c.DBConn)

	var err error
	if c.UserRepo, err = factory.UserRepository(); err != nil {
		return err
	}
	if c.SlotRepo, err = factory.SlotRepository(); err != nil {
		return err
	}
	if c.SwapRepo, err = factory.SwapRepository(); err != nil {
		return err
	}
	if c.ViewRepo, err = factory.ViewRepository(); err != nil {
		return err
	}
	return nil
}

// initIdempotency connects to Redis when configured. Development falls back to memory
// when Redis is unreachable; other environments fail.
func (c *Container) initIdempotency(ctx context.Context) error {
	cfg := c.Config
	if cfg.RedisURL == "" {
		c.Idempotency = idempotency.NewMemoryStore()
		return nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		if !cfg.IsDevelopment() {
			return fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		c.Logger.Warn("invalid Redis URL, idempotency keys will use in-memory fallback", "error", err)
		c.Idempotency = idempotency.NewMemoryStore()
		return nil
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		if !cfg.IsDevelopment() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, idempotency keys will use in-memory fallback", "error", err)
		c.Idempotency = idempotency.NewMemoryStore()
		return nil
	}

	c.RedisClient = client
	c.Idempotency = idempotency.NewRedisStore(client)
	c.Logger.Info("connected to Redis")
	return nil
}

func (c *Container) initHandlers() {
	// Identity
	c.RegisterUserHandler = identityCommands.NewRegisterUserHandler(c.UserRepo, c.UnitOfWork)
	c.ListUsersHandler = identityQueries.NewListUsersHandler(c.UserRepo)
	c.GetUserHandler = identityQueries.NewGetUserHandler(c.UserRepo)

	// Slots
	c.CreateSlotHandler = slotCommands.NewCreateSlotHandler(c.SlotRepo, c.UnitOfWork)
	c.UpdateSlotHandler = slotCommands.NewUpdateSlotHandler(c.SlotRepo, c.UnitOfWork)
	c.DeleteSlotHandler = slotCommands.NewDeleteSlotHandler(c.SlotRepo, c.UnitOfWork)
	c.ListMySlotsHandler = slotQueries.NewListMySlotsHandler(c.SlotRepo)
	c.ExportCalendarHandler = slotQueries.NewExportCalendarHandler(c.SlotRepo, calendar.NewEncoder())

	// Negotiation
	c.ProposeSwapHandler = swapCommands.NewProposeSwapHandler(c.SwapRepo, c.SlotRepo, c.UnitOfWork, c.Logger)
	c.RespondToSwapHandler = swapCommands.NewRespondToSwapHandler(c.SwapRepo, c.SlotRepo, c.UnitOfWork, c.Logger)

	// Views
	c.ListMarketplaceHandler = swapQueries.NewListMarketplaceHandler(c.ViewRepo)
	c.ListIncomingHandler = swapQueries.NewListIncomingHandler(c.ViewRepo)
	c.ListOutgoingHandler = swapQueries.NewListOutgoingHandler(c.ViewRepo)
	c.RequestHistoryHandler = swapQueries.NewRequestHistoryHandler(c.SwapRepo)
}

// Ping checks the store.
func (c *Container) Ping(ctx context.Context) error {
	return c.DBConn.Ping(ctx)
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		} else {
			c.Logger.Info("Redis connection closed")
		}
	}

	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err, "driver", c.DBDriver.String())
		} else {
			c.Logger.Info("database connection closed", "driver", c.DBDriver.String())
		}
	}
}
