package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpin "studydesk/internal/adapters/in/http"
	"studydesk/internal/adapters/out/jsonstore"
	"studydesk/internal/adapters/out/lognotifier"
	"studydesk/internal/adapters/out/payments"
	"studydesk/internal/adapters/out/postgres"
	"studydesk/internal/adapters/out/sessions"
	"studydesk/internal/adapters/out/sheets"
	"studydesk/internal/adapters/out/telegram"
	"studydesk/internal/core/application/directory"
	"studydesk/internal/core/application/dispatch"
	"studydesk/internal/core/application/gateways"
	"studydesk/internal/core/application/usecases/commands"
	"studydesk/internal/core/application/usecases/queries"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/core/ports"
	"studydesk/internal/jobs"

	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	clock      func() time.Time
	uowFactory ports.UnitOfWorkFactory
	sessions   ports.SessionStore
	notifier   ports.Notifier
	directory  *directory.Directory
	dispatcher *dispatch.Dispatcher
	closers    []func() error
}

// NewCompositionRoot opens the configured stores and builds the shared
// services. Close releases what it opened.
func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config: config,
		logger: logger,
		clock:  time.Now,
	}

	var err error
	if c.uowFactory, err = c.openStore(); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	if c.sessions, err = c.openSessions(); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	if c.notifier, err = c.openNotifier(); err != nil {
		return nil, errors.Join(err, c.Close())
	}

	c.directory, err = directory.New(kernel.ActorID(config.AdminID), c.executorIDs(), c.uowFactory)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}
	c.dispatcher = dispatch.NewDispatcher(c.notifier, c.directory, logger)

	return c, nil
}

func (c *CompositionRoot) openStore() (ports.UnitOfWorkFactory, error) {
	switch c.config.StoreDriver {
	case StoreSQLite:
		return c.openGorm(sqlite.Open(c.config.SQLitePath))
	case StorePostgres:
		return c.openGorm(gormpostgres.Open(c.config.PostgresDSN()))
	default:
		return jsonstore.NewStore(c.config.OrdersFile, c.config.ExecutorsFile, c.logger), nil
	}
}

func (c *CompositionRoot) openGorm(dialector gorm.Dialector) (ports.UnitOfWorkFactory, error) {
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", c.config.StoreDriver, err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, sqlDB.Close)

	if err = postgres.Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", c.config.StoreDriver, err)
	}
	return postgres.NewGormUnitOfWorkFactory(gormDB), nil
}

func (c *CompositionRoot) openSessions() (ports.SessionStore, error) {
	if c.config.SessionDriver != SessionsRedis {
		return sessions.NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{Addr: c.config.RedisAddr})
	c.closers = append(c.closers, client.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return sessions.NewRedisStore(client, c.config.SessionTTL), nil
}

func (c *CompositionRoot) openNotifier() (ports.Notifier, error) {
	if c.config.BotToken == "" {
		c.logger.Warn("BOT_TOKEN is empty, chat messages are only logged")
		return lognotifier.New(c.logger), nil
	}
	return telegram.NewNotifier(telegram.Options{
		BaseURL:       c.config.BotAPIURL,
		Token:         c.config.BotToken,
		RatePerSecond: c.config.NotifyRate,
	}, c.logger)
}

func (c *CompositionRoot) executorIDs() []kernel.ActorID {
	ids := make([]kernel.ActorID, 0, len(c.config.ExecutorIDs))
	for _, id := range c.config.ExecutorIDs {
		ids = append(ids, kernel.ActorID(id))
	}
	return ids
}

// Close releases the opened connections.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCommandHandlers() (gateways.Handlers, error) {
	f := c.commandUoWFactory()

	linker, err := payments.NewSBPLinker(c.config.PaymentLinkBase)
	if err != nil {
		return gateways.Handlers{}, err
	}
	exporter := sheets.NewCSVExporter(c.config.ExportFile, order.SheetHeaders)

	return gateways.Handlers{
		SaveDraft:           commands.NewSaveDraftCommandHandler(f),
		ConfirmOrder:        commands.NewConfirmOrderCommandHandler(f, c.dispatcher),
		DiscardDraft:        commands.NewDiscardDraftCommandHandler(f, c.dispatcher),
		AssignExecutor:      commands.NewAssignExecutorCommandHandler(f, c.dispatcher),
		SelfTake:            commands.NewSelfTakeCommandHandler(f, c.dispatcher),
		AcceptAssignment:    commands.NewAcceptAssignmentCommandHandler(f, c.dispatcher),
		DeclineAssignment:   commands.NewDeclineAssignmentCommandHandler(f, c.dispatcher),
		SubmitOffer:         commands.NewSubmitOfferCommandHandler(f, c.dispatcher),
		ChangeOfferPrice:    commands.NewChangeOfferPriceCommandHandler(f, c.dispatcher),
		ResolveOffer:        commands.NewResolveOfferCommandHandler(f, c.dispatcher),
		StartPayment:        commands.NewStartPaymentCommandHandler(f, c.dispatcher, linker, c.config.PaymentSessionTTL),
		SubmitPayment:       commands.NewSubmitPaymentCommandHandler(f, c.dispatcher),
		ReviewPayment:       commands.NewReviewPaymentCommandHandler(f, c.dispatcher),
		SubmitWork:          commands.NewSubmitWorkCommandHandler(f, c.dispatcher),
		ApproveWork:         commands.NewApproveWorkCommandHandler(f, c.dispatcher),
		AcceptWork:          commands.NewAcceptWorkCommandHandler(f, c.dispatcher),
		RequestRevision:     commands.NewRequestRevisionCommandHandler(f, c.dispatcher),
		RequestCancellation: commands.NewRequestCancellationCommandHandler(f, c.dispatcher),
		ResolveCancellation: commands.NewResolveCancellationCommandHandler(f, c.dispatcher),
		Withdraw:            commands.NewWithdrawCommandHandler(f, c.dispatcher),
		DeleteOrder:         commands.NewDeleteOrderCommandHandler(f, c.dispatcher),
		ExportOrder:         commands.NewExportOrderCommandHandler(f, exporter),
		AddExecutor:         commands.NewAddExecutorCommandHandler(f),
		RemoveExecutor:      commands.NewRemoveExecutorCommandHandler(f),
	}, nil
}

func (c *CompositionRoot) CreateQueryHandlers() gateways.Queries {
	return gateways.Queries{
		GetOrder:           queries.NewGetOrderQueryHandler(c.uowFactory),
		ListOrders:         queries.NewListOrdersQueryHandler(c.uowFactory),
		ListCustomerOrders: queries.NewListCustomerOrdersQueryHandler(c.uowFactory),
		ListExecutors:      queries.NewListExecutorsQueryHandler(c.uowFactory),
	}
}

func (c *CompositionRoot) CreateRouter() (*gateways.Router, error) {
	handlers, err := c.CreateCommandHandlers()
	if err != nil {
		return nil, err
	}

	return gateways.NewRouter(gateways.Env{
		Sessions:  c.sessions,
		Directory: c.directory,
		Replies:   c.dispatcher,
		Commands:  handlers,
		Queries:   c.CreateQueryHandlers(),
		Uploads:   kernel.DefaultUploadPolicy(),
		Clock:     c.clock,
		Logger:    c.logger,
	})
}

func (c *CompositionRoot) CreateServer(events httpin.EventHandler) *httpin.Server {
	q := c.CreateQueryHandlers()
	return httpin.NewServer(
		events,
		c.config.WebhookSecret,
		kernel.ActorID(c.config.AdminID),
		q.GetOrder,
		q.ListOrders,
		q.ListExecutors,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := commands.NewExpirePaymentSessionsCommandHandler(c.commandUoWFactory(), c.dispatcher)
	return jobs.NewJobManager(handler, c.config.PaymentSweepSpec, c.clock, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
