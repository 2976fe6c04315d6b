// Package wire provides dependency injection for the MicroDecide
// application. It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/example/microdecide/internal/adapters/analytics"
	cliadapter "github.com/example/microdecide/internal/adapters/cli"
	"github.com/example/microdecide/internal/adapters/filesystem"
	"github.com/example/microdecide/internal/adapters/memory"
	"github.com/example/microdecide/internal/adapters/notify"
	"github.com/example/microdecide/internal/adapters/sqlite"
	"github.com/example/microdecide/internal/adapters/stub"
	"github.com/example/microdecide/internal/app"
	"github.com/example/microdecide/internal/config"
	"github.com/example/microdecide/internal/core/provider"
	"github.com/example/microdecide/internal/db"
	"github.com/example/microdecide/internal/logger"
	"github.com/example/microdecide/internal/ports/primary"
	"github.com/example/microdecide/internal/ports/secondary"
)

// Container holds one fully wired application.
type Container struct {
	Config   *config.Config
	Log      *logger.Logger
	Registry *provider.Registry
	Store    secondary.KeyValueStore
	Events   secondary.EventLog // nil unless the sqlite backend is used
	Tracker  *app.Tracker

	Queue         primary.QueueService
	Counter       primary.CounterService
	Entitlements  primary.EntitlementService
	Settings      primary.SettingsService
	Decisions     primary.DecisionService
	Notifications primary.NotificationService
	Accounts      primary.AccountService

	conn *sql.DB
}

// Options customizes Build.
type Options struct {
	Log      *logger.Logger              // defaults to a logger in cfg.LogMode
	Now      func() time.Time            // defaults to time.Now
	Notifier secondary.Notifier          // defaults to a log-only notifier
	Source   secondary.EntitlementSource // defaults to the stub source
}

// Build wires every service for cfg. The storage backend is selected
// explicitly from cfg.Storage.Backend.
func Build(cfg *config.Config, opts Options) (*Container, error) {
	log := opts.Log
	if log == nil {
		var err error
		log, err = logger.New(cfg.LogMode)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	c := &Container{
		Config:   cfg,
		Log:      log,
		Registry: provider.NewRegistry(provider.DefaultProviders(), opts.Now),
	}

	switch strings.ToLower(cfg.Storage.Backend) {
	case config.BackendSQLite:
		conn, err := db.Open(cfg.Storage.DBPath)
		if err != nil {
			return nil, err
		}
		c.conn = conn
		c.Store = sqlite.NewKVStore(conn)
		c.Events = sqlite.NewEventLog(conn)
	case config.BackendFile:
		store, err := filesystem.NewKVStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		c.Store = store
	case config.BackendMemory:
		c.Store = memory.NewKVStore()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	var sink secondary.AnalyticsSink = analytics.NewLogSink(log)
	if c.Events != nil {
		sink = analytics.NewMulti(sink, c.Events)
	}
	c.Tracker = app.NewTracker(sink, log)

	source := opts.Source
	if source == nil {
		source = stub.NewEntitlementSource(cfg.EntitlementLimits(), 0)
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewLogNotifier(cfg.Notifications.Enabled, log)
	}

	queue := app.NewQueueService(c.Store, c.Tracker, log, opts.Now)
	counter := app.NewCounterService(c.Store, log, opts.Now)
	entitlements := app.NewEntitlementService(source, cfg.EntitlementLimits(), cfg.EntitlementTimeoutDuration(), log)
	settings := app.NewSettingsService(c.Store, c.Registry, log)

	c.Queue = queue
	c.Counter = counter
	c.Entitlements = entitlements
	c.Settings = settings
	c.Decisions = app.NewDecisionService(c.Registry, entitlements, counter, settings, queue, c.Tracker, log, opts.Now)
	c.Notifications = app.NewNotificationService(notifier, cfg.NudgeAfterDuration(), log)
	c.Accounts = app.NewAccountService(c.Tracker)
	return c, nil
}

// WithNotifier returns a NotificationService over notifier using the
// container's configuration.
func (c *Container) WithNotifier(notifier secondary.Notifier) primary.NotificationService {
	return app.NewNotificationService(notifier, c.Config.NudgeAfterDuration(), c.Log)
}

// DecisionAdapter returns a CLI adapter over the container's services.
func (c *Container) DecisionAdapter(out io.Writer) *cliadapter.DecisionAdapter {
	return cliadapter.NewDecisionAdapter(cliadapter.Services{
		Decisions:     c.Decisions,
		Queue:         c.Queue,
		Counter:       c.Counter,
		Settings:      c.Settings,
		Notifications: c.Notifications,
	}, out)
}

// AccountAdapter returns a CLI adapter for sign-in.
func (c *Container) AccountAdapter(out io.Writer) *cliadapter.AccountAdapter {
	return cliadapter.NewAccountAdapter(c.Accounts, out)
}

// Close releases the database and flushes the logger.
func (c *Container) Close() error {
	c.Log.Sync()
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

var (
	container *Container
	once      sync.Once
)

// Default returns the singleton Container built from the loaded config.
func Default() *Container {
	once.Do(initContainer)
	return container
}

// initContainer loads the configuration and wires the application.
// This is called once via sync.Once.
func initContainer() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	container, err = Build(cfg, Options{})
	if err != nil {
		log.Fatalf("failed to initialize services: %v", err)
	}
}

// DecisionAdapter returns a new DecisionAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func DecisionAdapter() *cliadapter.DecisionAdapter {
	return Default().DecisionAdapter(os.Stdout)
}

// AccountAdapter returns a new AccountAdapter writing to stdout.
func AccountAdapter() *cliadapter.AccountAdapter {
	return Default().AccountAdapter(os.Stdout)
}
