package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	entitlementinadapter "studyquest/internal/modules/entitlement/adapter/in"
	entitlementoutadapter "studyquest/internal/modules/entitlement/adapter/out"
	entitlementout "studyquest/internal/modules/entitlement/port/out"
	entitlementservice "studyquest/internal/modules/entitlement/service"
	entitlementusecase "studyquest/internal/modules/entitlement/usecase"
	flowinadapter "studyquest/internal/modules/flow/adapter/in"
	flowdomain "studyquest/internal/modules/flow/domain"
	flowservice "studyquest/internal/modules/flow/service"
	flowusecase "studyquest/internal/modules/flow/usecase"
	identityinadapter "studyquest/internal/modules/identity/adapter/in"
	identityoutadapter "studyquest/internal/modules/identity/adapter/out"
	identityservice "studyquest/internal/modules/identity/service"
	identityusecase "studyquest/internal/modules/identity/usecase"
	progressinadapter "studyquest/internal/modules/progress/adapter/in"
	progressoutadapter "studyquest/internal/modules/progress/adapter/out"
	progressdomain "studyquest/internal/modules/progress/domain"
	progressout "studyquest/internal/modules/progress/port/out"
	progressservice "studyquest/internal/modules/progress/service"
	progressusecase "studyquest/internal/modules/progress/usecase"
	"studyquest/internal/platform/clock"
	"studyquest/internal/platform/config"
	"studyquest/internal/platform/id"
	"studyquest/internal/platform/logger"
	"studyquest/internal/platform/notify"
	"studyquest/internal/platform/sqlitedb"
	uiapp "studyquest/internal/ui/app"
)

const noticeBuffer = 32

type App struct {
	ProgressCLI    progressinadapter.CLIHandler
	EntitlementCLI entitlementinadapter.CLIHandler
	IdentityCLI    identityinadapter.CLIHandler
	FlowTUI        flowinadapter.TUIHandler

	Config  config.Config
	Log     *logger.Logger
	Notices *notify.Channel

	store   *progressservice.Store
	db      *sql.DB
	closers []func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	log, err := logger.New(cfg.Log.Mode, cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	app := &App{Config: cfg, Log: log}
	if err := app.wire(ctx); err != nil {
		app.shutdown()
		return nil, err
	}
	return app, nil
}

func (a *App) wire(ctx context.Context) error {
	cfg := a.Config
	clk := clock.SystemClock{}
	ids := id.UUID{}

	db, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	a.db = db

	snapshots, err := a.snapshotStore(ctx, db)
	if err != nil {
		return err
	}

	a.Notices = notify.NewChannel(noticeBuffer)
	notifier := notify.NewFanout(notify.NewLogNotifier(a.Log), a.Notices)

	session := identityservice.NewSessionContext()

	a.store = progressservice.NewStore(progressservice.Deps{
		Clock:     clk,
		IDs:       ids,
		Snapshots: snapshots,
		Identity:  session,
		Debounce:  cfg.Persistence.FlushDebounce,
		Log:       a.Log.With("module", "progress"),
	}, progressdomain.NewState(true))
	progressUC := progressusecase.NewInteractor(
		a.store,
		progressoutadapter.NewVaultNoteExporter(),
		progressoutadapter.NewFileMetadataReader(),
	)

	provider, recorder, err := a.entitlementProvider(db)
	if err != nil {
		return err
	}
	gate := entitlementservice.NewGate(entitlementservice.GateDeps{
		Provider:   provider,
		Recorder:   recorder,
		Identity:   session,
		GuestQuota: cfg.Entitlement.GuestQuota,
		Log:        a.Log.With("module", "entitlement"),
	})
	entitlementUC := entitlementusecase.NewInteractor(gate, session)

	accounts, err := identityoutadapter.NewSQLiteAccountStore(db)
	if err != nil {
		return fmt.Errorf("new account store: %w", err)
	}
	identityUC := identityusecase.NewInteractor(
		identityservice.NewAuthService(clk, ids, accounts, identityoutadapter.NewBcryptHasher(0)),
		session,
		identityoutadapter.NewFileIdentityStore(cfg.IdentityPath()),
		progressUC,
		notifier,
		a.Log.With("module", "identity"),
	)

	flowUC := flowusecase.NewInteractor(flowservice.NewNavigator(
		flowdomain.ScreenOnboarding,
		progressUC,
		entitlementUC,
		a.Log.With("module", "flow"),
	))

	a.ProgressCLI = progressinadapter.NewCLIHandler(progressUC)
	a.EntitlementCLI = entitlementinadapter.NewCLIHandler(entitlementUC)
	a.IdentityCLI = identityinadapter.NewCLIHandler(identityUC)
	a.FlowTUI = flowinadapter.NewTUIHandler(flowUC)

	if _, err := a.IdentityCLI.Restore(ctx); err != nil {
		// A stale identity file must not keep the app from starting.
		a.Log.Warn("restore identity failed", "error", err)
	}
	return nil
}

func (a *App) snapshotStore(ctx context.Context, db *sql.DB) (progressout.SnapshotStore, error) {
	p := a.Config.Persistence
	switch p.Backend {
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, p.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		store, err := progressoutadapter.NewPostgresSnapshotStore(ctx, pool)
		if err != nil {
			return nil, fmt.Errorf("new postgres snapshot store: %w", err)
		}
		return store, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: p.RedisAddr})
		a.closers = append(a.closers, func() { _ = client.Close() })
		return progressoutadapter.NewRedisSnapshotStore(client), nil
	default:
		store, err := progressoutadapter.NewSQLiteSnapshotStore(db)
		if err != nil {
			return nil, fmt.Errorf("new sqlite snapshot store: %w", err)
		}
		return store, nil
	}
}

// entitlementProvider prefers an external plugin binary. Without one the
// local ledger serves as both provider and purchase recorder.
func (a *App) entitlementProvider(db *sql.DB) (entitlementout.Provider, entitlementout.PurchaseRecorder, error) {
	if binary := a.Config.Entitlement.Plugin; binary != "" {
		plugin := entitlementoutadapter.NewPluginProvider(binary)
		a.closers = append(a.closers, plugin.Close)
		return plugin, nil, nil
	}
	ledger, err := entitlementoutadapter.NewSQLiteLedger(db)
	if err != nil {
		return nil, nil, fmt.Errorf("new entitlement ledger: %w", err)
	}
	return ledger, ledger, nil
}

// Close flushes pending progress and releases every backend.
func (a *App) Close(ctx context.Context) error {
	var err error
	if a.store != nil {
		if cerr := a.store.Close(ctx); cerr != nil {
			err = fmt.Errorf("flush progress: %w", cerr)
		}
	}
	a.shutdown()
	return err
}

func (a *App) shutdown() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

func RunTUI(app *App) error {
	focus := time.Duration(app.Config.Session.FocusSeconds) * time.Second
	model := uiapp.NewModel(app.FlowTUI, app.ProgressCLI, app.EntitlementCLI, app.Notices.C(), focus)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
