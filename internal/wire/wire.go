// Package wire provides dependency injection for the command center.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/example/commandcenter/internal/adapters/agentfeed"
	"github.com/example/commandcenter/internal/adapters/catalog"
	cliadapter "github.com/example/commandcenter/internal/adapters/cli"
	"github.com/example/commandcenter/internal/adapters/cloudflare"
	"github.com/example/commandcenter/internal/adapters/elevenlabs"
	"github.com/example/commandcenter/internal/adapters/filesystem"
	"github.com/example/commandcenter/internal/adapters/jsonfile"
	"github.com/example/commandcenter/internal/adapters/memory"
	"github.com/example/commandcenter/internal/adapters/openclaw"
	"github.com/example/commandcenter/internal/adapters/postgres"
	"github.com/example/commandcenter/internal/adapters/registry"
	"github.com/example/commandcenter/internal/adapters/sqlite"
	"github.com/example/commandcenter/internal/app"
	"github.com/example/commandcenter/internal/config"
	"github.com/example/commandcenter/internal/db"
	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// Services holds every primary service plus the resources they share.
type Services struct {
	Config *config.Config
	Logger *zap.Logger

	Kanban          *app.KanbanServiceImpl
	Activity        *app.ActivityServiceImpl
	Directives      *app.DirectiveServiceImpl
	FeatureRequests *app.FeatureRequestServiceImpl
	RecoveredTasks  *app.RecoveredTaskServiceImpl
	Ops             *app.OpsServiceImpl
	LessonCraft     *app.LessonCraftServiceImpl
	Voice           *app.VoiceServiceImpl
	Workspace       *app.WorkspaceServiceImpl

	hub     *app.BoardHub
	closers []func()
}

// Close releases database handles and disconnects board subscribers.
func (s *Services) Close() {
	s.hub.Close()
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	_ = s.Logger.Sync()
}

// DisconnectSubscribers ends every open board stream. Safe to call before Close.
func (s *Services) DisconnectSubscribers() {
	s.hub.Close()
}

var (
	configFile string
	services   *Services
	initErr    error
	once       sync.Once
)

// SetConfigFile selects the config file used on first initialization.
// It has no effect once services exist.
func SetConfigFile(path string) {
	configFile = path
}

// Get returns the singleton services, building them on first use.
func Get() (*Services, error) {
	once.Do(initServices)
	return services, initErr
}

// Close releases the singleton services if they were built.
func Close() {
	if services != nil {
		services.Close()
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cfg, err := config.Load(configFile)
	if err != nil {
		initErr = err
		return
	}
	services, initErr = Build(context.Background(), cfg)
}

// Build wires every service for cfg. Callers own the result and must Close it.
func Build(ctx context.Context, cfg *config.Config) (*Services, error) {
	logger, err := NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	s := &Services{Config: cfg, Logger: logger, hub: app.NewBoardHub()}

	// The activity log always lives in SQLite; the memory driver keeps it in memory too.
	activityPath := cfg.Storage.SQLitePath
	if cfg.Storage.Driver == config.DriverMemory {
		activityPath = db.MemoryPath
	}
	database, err := db.Open(activityPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	s.closers = append(s.closers, func() { _ = database.Close() })

	kanbanStore, err := newKanbanStore(ctx, cfg, database, logger, s)
	if err != nil {
		s.Close()
		return nil, err
	}

	notes, err := filesystem.NewNoteSource(cfg.Notes.Dir, cfg.Notes.Timeout)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to open notes: %w", err)
	}

	roster := agentfeed.NewRosterSource(cfg.Agents.RosterFile)
	var agentFeed secondary.AgentStatusSource = roster
	if cfg.Agents.StatusURL != "" {
		agentFeed = agentfeed.NewHTTPSource(cfg.Agents.StatusURL, cfg.Agents.Timeout, nil)
	}

	activityRepo := sqlite.NewActivityRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(activityRepo)

	s.Kanban = app.NewKanbanService(kanbanStore, notes, agentFeed, logWriter, s.hub, logger.Named("kanban"))
	s.Activity = app.NewActivityService(activityRepo)

	s.Directives = app.NewDirectiveService(
		jsonfile.NewCollectionStore[models.Directive](cfg.DataFile("chairman-directives.json"), jsonfile.KeyDirectives),
		logger.Named("directives"))
	s.FeatureRequests = app.NewFeatureRequestService(
		jsonfile.NewCollectionStore[models.FeatureRequest](cfg.DataFile("feature-requests.json"), jsonfile.KeyFeatureRequests),
		s.Kanban,
		logger.Named("features"))
	s.RecoveredTasks = app.NewRecoveredTaskService(
		jsonfile.NewCollectionStore[models.RecoveredTask](cfg.DataFile("recovered-tasks.json"), jsonfile.KeyRecoveredTasks),
		logger.Named("recovered"))

	s.Ops = app.NewOpsService(openclaw.NewRunner(cfg.CLI.Binary, cfg.CLI.Timeout), logger.Named("ops"))

	r2 := cloudflare.NewR2Client(cloudflare.Credentials{
		AccountID: cfg.R2.AccountID,
		Email:     cfg.R2.Email,
		APIKey:    cfg.R2.APIKey,
	}, cfg.R2.Bucket, cfg.R2.BaseURL, &http.Client{})
	s.LessonCraft = app.NewLessonCraftService(
		catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.Timeout, nil),
		r2,
		logger.Named("lessoncraft"))

	s.Voice = app.NewVoiceService(elevenlabs.NewClient(cfg.ElevenLabs.APIKey, cfg.ElevenLabs.ModelID, cfg.ElevenLabs.BaseURL, nil))
	s.Workspace = app.NewWorkspaceService(notes, roster, registry.New(cfg.DataFile("projects.yaml")), logger.Named("workspace"))

	logger.Debug("services initialized",
		zap.String("storage", cfg.Storage.Driver),
		zap.String("notes", notes.Dir()))
	return s, nil
}

func newKanbanStore(ctx context.Context, cfg *config.Config, database *sql.DB, logger *zap.Logger, s *Services) (secondary.KanbanStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		return sqlite.NewKanbanStore(database), nil
	case config.DriverPostgres:
		store, err := postgres.Connect(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		s.closers = append(s.closers, store.Close)
		return store, nil
	case config.DriverMemory:
		return memory.NewKanbanStore(), nil
	default:
		return jsonfile.NewKanbanStore(cfg.KanbanFile(), logger.Named("store")), nil
	}
}

// BoardAdapter returns a new BoardAdapter writing to stdout.
func BoardAdapter(s *Services) *cliadapter.BoardAdapter {
	return BoardAdapterWithOutput(s, os.Stdout)
}

// BoardAdapterWithOutput returns a new BoardAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func BoardAdapterWithOutput(s *Services, out io.Writer) *cliadapter.BoardAdapter {
	return cliadapter.NewBoardAdapter(s.Kanban, out)
}

// OpsAdapter returns a new OpsAdapter writing to stdout.
func OpsAdapter(s *Services) *cliadapter.OpsAdapter {
	return cliadapter.NewOpsAdapter(s.Ops, s.Activity, os.Stdout)
}
