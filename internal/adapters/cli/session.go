package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/gridstock/internal/adapters/grid"
	"github.com/andrescamacho/gridstock/internal/adapters/logging"
	"github.com/andrescamacho/gridstock/internal/adapters/persistence"
	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/application/cycle"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/domain/targets"
	"github.com/andrescamacho/gridstock/internal/infrastructure/config"
	"github.com/andrescamacho/gridstock/internal/infrastructure/database"
)

// session is what every command needs from the environment: configuration,
// a logger, the grid and, when asked for, the snapshot store.
type session struct {
	cfg       *config.Config
	logger    *logging.Logger
	world     *grid.World
	targets   *targetsFile
	db        *gorm.DB
	snapshots *persistence.GormSnapshotRepository
}

type sessionNeeds struct {
	grid     bool
	database bool
}

func openSession(component string, needs sessionNeeds) (*session, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging, component)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, logger: logger, targets: newTargetsFile(cfg.Engine.TargetsFile)}

	if needs.grid {
		if err := s.loadGrid(); err != nil {
			s.Close()
			return nil, err
		}
	}

	if needs.database {
		db, err := database.OpenAndMigrate(&cfg.Database)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = db
		s.snapshots = persistence.NewGormSnapshotRepository(db)
	}
	return s, nil
}

// loadGrid reads the grid file into the session.
func (s *session) loadGrid() error {
	w, err := grid.LoadFile(s.cfg.Host.GridFile)
	if err != nil {
		return err
	}
	s.world = w
	return nil
}

// context attaches the session logger to ctx.
func (s *session) context(ctx context.Context) context.Context {
	return common.WithLogger(ctx, s.logger)
}

// engine builds a cycle engine over the loaded grid with the current targets.
func (s *session) engine(options ...cycle.EngineOption) (*cycle.Engine, error) {
	if s.world == nil {
		return nil, fmt.Errorf("no grid loaded")
	}
	e, err := cycle.NewEngine(s.world, s.world, engineOptions(s.cfg.Engine), options...)
	if err != nil {
		return nil, err
	}
	cfg, err := s.targets.Load()
	if err != nil {
		return nil, err
	}
	s.reportTargetErrors(cfg)
	e.SetTargets(cfg)
	return e, nil
}

func (s *session) reportTargetErrors(cfg *targets.Config) {
	for _, lineErr := range cfg.Errors {
		s.logger.Log(common.LevelWarn, "Ignoring target line", map[string]interface{}{
			"line":  lineErr.Line,
			"text":  lineErr.Text,
			"error": lineErr.Message,
		})
	}
}

// saveGrid writes the grid back to its file.
func (s *session) saveGrid() error {
	if s.world == nil {
		return nil
	}
	return s.world.SaveFile(s.cfg.Host.GridFile)
}

// Close releases the database and the log file.
func (s *session) Close() {
	if s.db != nil {
		_ = database.Close(s.db)
	}
	if s.logger != nil {
		_ = s.logger.Close()
	}
}

func engineOptions(cfg config.EngineConfig) cycle.Options {
	return cycle.Options{
		RediscoverEvery:          cfg.RediscoverEvery,
		RefineryEvery:            cfg.RefineryEvery,
		AssemblerEvery:           cfg.AssemblerEvery,
		ProductionEvery:          cfg.ProductionEvery,
		MaxOrePerRefinery:        inventory.Items(cfg.MaxOrePerRefinery),
		ClearIdleAssemblerInputs: cfg.ClearIdleAssemblerInputs,
		RefineryTag:              cfg.RefineryTag,
	}
}

// targetsFile reads the target configuration and re-parses it only when the
// file changed. A missing file means no targets.
type targetsFile struct {
	path    string
	modTime time.Time
	size    int64
	cached  *targets.Config
}

func newTargetsFile(path string) *targetsFile {
	return &targetsFile{path: path}
}

// Load returns the parsed configuration.
func (t *targetsFile) Load() (*targets.Config, error) {
	cfg, _, err := t.Reload()
	return cfg, err
}

// Reload returns the parsed configuration and whether it changed since the
// previous call.
func (t *targetsFile) Reload() (*targets.Config, bool, error) {
	info, err := os.Stat(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		changed := t.cached == nil || !t.modTime.IsZero()
		t.cached, t.modTime, t.size = targets.Parse(""), time.Time{}, 0
		return t.cached, changed, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to stat targets file: %w", err)
	}
	if t.cached != nil && info.ModTime().Equal(t.modTime) && info.Size() == t.size {
		return t.cached, false, nil
	}

	raw, err := os.ReadFile(t.path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read targets file: %w", err)
	}
	t.cached, t.modTime, t.size = targets.Parse(string(raw)), info.ModTime(), info.Size()
	return t.cached, true, nil
}
