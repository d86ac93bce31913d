package cmd

import (
	"context"
	"fmt"
	"io"

	"dbcompare/core/compare"
	"dbcompare/core/config"
	"dbcompare/core/database"
	"dbcompare/core/filter"
	"dbcompare/core/fingerprint"
	"dbcompare/core/logger"
	"dbcompare/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// session holds everything a command needs to compare two databases.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	oldDB  *gorm.DB
	newDB  *gorm.DB
	engine *compare.Engine
}

// openSession loads and validates the configuration, connects both databases
// and builds the engine. Console receives the progress lines of runs.
func openSession(ctx context.Context, configDir string, console io.Writer, uniqueNames bool) (*session, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	s := &session{cfg: cfg, logger: l}
	if err := s.connect(); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.buildEngine(ctx, console, uniqueNames || cfg.Compare.UniqueNames); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *session) connect() error {
	oldDB, err := database.Connect(s.cfg.Database.Old)
	if err != nil {
		return fmt.Errorf("failed to connect to old database: %w", err)
	}
	s.oldDB = oldDB

	newDB, err := database.Connect(s.cfg.Database.New)
	if err != nil {
		return fmt.Errorf("failed to connect to new database: %w", err)
	}
	s.newDB = newDB

	s.logger.Info("Connected to databases",
		zap.String("old_driver", s.cfg.Database.Old.Driver),
		zap.String("new_driver", s.cfg.Database.New.Driver))
	return nil
}

func (s *session) buildEngine(ctx context.Context, console io.Writer, uniqueNames bool) error {
	oldDialect, err := database.DialectFor(s.oldDB)
	if err != nil {
		return err
	}
	newDialect, err := database.DialectFor(s.newDB)
	if err != nil {
		return err
	}
	fp, err := fingerprint.NewFingerprinter(s.cfg.Compare.HashMode, oldDialect, newDialect)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	exclusions, err := filter.CompileAll(s.cfg.Compare.Exclude)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	backend, artifactPrefix, err := s.backend(ctx)
	if err != nil {
		return err
	}

	s.engine, err = compare.NewEngine(compare.Options{
		Old:            s.oldDB,
		New:            s.newDB,
		Exclusions:     exclusions,
		Store:          fingerprint.NewStore(backend, s.logger),
		Fingerprinter:  fp,
		Logger:         s.logger,
		Console:        console,
		Workers:        s.cfg.Compare.Workers,
		ArtifactPrefix: artifactPrefix,
		UniqueNames:    uniqueNames,
	})
	return err
}

// backend returns the artifact backend and the name prefix the engine applies.
// The s3 backend applies the prefix to object keys itself.
func (s *session) backend(ctx context.Context) (fingerprint.Backend, string, error) {
	if s.cfg.Compare.Backend == compare.BackendS3 {
		client, err := storage.NewClient(s.cfg.Storage)
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to storage: %w", err)
		}
		b, err := fingerprint.NewObjectBackend(ctx, client, s.cfg.Storage.Bucket, s.cfg.Storage.Region, s.cfg.Compare.Prefix)
		if err != nil {
			return nil, "", fmt.Errorf("failed to prepare artifact bucket: %w", err)
		}
		return b, "", nil
	}

	b, err := fingerprint.NewDiskBackend(s.cfg.Compare.TempDir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to prepare artifact directory: %w", err)
	}
	return b, s.cfg.Compare.Prefix, nil
}

// Close releases the connections and flushes the log sink.
func (s *session) Close() {
	if s.oldDB != nil {
		_ = database.Close(s.oldDB)
	}
	if s.newDB != nil {
		_ = database.Close(s.newDB)
	}
	_ = s.logger.Sync()
}
