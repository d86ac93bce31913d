package compare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"dbcompare/core/database"
	"dbcompare/core/filter"
	"dbcompare/core/fingerprint"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Options wires an Engine.
type Options struct {
	// Old and New are the two databases; tables and columns are read from New.
	Old *gorm.DB
	New *gorm.DB

	// Exclusions removes tables from the comparison.
	Exclusions filter.Set

	// Store keeps the fingerprint artifacts.
	Store *fingerprint.Store

	// Fingerprinter hashes the rows of both sides.
	Fingerprinter fingerprint.Fingerprinter

	// Logger is the append-only log sink of the run.
	Logger *zap.Logger

	// Console receives human readable progress. Nil discards it.
	Console io.Writer

	// Workers is the number of tables compared concurrently (minimum 1).
	Workers int

	// ArtifactPrefix is prepended to every artifact name.
	ArtifactPrefix string

	// UniqueNames adds the run id to artifact names.
	UniqueNames bool
}

// Engine drives a comparison: enumerate, exclude, compare each table, report.
type Engine struct {
	old, new    *gorm.DB
	exclusions  filter.Set
	store       *fingerprint.Store
	fp          fingerprint.Fingerprinter
	logger      *zap.Logger
	console     io.Writer
	workers     int
	prefix      string
	uniqueNames bool

	mu sync.Mutex // serializes console output
}

// NewEngine validates opts and builds an Engine.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Old == nil || opts.New == nil {
		return nil, errors.New("both database connections are required")
	}
	if opts.Store == nil {
		return nil, errors.New("fingerprint store is required")
	}
	if opts.Fingerprinter == nil {
		return nil, errors.New("fingerprinter is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	console := opts.Console
	if console == nil {
		console = io.Discard
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	return &Engine{
		old:         opts.Old,
		new:         opts.New,
		exclusions:  opts.Exclusions,
		store:       opts.Store,
		fp:          opts.Fingerprinter,
		logger:      logger,
		console:     console,
		workers:     workers,
		prefix:      opts.ArtifactPrefix,
		uniqueNames: opts.UniqueNames,
	}, nil
}

// Tables enumerates the new side and reports which tables are excluded.
func (e *Engine) Tables(ctx context.Context) ([]TableStatus, error) {
	tables, err := database.ListUserTables(ctx, e.new)
	if err != nil {
		return nil, err
	}

	statuses := make([]TableStatus, len(tables))
	for i, t := range tables {
		statuses[i] = TableStatus{Table: t}
		if p, ok := e.exclusions.Match(t.FullName()); ok {
			statuses[i].Excluded = true
			statuses[i].ExcludedBy = p.String()
		}
	}
	return statuses, nil
}

// Run compares every non-excluded table. Per-table failures are recorded in the
// summary and never abort the run; only enumeration failures and cancellation
// are returned as errors.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
	log := e.logger.With(zap.String("run_id", summary.RunID))
	prefix := e.artifactPrefix(summary.RunID)

	log.Info("=== run started ===",
		zap.Time("started", summary.Started),
		zap.String("hash_mode", e.fp.Name()),
		zap.Strings("exclude", e.exclusions.Strings()),
		zap.Int("workers", e.workers),
	)
	e.printf("=== database comparison (run %s) ===\n", summary.RunID)

	statuses, err := e.Tables(ctx)
	if err != nil {
		log.Error("=== run aborted ===", zap.Error(err))
		return nil, fmt.Errorf("failed to enumerate tables: %w", err)
	}

	total := len(statuses)
	summary.Tables = total
	summary.Results = make([]Result, total)

	var g errgroup.Group
	g.SetLimit(e.workers)

	index := 0
	for i, st := range statuses {
		name := st.Table.FullName()

		if st.Excluded {
			e.printf("[%d/%d] %s excluded\n", index+1, total, name)
			log.Info("table excluded", zap.String("table", name), zap.String("pattern", st.ExcludedBy))
			summary.Results[i] = Result{Table: st.Table, Excluded: true, ExcludedBy: st.ExcludedBy}
			continue
		}

		index++
		pos, n := i, index
		table := st.Table
		g.Go(func() error {
			e.printf("[%d/%d] %s comparing...\n", n, total, name)
			log.Info("table comparison started", zap.Int("index", n), zap.String("table", name))

			res := e.compareTable(ctx, table, prefix)
			summary.Results[pos] = res

			if res.Failed() {
				e.printf(" ! %s error: %v\n", name, res.Err)
				log.Error("table comparison failed",
					zap.String("table", name),
					zap.String("kind", string(res.Kind)),
					zap.Error(res.Err),
				)
				return nil
			}

			e.printf(" -> %s mismatches: %s\n", name, humanize.Comma(res.Mismatches))
			log.Info("table comparison finished",
				zap.String("table", name),
				zap.Int64("mismatches", res.Mismatches),
				zap.Duration("duration", res.Duration),
			)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range summary.Results {
		summary.add(r)
	}
	summary.Finished = time.Now()

	e.printf("total mismatches: %s (%d compared, %d excluded, %d failed)\n",
		humanize.Comma(summary.TotalMismatches), summary.Compared, summary.Excluded, summary.Failed)
	log.Info("=== run finished ===",
		zap.Time("finished", summary.Finished),
		zap.Int64("total_mismatches", summary.TotalMismatches),
		zap.Int("compared", summary.Compared),
		zap.Int("excluded", summary.Excluded),
		zap.Int("failed", summary.Failed),
	)

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// CompareTable compares a single table regardless of exclusions.
func (e *Engine) CompareTable(ctx context.Context, table database.Table) Result {
	res := e.compareTable(ctx, table, e.artifactPrefix(uuid.NewString()))
	if res.Failed() {
		e.logger.Error("table comparison failed", zap.String("table", table.FullName()), zap.Error(res.Err))
	} else {
		e.logger.Info("table comparison finished", zap.String("table", table.FullName()), zap.Int64("mismatches", res.Mismatches))
	}
	return res
}

func (e *Engine) compareTable(ctx context.Context, table database.Table, prefix string) Result {
	start := time.Now()
	mismatches, err := e.countTable(ctx, table, prefix)

	res := Result{Table: table, Duration: time.Since(start)}
	if err != nil {
		res.Err = err
		res.Error = err.Error()
		res.Kind = Classify(err)
		return res
	}
	res.Mismatches = mismatches
	return res
}

func (e *Engine) countTable(ctx context.Context, table database.Table, prefix string) (int64, error) {
	columns, err := database.ListColumns(ctx, e.new, table)
	if err != nil {
		return 0, err
	}
	if len(columns) == 0 {
		return 0, nil
	}

	newName := fingerprint.ArtifactName(prefix, table, string(SideNew))
	oldName := fingerprint.ArtifactName(prefix, table, string(SideOld))
	// Disposal is by name so artifacts of a failed capture are reclaimed too.
	defer e.store.DisposeName(context.WithoutCancel(ctx), oldName)
	defer e.store.DisposeName(context.WithoutCancel(ctx), newName)

	newHandle, err := e.store.Capture(ctx, newName, e.fp.Fingerprints(ctx, e.new, table, columns))
	if err != nil {
		return 0, fmt.Errorf("%s side: %w", SideNew, err)
	}
	oldHandle, err := e.store.Capture(ctx, oldName, e.fp.Fingerprints(ctx, e.old, table, columns))
	if err != nil {
		return 0, fmt.Errorf("%s side: %w", SideOld, err)
	}

	return CountMissing(ctx, e.store, oldHandle, newHandle)
}

func (e *Engine) artifactPrefix(runID string) string {
	if e.uniqueNames {
		return e.prefix + runID + "-"
	}
	return e.prefix
}

func (e *Engine) printf(format string, args ...any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintf(e.console, format, args...)
}
