package fingerprint

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"dbcompare/core/database"

	"go.uber.org/zap"
)

// ErrStorage marks failures of the backing storage during capture or replay.
var ErrStorage = errors.New("fingerprint storage error")

// Backend persists fingerprint artifacts outside process memory.
type Backend interface {
	// Create opens name for writing, replacing any previous content.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
	// Open opens name for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Remove deletes name.
	Remove(ctx context.Context, name string) error
	// Location describes where name lives, for logs.
	Location(name string) string
}

// Handle refers to one captured artifact.
type Handle struct {
	Name  string
	Count int64
}

// Store writes fingerprint streams to a Backend one per line and replays them.
// Only the side loaded through Set is held in memory.
type Store struct {
	backend Backend
	logger  *zap.Logger
}

// NewStore creates a Store over backend. A nil logger disables disposal warnings.
func NewStore(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger}
}

// ArtifactName returns the deterministic artifact name of one (table, side).
// Repeated runs with the same prefix overwrite the same artifact. The readable
// stem is lossy ("a.b_c" and "a_b.c" share it), so a digest of the exact
// schema and table keeps names distinct for distinct tables.
func ArtifactName(prefix string, table database.Table, side string) string {
	return prefix + side + "_hash_" + sanitize(table.Schema) + "_" + sanitize(table.Name) + "_" + tableDigest(table) + ".txt"
}

// tableDigest is 16 hex characters of the SHA-256 of schema NUL name. NUL
// cannot appear in identifiers, so the encoded pair is unambiguous.
func tableDigest(table database.Table) string {
	sum := sha256.Sum256([]byte(table.Schema + "\x00" + table.Name))
	return hex.EncodeToString(sum[:8])
}

var nameReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_", "\x00", "_")

func sanitize(s string) string {
	return nameReplacer.Replace(s)
}

// Capture drains seq into the artifact name. The first error of seq aborts the
// capture and is returned unchanged; storage failures wrap ErrStorage.
func (s *Store) Capture(ctx context.Context, name string, seq iter.Seq2[Fingerprint, error]) (*Handle, error) {
	w, err := s.backend.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrStorage, name, err)
	}

	h := &Handle{Name: name}
	bw := bufio.NewWriterSize(w, 64*1024)
	for fp, err := range seq {
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		if _, err := bw.WriteString(string(fp)); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("%w: write %s: %v", ErrStorage, name, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("%w: write %s: %v", ErrStorage, name, err)
		}
		h.Count++
	}

	if err := bw.Flush(); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("%w: flush %s: %v", ErrStorage, name, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: close %s: %v", ErrStorage, name, err)
	}
	return h, nil
}

// Lines replays the artifact line by line without loading it.
func (s *Store) Lines(ctx context.Context, h *Handle) iter.Seq2[Fingerprint, error] {
	return func(yield func(Fingerprint, error) bool) {
		r, err := s.backend.Open(ctx, h.Name)
		if err != nil {
			yield("", fmt.Errorf("%w: open %s: %v", ErrStorage, h.Name, err))
			return
		}
		defer r.Close()

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if !yield(Fingerprint(scanner.Text()), nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", fmt.Errorf("%w: read %s: %v", ErrStorage, h.Name, err))
		}
	}
}

// Set loads the artifact into a membership set, collapsing duplicates.
func (s *Store) Set(ctx context.Context, h *Handle) (map[Fingerprint]struct{}, error) {
	set := make(map[Fingerprint]struct{}, h.Count)
	for fp, err := range s.Lines(ctx, h) {
		if err != nil {
			return nil, err
		}
		set[fp] = struct{}{}
	}
	return set, nil
}

// Dispose removes the artifacts behind handles. Failures are logged and ignored:
// a stale artifact is overwritten by the next capture of the same table.
func (s *Store) Dispose(ctx context.Context, handles ...*Handle) {
	for _, h := range handles {
		if h == nil {
			continue
		}
		if err := s.backend.Remove(ctx, h.Name); err != nil {
			s.logger.Warn("failed to remove fingerprint artifact",
				zap.String("artifact", s.backend.Location(h.Name)),
				zap.Error(err),
			)
		}
	}
}

// DisposeName removes an artifact by name, used when a capture failed before a handle existed.
func (s *Store) DisposeName(ctx context.Context, name string) {
	s.Dispose(ctx, &Handle{Name: name})
}
