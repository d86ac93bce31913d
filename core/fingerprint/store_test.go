package fingerprint

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dbcompare/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func seqOf(fps ...Fingerprint) iter.Seq2[Fingerprint, error] {
	return func(yield func(Fingerprint, error) bool) {
		for _, fp := range fps {
			if !yield(fp, nil) {
				return
			}
		}
	}
}

func newDiskStore(t *testing.T) (*Store, *DiskBackend) {
	backend, err := NewDiskBackend(t.TempDir())
	require.NoError(t, err)
	return NewStore(backend, zap.NewNop()), backend
}

func TestArtifactName(t *testing.T) {
	tbl := database.Table{Schema: "dbo", Name: "Customers"}
	name := ArtifactName("", tbl, "new")
	assert.Regexp(t, `^new_hash_dbo_Customers_[0-9a-f]{16}\.txt$`, name)
	assert.Equal(t, name, ArtifactName("", tbl, "new"))
	assert.Equal(t, "run1-"+strings.Replace(name, "new_", "old_", 1), ArtifactName("run1-", tbl, "old"))

	odd := database.Table{Schema: "a/b", Name: "..\\c"}
	assert.Regexp(t, `^old_hash_a_b___c_[0-9a-f]{16}\.txt$`, ArtifactName("", odd, "old"))
}

func TestArtifactName_DistinctTables(t *testing.T) {
	pairs := [][2]database.Table{
		{{Schema: "sales", Name: "order_items"}, {Schema: "sales_order", Name: "items"}},
		{{Schema: "main", Name: "x/y"}, {Schema: "main", Name: "x_y"}},
		{{Schema: "a", Name: "b..c"}, {Schema: "a", Name: "b_c"}},
		{{Schema: "dbo", Name: "Orders"}, {Schema: "dbo", Name: "orders"}},
	}

	for _, p := range pairs {
		t.Run(p[0].FullName()+" vs "+p[1].FullName(), func(t *testing.T) {
			assert.NotEqual(t, ArtifactName("", p[0], "old"), ArtifactName("", p[1], "old"))
		})
	}
}

func TestStore_CaptureAndReplay(t *testing.T) {
	store, backend := newDiskStore(t)
	ctx := context.Background()

	h, err := store.Capture(ctx, "old_hash_dbo_t.txt", seqOf("A", "B", "B", "C"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), h.Count)

	data, err := os.ReadFile(filepath.Join(backend.Dir, h.Name))
	require.NoError(t, err)
	assert.Equal(t, "A\nB\nB\nC\n", string(data))

	var lines []Fingerprint
	for fp, err := range store.Lines(ctx, h) {
		require.NoError(t, err)
		lines = append(lines, fp)
	}
	assert.Equal(t, []Fingerprint{"A", "B", "B", "C"}, lines)

	set, err := store.Set(ctx, h)
	require.NoError(t, err)
	assert.Len(t, set, 3)
	assert.Contains(t, set, Fingerprint("B"))
}

func TestStore_CaptureOverwrites(t *testing.T) {
	store, _ := newDiskStore(t)
	ctx := context.Background()

	_, err := store.Capture(ctx, "x.txt", seqOf("A", "B"))
	require.NoError(t, err)
	h, err := store.Capture(ctx, "x.txt", seqOf("C"))
	require.NoError(t, err)

	set, err := store.Set(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, map[Fingerprint]struct{}{"C": {}}, set)
}

func TestStore_CaptureSourceError(t *testing.T) {
	store, _ := newDiskStore(t)
	boom := errors.New("connection reset")

	seq := func(yield func(Fingerprint, error) bool) {
		if !yield("A", nil) {
			return
		}
		yield("", boom)
	}

	h, err := store.Capture(context.Background(), "y.txt", seq)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrStorage)
}

func TestStore_CaptureStorageError(t *testing.T) {
	store := NewStore(&DiskBackend{Dir: filepath.Join(t.TempDir(), "missing", "dir")}, nil)

	_, err := store.Capture(context.Background(), "z.txt", seqOf("A"))
	assert.ErrorIs(t, err, ErrStorage)
}

func TestStore_Dispose(t *testing.T) {
	store, backend := newDiskStore(t)
	ctx := context.Background()

	h, err := store.Capture(ctx, "d.txt", seqOf("A"))
	require.NoError(t, err)

	store.Dispose(ctx, h, nil)
	_, err = os.Stat(filepath.Join(backend.Dir, "d.txt"))
	assert.True(t, os.IsNotExist(err))

	// Disposing twice is harmless.
	store.Dispose(ctx, h)
}

func TestStore_DisposeFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	backend := &failingBackend{DiskBackend: DiskBackend{Dir: t.TempDir()}}
	store := NewStore(backend, zap.New(core))

	store.Dispose(context.Background(), &Handle{Name: "gone.txt"})

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "failed to remove fingerprint artifact", logs.All()[0].Message)
}

type failingBackend struct {
	DiskBackend
}

func (b *failingBackend) Remove(context.Context, string) error {
	return errors.New("permission denied")
}
