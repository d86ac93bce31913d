package compare

import (
	"context"
	"iter"
	"testing"

	"dbcompare/core/fingerprint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seqOf(fps ...fingerprint.Fingerprint) iter.Seq2[fingerprint.Fingerprint, error] {
	return func(yield func(fingerprint.Fingerprint, error) bool) {
		for _, fp := range fps {
			if !yield(fp, nil) {
				return
			}
		}
	}
}

func newStore(t *testing.T) *fingerprint.Store {
	backend, err := fingerprint.NewDiskBackend(t.TempDir())
	require.NoError(t, err)
	return fingerprint.NewStore(backend, zap.NewNop())
}

func TestCountMissing(t *testing.T) {
	tests := []struct {
		name     string
		old      []fingerprint.Fingerprint
		new      []fingerprint.Fingerprint
		expected int64
	}{
		{"partial overlap", []fingerprint.Fingerprint{"A", "B", "C"}, []fingerprint.Fingerprint{"B", "C", "D"}, 1},
		{"identical", []fingerprint.Fingerprint{"A", "B"}, []fingerprint.Fingerprint{"B", "A"}, 0},
		{"disjoint", []fingerprint.Fingerprint{"A", "B", "C"}, []fingerprint.Fingerprint{"X"}, 3},
		{"empty old", nil, []fingerprint.Fingerprint{"A"}, 0},
		{"empty new", []fingerprint.Fingerprint{"A", "B"}, nil, 2},
		{"both empty", nil, nil, 0},
		{"duplicates on new collapse", []fingerprint.Fingerprint{"A"}, []fingerprint.Fingerprint{"A", "A", "A"}, 0},
		{"duplicates on old counted each", []fingerprint.Fingerprint{"A", "A", "B"}, []fingerprint.Fingerprint{"B"}, 2},
		{"extra new rows are not counted", []fingerprint.Fingerprint{"A"}, []fingerprint.Fingerprint{"A", "B", "C"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			oldHandle, err := store.Capture(ctx, "old.txt", seqOf(tt.old...))
			require.NoError(t, err)
			newHandle, err := store.Capture(ctx, "new.txt", seqOf(tt.new...))
			require.NoError(t, err)

			missing, err := CountMissing(ctx, store, oldHandle, newHandle)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, missing)
		})
	}
}

func TestCountMissing_MissingArtifact(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	oldHandle, err := store.Capture(ctx, "old.txt", seqOf("A"))
	require.NoError(t, err)

	_, err = CountMissing(ctx, store, oldHandle, &fingerprint.Handle{Name: "gone.txt"})
	require.Error(t, err)
	assert.ErrorIs(t, err, fingerprint.ErrStorage)
}
