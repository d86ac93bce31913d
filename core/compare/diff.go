package compare

import (
	"context"

	"dbcompare/core/fingerprint"
)

// CountMissing returns how many old side fingerprints are absent from the new side.
// The new side is loaded into a set and the old side streamed against it, so
// duplicates on the new side collapse (set difference, not bag difference) while
// each old line is counted on its own.
func CountMissing(ctx context.Context, store *fingerprint.Store, oldHandle, newHandle *fingerprint.Handle) (int64, error) {
	if oldHandle.Count == 0 {
		return 0, nil
	}

	newSet, err := store.Set(ctx, newHandle)
	if err != nil {
		return 0, err
	}

	var missing int64
	for fp, err := range store.Lines(ctx, oldHandle) {
		if err != nil {
			return 0, err
		}
		if _, ok := newSet[fp]; !ok {
			missing++
		}
	}
	return missing, nil
}
