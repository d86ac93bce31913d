package fingerprint

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"strings"

	"dbcompare/core/database"
	"dbcompare/core/utils"

	"gorm.io/gorm"
)

// Hash modes.
const (
	ModeAuto   = "auto"
	ModeServer = "server"
	ModeClient = "client"
)

// Fingerprinter streams one Fingerprint per row of a table. The columns are
// concatenated in the given order, which must be identical for both sides.
type Fingerprinter interface {
	// Name identifies the strategy in logs.
	Name() string
	Fingerprints(ctx context.Context, db *gorm.DB, table database.Table, columns []string) iter.Seq2[Fingerprint, error]
}

// NewFingerprinter picks the strategy used for both sides of a comparison.
// In auto mode the digest is computed by the database only when both sides run
// the same engine and that engine has a digest function; otherwise rows are
// hashed in process with SHA-256.
func NewFingerprinter(mode string, oldDialect, newDialect database.Dialect) (Fingerprinter, error) {
	switch mode {
	case ModeClient:
		return &ClientFingerprinter{Hasher: SHA256Hasher{}}, nil
	case ModeServer:
		if oldDialect.Name() != newDialect.Name() {
			return nil, fmt.Errorf("server hashing requires identical engines, got %s and %s", oldDialect.Name(), newDialect.Name())
		}
		if _, ok := newDialect.HashExpression([]string{"x"}); !ok {
			return nil, fmt.Errorf("%s has no server side digest function", newDialect.Name())
		}
		return ServerFingerprinter{}, nil
	case ModeAuto, "":
		_, ok := newDialect.HashExpression([]string{"x"})
		if ok && oldDialect.Name() == newDialect.Name() {
			return ServerFingerprinter{}, nil
		}
		return &ClientFingerprinter{Hasher: SHA256Hasher{}}, nil
	default:
		return nil, fmt.Errorf("unknown hash mode: %s", mode)
	}
}

// ServerFingerprinter lets the database compute the digest of each row.
type ServerFingerprinter struct{}

// Name implements Fingerprinter.
func (ServerFingerprinter) Name() string { return ModeServer }

// Query builds the statement emitting one fingerprint per row.
func (ServerFingerprinter) Query(dialect database.Dialect, table database.Table, columns []string) (string, error) {
	expr, ok := dialect.HashExpression(columns)
	if !ok {
		return "", fmt.Errorf("%s has no server side digest function", dialect.Name())
	}
	return "SELECT " + expr + " AS hash_val FROM " + dialect.QualifiedTable(table), nil
}

// Fingerprints implements Fingerprinter.
func (s ServerFingerprinter) Fingerprints(ctx context.Context, db *gorm.DB, table database.Table, columns []string) iter.Seq2[Fingerprint, error] {
	return func(yield func(Fingerprint, error) bool) {
		dialect, err := database.DialectFor(db)
		if err != nil {
			yield("", err)
			return
		}
		query, err := s.Query(dialect, table, columns)
		if err != nil {
			yield("", err)
			return
		}

		rows, err := db.WithContext(ctx).Raw(query).Rows()
		if err != nil {
			yield("", fmt.Errorf("failed to fingerprint %s: %w", table, err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var hash sql.NullString
			if err := rows.Scan(&hash); err != nil {
				yield("", fmt.Errorf("failed to scan fingerprint of %s: %w", table, err))
				return
			}
			if !yield(Fingerprint(hash.String), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield("", fmt.Errorf("failed to fingerprint %s: %w", table, err))
		}
	}
}

// ClientFingerprinter selects the raw column values and hashes rows in process.
// Each value is rendered with utils.ToCanonicalString, NULL becoming "".
type ClientFingerprinter struct {
	Hasher Hasher
}

// Name implements Fingerprinter.
func (c *ClientFingerprinter) Name() string { return ModeClient }

// Query builds the statement selecting the raw columns in order.
func (c *ClientFingerprinter) Query(dialect database.Dialect, table database.Table, columns []string) string {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = dialect.Quote(col)
	}
	return "SELECT " + strings.Join(quoted, ", ") + " FROM " + dialect.QualifiedTable(table)
}

// Fingerprints implements Fingerprinter.
func (c *ClientFingerprinter) Fingerprints(ctx context.Context, db *gorm.DB, table database.Table, columns []string) iter.Seq2[Fingerprint, error] {
	return func(yield func(Fingerprint, error) bool) {
		dialect, err := database.DialectFor(db)
		if err != nil {
			yield("", err)
			return
		}

		rows, err := db.WithContext(ctx).Raw(c.Query(dialect, table, columns)).Rows()
		if err != nil {
			yield("", fmt.Errorf("failed to fingerprint %s: %w", table, err))
			return
		}
		defer rows.Close()

		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}

		var sb strings.Builder
		for rows.Next() {
			if err := rows.Scan(ptrs...); err != nil {
				yield("", fmt.Errorf("failed to scan row of %s: %w", table, err))
				return
			}
			sb.Reset()
			for _, v := range values {
				sb.WriteString(utils.ToCanonicalString(v))
			}
			if !yield(c.Hasher.Hash(sb.String()), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield("", fmt.Errorf("failed to fingerprint %s: %w", table, err))
		}
	}
}
