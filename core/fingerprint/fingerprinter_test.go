package fingerprint

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"dbcompare/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func setupSQLite(t *testing.T, name string) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: filepath.Join(t.TempDir(), name)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func collect(t *testing.T, f Fingerprinter, db *gorm.DB, table database.Table, cols []string) []Fingerprint {
	t.Helper()
	var out []Fingerprint
	for fp, err := range f.Fingerprints(context.Background(), db, table, cols) {
		require.NoError(t, err)
		out = append(out, fp)
	}
	return out
}

func TestNewFingerprinter(t *testing.T) {
	my, _ := database.DialectByName(database.DriverMySQL)
	pg, _ := database.DialectByName(database.DriverPostgres)
	lite, _ := database.DialectByName(database.DriverSQLite)

	tests := []struct {
		name     string
		mode     string
		old, new database.Dialect
		want     string
		wantErr  bool
	}{
		{"AutoSameServer", ModeAuto, my, my, ModeServer, false},
		{"AutoMixedEngines", ModeAuto, my, pg, ModeClient, false},
		{"AutoNoDigest", ModeAuto, lite, lite, ModeClient, false},
		{"ClientForced", ModeClient, my, my, ModeClient, false},
		{"ServerForced", ModeServer, pg, pg, ModeServer, false},
		{"ServerMixed", ModeServer, my, pg, "", true},
		{"ServerSQLite", ModeServer, lite, lite, "", true},
		{"Unknown", "md5", my, my, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFingerprinter(tt.mode, tt.old, tt.new)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Name())
		})
	}
}

func TestServerFingerprinter_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"hash_val"}).AddRow("aGFzaDE=").AddRow("aGFzaDI=")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT TO_BASE64(UNHEX(SHA2(CONCAT(COALESCE(CAST(`id` AS CHAR), ''), COALESCE(CAST(`name` AS CHAR), '')), 256))) AS hash_val FROM `customers`")).
		WillReturnRows(rows)

	got := collect(t, ServerFingerprinter{}, db, database.Table{Schema: "shop", Name: "customers"}, []string{"id", "name"})
	assert.Equal(t, []Fingerprint{"aGFzaDE=", "aGFzaDI="}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServerFingerprinter_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("table is locked"))

	var gotErr error
	for _, err := range (ServerFingerprinter{}).Fingerprints(context.Background(), db, database.Table{Name: "orders"}, []string{"id"}) {
		gotErr = err
	}
	require.Error(t, gotErr)
	assert.Contains(t, gotErr.Error(), "table is locked")
}

func TestServerFingerprinter_SQLiteUnsupported(t *testing.T) {
	lite, _ := database.DialectByName(database.DriverSQLite)
	_, err := ServerFingerprinter{}.Query(lite, database.Table{Schema: "main", Name: "t"}, []string{"id"})
	assert.Error(t, err)
}

func TestClientFingerprinter_SQLite(t *testing.T) {
	db := setupSQLite(t, "client.db")
	require.NoError(t, db.Exec(`CREATE TABLE customers (id INTEGER, name TEXT)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO customers VALUES (1, 'Alice'), (2, NULL), (2, '')`).Error)

	f := &ClientFingerprinter{Hasher: SHA256Hasher{}}
	got := collect(t, f, db, database.Table{Schema: "main", Name: "customers"}, []string{"id", "name"})

	require.Len(t, got, 3)
	assert.Equal(t, SHA256Hasher{}.Hash("1Alice"), got[0])
	// NULL and empty string normalize to the same text.
	assert.Equal(t, got[1], got[2])
	assert.Equal(t, SHA256Hasher{}.Hash("2"), got[1])
}

func TestClientFingerprinter_IdenticalRowsAcrossDatabases(t *testing.T) {
	oldDB := setupSQLite(t, "old.db")
	newDB := setupSQLite(t, "new.db")
	for _, db := range []*gorm.DB{oldDB, newDB} {
		require.NoError(t, db.Exec(`CREATE TABLE items (id INTEGER, price REAL, note TEXT)`).Error)
		require.NoError(t, db.Exec(`INSERT INTO items VALUES (7, 9.5, NULL)`).Error)
	}

	f := &ClientFingerprinter{Hasher: SHA256Hasher{}}
	tbl := database.Table{Schema: "main", Name: "items"}
	cols := []string{"id", "price", "note"}
	assert.Equal(t, collect(t, f, oldDB, tbl, cols), collect(t, f, newDB, tbl, cols))
}

func TestClientFingerprinter_Query(t *testing.T) {
	pg, _ := database.DialectByName(database.DriverPostgres)
	f := &ClientFingerprinter{Hasher: SHA256Hasher{}}
	assert.Equal(t, `SELECT "id", "Name" FROM "public"."users"`, f.Query(pg, database.Table{Schema: "public", Name: "users"}, []string{"id", "Name"}))
}
