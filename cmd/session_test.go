package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"dbcompare/core/config"
	"dbcompare/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()

	for name, row := range map[string]string{"old.db": "'Bob'", "new.db": "'Bobby'"} {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: filepath.Join(dir, name)})
		require.NoError(t, err)
		require.NoError(t, db.Exec(`CREATE TABLE Customers (id INTEGER, name TEXT)`).Error)
		require.NoError(t, db.Exec(`INSERT INTO Customers VALUES (1, 'Alice'), (2, `+row+`)`).Error)
		require.NoError(t, database.Close(db))
	}

	yaml := fmt.Sprintf(`
database:
  old:
    driver: sqlite
    name: %s
  new:
    driver: sqlite
    name: %s
log:
  file: %s
  console: false
compare:
  temp_dir: %s
%s`, filepath.Join(dir, "old.db"), filepath.Join(dir, "new.db"), filepath.Join(dir, "compare.log"), filepath.Join(dir, "artifacts"), extra)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	return dir
}

func TestOpenSession_Run(t *testing.T) {
	dir := writeConfig(t, "")
	var console bytes.Buffer

	s, err := openSession(context.Background(), dir, &console, false)
	require.NoError(t, err)
	defer s.Close()

	summary, err := s.engine.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalMismatches)
	assert.Contains(t, console.String(), "[1/1] main.Customers comparing...")

	_ = s.logger.Sync()
	log, err := os.ReadFile(filepath.Join(dir, "compare.log"))
	require.NoError(t, err)
	assert.Contains(t, string(log), summary.RunID)
}

func TestOpenSession_InvalidConfig(t *testing.T) {
	dir := writeConfig(t, "  hash_mode: md5\n")
	_, err := openSession(context.Background(), dir, nil, false)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestOpenSession_ServerHashingUnsupported(t *testing.T) {
	dir := writeConfig(t, "")
	// SQLite has no digest function, so forcing server hashing must fail before any run.
	t.Setenv("COMPARE_HASH_MODE", "server")
	_, err := openSession(context.Background(), dir, nil, false)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestDefaultSchema(t *testing.T) {
	assert.Equal(t, "public", defaultSchema(database.DriverPostgres))
	assert.Equal(t, "main", defaultSchema(database.DriverSQLite))
	assert.Equal(t, "dbo", defaultSchema(database.DriverSQLServer))
	assert.Equal(t, "", defaultSchema(database.DriverMySQL))
}
