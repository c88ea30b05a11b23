package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeMigration(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestValidateDirAcceptsEmbeddedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestValidateDirReportsAllProblems(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_bad_version.sql", "-- +goose Up\n-- +goose Down\n")
	writeMigration(t, dir, "20250901120000_ok.sql", "-- +goose Up\n-- +goose Down\n")
	writeMigration(t, dir, "20250901120000_dup.sql", "-- +goose Up\n-- +goose Down\n")
	writeMigration(t, dir, "20250901130000_headless.sql", "CREATE TABLE x (id TEXT);\n")

	err := ValidateDir(dir)
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 4)
}

func TestValidateDirIgnoresNonSQLFiles(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "notes.txt", "not a migration")
	writeMigration(t, dir, "20250901120000_ok.sql", "-- +goose Up\n-- +goose Down\n")

	require.NoError(t, ValidateDir(dir))
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Foto Index!")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_add_foto_index.sql"))

	require.NoError(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "")
	require.Error(t, err)
}
