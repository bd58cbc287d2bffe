package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/lumina-api/internal/services"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func useTempStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("STORE_DRIVER", "file")
	t.Setenv("STORE_PATH", filepath.Join(dir, "data"))
	t.Setenv("ARCHIVE_PATH", filepath.Join(dir, "archive"))
	t.Setenv("ADMIN_PASSWORD", "letmein")
	return dir
}

func TestWordsAndCurrency(t *testing.T) {
	out, err := runCmd(t, "", "words", "1500.50")
	require.NoError(t, err)
	assert.Equal(t, "One Thousand Five Hundred Riyals and Fifty Halalas Only\n", out)

	out, err = runCmd(t, "", "currency", "1234.5")
	require.NoError(t, err)
	assert.Equal(t, "﷼ 1,234.50\n", out)

	_, err = runCmd(t, "", "words", "lots")
	assert.Error(t, err)

	_, err = runCmd(t, "", "words", "-5")
	assert.Error(t, err)
}

func TestBackupRestoreAndExport(t *testing.T) {
	dir := useTempStore(t)

	snapshot := `{"version":1,"employees":[{"id":"e1","name":"Omar","role":"Mason","dailyWage":150,"phone":"","createdAt":"2025-03-01T08:00:00.000Z"}]}`

	_, err := runCmd(t, snapshot, "restore")
	assert.ErrorIs(t, err, services.ErrConfirmationRequired)

	out, err := runCmd(t, snapshot, "restore", "--confirm")
	require.NoError(t, err)
	assert.Contains(t, out, "employees")

	backupPath := filepath.Join(dir, "backup.json")
	_, err = runCmd(t, "", "backup", "--out", backupPath)
	require.NoError(t, err)
	data, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Omar"`)

	csvPath := filepath.Join(dir, "employees.csv")
	_, err = runCmd(t, "", "export", "--collection", "employees", "--out", csvPath)
	require.NoError(t, err)
	csv, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(csv), "Omar")

	_, err = runCmd(t, "", "export", "--collection", "secrets")
	assert.Error(t, err)
}

func TestRecalculateUnknownInvoice(t *testing.T) {
	useTempStore(t)

	_, err := runCmd(t, "", "recalculate", "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
