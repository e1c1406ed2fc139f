package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add lot indexes", "add_lot_indexes"},
		{"Add-Lot-Indexes", "add_lot_indexes"},
		{"ADD_LOT_INDEXES", "add_lot_indexes"},
		{"add__lot__indexes", "add_lot_indexes"},
		{"Add Lots 123", "add_lots_123"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreate(t *testing.T) {
	tmpDir := t.TempDir()

	f, err := Create(tmpDir, "add lot indexes", "Indexes for FIFO lot scans")
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Len(t, f.Version, 14)
	assert.True(t, strings.HasSuffix(f.UpPath, ".up.sql"))
	assert.True(t, strings.HasSuffix(f.DownPath, ".down.sql"))

	upBase := strings.TrimSuffix(filepath.Base(f.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(f.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase)

	upContent, err := os.ReadFile(f.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "add lot indexes")
	assert.Contains(t, string(upContent), "Indexes for FIFO lot scans")
	assert.Contains(t, string(upContent), "Write your UP migration SQL here")

	downContent, err := os.ReadFile(f.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(downContent), "Rollback")
	assert.Contains(t, string(downContent), "Write your DOWN migration SQL here")
}

func TestCreate_MakesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "migrations")

	f, err := Create(nested, "test", "test migration")
	require.NoError(t, err)
	require.NotNil(t, f)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestList(t *testing.T) {
	tmpDir := t.TempDir()

	files := []string{
		"000001_init_schema.up.sql",
		"000001_init_schema.down.sql",
		"000002_add_lots.up.sql",
		"000002_add_lots.down.sql",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, f), []byte("-- test"), 0644))
	}

	names, err := List(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init_schema", "000002_add_lots"}, names)
}

func TestList_MissingDirectory(t *testing.T) {
	names, err := List(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, names)
}
