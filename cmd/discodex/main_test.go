package main_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/discodex/cmd/discodex"
	"github.com/fwojciec/discodex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_List(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"list"}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No albums stored")
}

func TestMain_Run_Export(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	dir := t.TempDir()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"export", "--out", dir}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Wrote 0 albums")

	// Even an empty export produces a header-only CSV
	f, err := os.Open(filepath.Join(dir, fs.RecordsFileName))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "artiste", rows[0][0])
}

func TestMain_Run_UnknownCommand(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), []string{"bogus"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
}
