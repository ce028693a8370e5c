package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-tournament/internal/domain/backup"
)

func TestSnapshotFile_WriteThenRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	snapshot := backup.Snapshot{
		Version:   backup.FormatVersion,
		CreatedAt: time.Date(2026, 8, 17, 9, 30, 0, 0, time.UTC),
		Collections: map[string][]backup.Document{
			backup.CollectionTeams: {backup.Document(`{"id":"garuda","name":"Garuda FC"}`)},
			backup.CollectionUsers: {},
		},
	}

	path, err := WriteSnapshotFile(dir, snapshot)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "backup-20260817T093000Z.json"), path)

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err), "temporary file should be renamed")

	got, err := ReadSnapshotFile(path)
	require.NoError(t, err)
	require.Equal(t, snapshot.Version, got.Version)
	require.True(t, snapshot.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Collections[backup.CollectionTeams], 1)
	require.JSONEq(t, `{"id":"garuda","name":"Garuda FC"}`, string(got.Collections[backup.CollectionTeams][0]))
}

func TestReadSnapshotFile_Errors(t *testing.T) {
	_, err := ReadSnapshotFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0o600))
	_, err = ReadSnapshotFile(broken)
	require.ErrorContains(t, err, "decode backup file")
}
