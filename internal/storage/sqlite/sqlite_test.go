package sqlitestorage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warnodata/extractor/internal/database"
	"github.com/warnodata/extractor/internal/model"
	"github.com/warnodata/extractor/internal/storage"
	"github.com/warnodata/extractor/pkg/core"
)

func TestBackend_DumpsOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.db")
	b, err := New(Config{DumpPath: path}, nil)
	require.NoError(t, err)
	require.NoError(t, b.Init())
	assert.Equal(t, path, b.GetExportedFilePath())

	run := &storage.Run{StartedAt: time.Now(), Sources: []string{"UniteDescriptor.ndf"}, Units: 2}
	require.NoError(t, b.StartRun(run))
	require.NoError(t, b.SaveUnits([]core.Unit{
		{DescriptorName: "Descriptor_Unit_T80U_SOV", ID: 12},
		{DescriptorName: "Descriptor_Unit_BMP2_SOV", ID: -1},
	}))
	require.NoError(t, b.EndRun())
	require.NoError(t, b.Close())

	assert.FileExists(t, path)

	db, err := database.GetSqliteDBStandalone(path)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	var names []string
	require.NoError(t, db.Model(&model.Unit{}).Where("run_id = ?", run.ID).Order("position").Pluck("descriptor_name", &names).Error)
	assert.Equal(t, []string{"Descriptor_Unit_T80U_SOV", "Descriptor_Unit_BMP2_SOV"}, names)

	var stored model.ExtractionRun
	require.NoError(t, db.First(&stored, run.ID).Error)
	assert.Equal(t, 2, stored.UnitCount)
}

func TestBackend_PeriodicDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "periodic.db")
	b, err := New(Config{DumpPath: path, DumpInterval: 20 * time.Millisecond}, nil)
	require.NoError(t, err)
	require.NoError(t, b.Init())
	defer func() { require.NoError(t, b.Close()) }()

	assert.Eventually(t, func() bool {
		return fileExists(path)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBackend_NoDumpPath(t *testing.T) {
	b, err := New(Config{}, nil)
	require.NoError(t, err)
	require.NoError(t, b.Init())
	assert.Empty(t, b.GetExportedFilePath())
	assert.NoError(t, b.Close())
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
