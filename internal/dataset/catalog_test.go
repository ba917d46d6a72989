package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadCatalog(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"a.csv": "Area_Name,Year,Cases\nKerala,2011,5\n",
		"b.csv": "Area_Name,Year,Cases\nDelhi,2012,7\nDelhi,2010,3\n",
	})

	catalog, err := LoadCatalog(dir, map[string]string{
		"Alpha": "a.csv",
		"Beta":  "b.csv",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Alpha", "Beta"}, catalog.Names())

	d, ok := catalog.Get("Beta")
	require.True(t, ok)
	assert.Equal(t, "b.csv", d.File)
	assert.Len(t, d.Records, 2)
	assert.Equal(t, []int{2010, 2012}, d.Years())

	_, ok = catalog.Get("Gamma")
	assert.False(t, ok)
}

func TestLoadCatalog_MissingFileIsError(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"a.csv": "Area_Name,Year,Cases\nKerala,2011,5\n",
	})

	_, err := LoadCatalog(dir, map[string]string{
		"Alpha":   "a.csv",
		"Missing": "missing.csv",
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing")
}

func TestCatalog_Reload(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"a.csv": "Area_Name,Year,Cases\nKerala,2011,5\n",
	})
	sources := map[string]string{"Alpha": "a.csv"}

	catalog, err := LoadCatalog(dir, sources, nil)
	require.NoError(t, err)

	d, _ := catalog.Get("Alpha")
	require.Len(t, d.Records, 1)

	content := "Area_Name,Year,Cases\nKerala,2011,5\nDelhi,2012,7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte(content), 0o644))
	require.NoError(t, catalog.Reload())

	d, _ = catalog.Get("Alpha")
	assert.Len(t, d.Records, 2)
}

func TestCatalog_ReloadFailureKeepsOldData(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"a.csv": "Area_Name,Year,Cases\nKerala,2011,5\n",
	})

	catalog, err := LoadCatalog(dir, map[string]string{"Alpha": "a.csv"}, nil)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "a.csv")))
	assert.Error(t, catalog.Reload())

	d, ok := catalog.Get("Alpha")
	require.True(t, ok, "previous datasets survive a failed reload")
	assert.Len(t, d.Records, 1)
}

func TestDataset_YearsAndGroups(t *testing.T) {
	d := &Dataset{Records: []CrimeRecord{
		{State: "Kerala", Year: 2012, Group: "Murder"},
		{State: "Kerala", Year: 2010, Group: "Murder"},
		{State: "Kerala", Year: 2012, Group: "Theft"},
		{State: "Kerala", Year: 0, Group: "Theft"},
	}}

	assert.Equal(t, []int{2010, 2012}, d.Years(), "distinct, sorted, zero excluded")
	assert.Equal(t, []string{"Murder", "Theft"}, d.Groups())
}
