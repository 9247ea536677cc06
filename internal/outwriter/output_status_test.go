package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/clonecache/internal/contract"
	"github.com/huangsam/clonecache/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStatus() schema.CacheStatus {
	now := time.Now()
	return schema.CacheStatus{
		TotalEntries:     3,
		MaxEntries:       50,
		OldestAccessTime: now.Add(-72 * time.Hour),
		NewestAccessTime: now,
		TotalSizeBytes:   10240,
		GlobalStorePath:  "/home/user/.clonecache/repos.json",
		ProjectStorePath: "/work/proj/.clonecache/repos.json",
	}
}

func TestWriteStatusResultText(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "status.txt")
	cfg := &contract.Config{Output: schema.TextOut, OutputFile: tmpFile}

	err := WriteStatusResult(sampleStatus(), cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	out := string(content)
	assert.Contains(t, out, "Total Entries: 3 / 50")
	assert.Contains(t, out, "Total Size: 10.0 KiB")
	assert.Contains(t, out, "Oldest Access:")
	assert.Contains(t, out, "Global Store: /home/user/.clonecache/repos.json")
	assert.Contains(t, out, "Project Store: /work/proj/.clonecache/repos.json")
}

func TestWriteStatusResultTextEmptyCache(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "status.txt")
	cfg := &contract.Config{Output: schema.TextOut, OutputFile: tmpFile}

	status := schema.CacheStatus{MaxEntries: 50, GlobalStorePath: "/home/user/.clonecache/repos.json"}
	err := WriteStatusResult(status, cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	out := string(content)
	assert.Contains(t, out, "Total Entries: 0 / 50")
	assert.NotContains(t, out, "Oldest Access:")
	assert.NotContains(t, out, "Project Store:")
}

func TestWriteStatusResultRejectsParquet(t *testing.T) {
	cfg := &contract.Config{Output: schema.ParquetOut}

	err := WriteStatusResult(sampleStatus(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported for status")
}

func TestWriteStatusResultJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "status.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: tmpFile}

	err := WriteStatusResult(sampleStatus(), cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, float64(3), decoded["totalEntries"])
	assert.Equal(t, float64(50), decoded["maxEntries"])
	assert.Equal(t, float64(10240), decoded["totalSizeBytes"])
}
