// Package testutil holds fixtures and helpers shared by the package tests.
package testutil

import (
	"bytes"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// MemFs returns an in-memory filesystem populated with files, keyed by
// absolute path.
func MemFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(name), 0755))
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
	return fs
}

// SmallProject returns the small 11-job project (pipeline file plus job
// directories) rooted at root, keyed by full path.
func SmallProject(root string) map[string]string {
	files := make(map[string]string, len(smallProjectFiles)+1)
	files[filepath.Join(root, "default_pipeline.star")] = SmallPipelineSTAR
	for name, content := range smallProjectFiles {
		files[filepath.Join(root, name)] = content
	}
	return files
}
