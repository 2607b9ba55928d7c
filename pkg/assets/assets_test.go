package assets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sgaunet/release-sync/internal/logger"
	"github.com/sgaunet/release-sync/pkg/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(name), 0o600))
	}
}

func TestSplitPatterns(t *testing.T) {
	assert.Equal(t,
		[]string{"dist/*.tar.gz", "README.md", "checksums.txt"},
		assets.SplitPatterns("dist/*.tar.gz README.md\n\tchecksums.txt\n"))
	assert.Empty(t, assets.SplitPatterns("  \n "))
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt", "dist/app-linux.tar.gz", "dist/app-darwin.tar.gz", "dist/notes.md")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "empty"), 0o750))
	t.Chdir(dir)

	resolver := assets.NewResolver(logger.NoLogger())

	t.Run("missing file is dropped", func(t *testing.T) {
		got := resolver.Resolve("a.txt missing.txt")
		assert.Equal(t, []string{filepath.Join(dir, "a.txt")}, got)
	})

	t.Run("glob in sorted order", func(t *testing.T) {
		got := resolver.Resolve("dist/*.tar.gz")
		assert.Equal(t, []string{
			filepath.Join(dir, "dist", "app-darwin.tar.gz"),
			filepath.Join(dir, "dist", "app-linux.tar.gz"),
		}, got)
	})

	t.Run("duplicates keep first occurrence", func(t *testing.T) {
		got := resolver.Resolve("dist/app-linux.tar.gz dist/*.tar.gz " + filepath.Join(dir, "dist", "app-linux.tar.gz"))
		assert.Equal(t, []string{
			filepath.Join(dir, "dist", "app-linux.tar.gz"),
			filepath.Join(dir, "dist", "app-darwin.tar.gz"),
		}, got)
	})

	t.Run("directories and empty globs are dropped", func(t *testing.T) {
		got := resolver.Resolve("empty dist dist/*.zip")
		assert.Empty(t, got)
	})

	t.Run("invalid pattern is dropped", func(t *testing.T) {
		got := resolver.Resolve("[ a.txt")
		assert.Equal(t, []string{filepath.Join(dir, "a.txt")}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, resolver.Resolve(""))
	})

	t.Run("deterministic", func(t *testing.T) {
		input := "dist/* a.txt dist/notes.md"
		first := resolver.Resolve(input)
		second := resolver.Resolve(input)
		assert.Equal(t, first, second)

		seen := make(map[string]bool)
		for _, p := range first {
			assert.False(t, seen[p], "repeated path %s", p)
			seen[p] = true
			assert.True(t, filepath.IsAbs(p))
		}
	})
}

func TestNewResolver_NilLogger(t *testing.T) {
	assert.Empty(t, assets.NewResolver(nil).Resolve("does-not-exist"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "app.tar.gz")

	t.Run("regular file", func(t *testing.T) {
		file, err := assets.Load(filepath.Join(dir, "app.tar.gz"))
		require.NoError(t, err)
		assert.Equal(t, "app.tar.gz", file.Name)
		assert.Equal(t, int64(len("app.tar.gz")), file.Size)
		assert.Equal(t, []byte("app.tar.gz"), file.Content)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := assets.Load(filepath.Join(dir, "gone.zip"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := assets.Load(dir)
		require.ErrorIs(t, err, assets.ErrNotRegularFile)
	})
}
