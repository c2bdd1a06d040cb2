// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCache points the cache at a fresh temp directory.
func setupCache(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvDir, dir)
	t.Setenv(EnvEnabled, "1")
	return dir
}

func TestDir(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		dir := setupCache(t)
		got, ok := Dir()
		assert.True(t, ok)
		assert.Equal(t, dir, got)
	})

	t.Run("user cache dir", func(t *testing.T) {
		t.Setenv(EnvDir, "")
		got, ok := Dir()
		if ok {
			assert.True(t, filepath.IsAbs(got))
			assert.Equal(t, "treecmp", filepath.Base(got))
		}
	})
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"yes", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(EnvEnabled, tt.value)
			assert.Equal(t, tt.expected, Enabled())
		})
	}
}

func TestEnsureBaseDir(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		t.Setenv(EnvEnabled, "0")
		base, ok, err := EnsureBaseDir()
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, base)
	})

	t.Run("creates nested directory", func(t *testing.T) {
		dir := filepath.Join(setupCache(t), "cache", "nested")
		t.Setenv(EnvDir, dir)
		assert.NoDirExists(t, dir)

		base, ok, err := EnsureBaseDir()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, dir, base)
		assert.DirExists(t, dir)
	})

	t.Run("base is a file", func(t *testing.T) {
		file := filepath.Join(setupCache(t), "file")
		require.NoError(t, os.WriteFile(file, nil, 0o600))
		t.Setenv(EnvDir, file)

		_, ok, err := EnsureBaseDir()
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestEntryPath(t *testing.T) {
	dir := setupCache(t)

	p, exists := EntryPath([]string{"deltas"}, "k")
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(dir, "deltas", encodeKey("k")), p)

	require.NoError(t, Write([]string{"deltas"}, "k", []byte("v")))
	p2, exists := EntryPath([]string{"deltas"}, "k")
	assert.True(t, exists)
	assert.Equal(t, p, p2)
}

func TestReadWrite(t *testing.T) {
	dir := setupCache(t)

	_, found := Read([]string{"deltas"}, "missing")
	assert.False(t, found)

	// Deltas can end in significant whitespace.
	data := []byte("=4\t+x \n")
	require.NoError(t, Write([]string{"deltas", "md5"}, "key", data))

	entry, found := Read([]string{"deltas", "md5"}, "key")
	require.True(t, found)
	assert.Equal(t, "key", entry.Key)
	assert.Equal(t, encodeKey("key"), entry.EncodedKey)
	assert.Equal(t, filepath.Join(dir, "deltas", "md5", entry.EncodedKey), entry.Path)
	assert.Equal(t, data, entry.Data)

	info, err := os.Stat(entry.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, Write([]string{"deltas", "md5"}, "key", []byte("new")))
	entry, _ = Read([]string{"deltas", "md5"}, "key")
	assert.Equal(t, []byte("new"), entry.Data)

	t.Run("disabled", func(t *testing.T) {
		t.Setenv(EnvEnabled, "false")
		_, found := Read([]string{"deltas", "md5"}, "key")
		assert.False(t, found)
		assert.NoError(t, Write([]string{"deltas"}, "other", []byte("x")))
		assert.NoFileExists(t, filepath.Join(dir, "deltas", encodeKey("other")))
	})
}

func TestStore(t *testing.T) {
	dir := setupCache(t)
	s := Store{"deltas"}

	_, ok := s.Read("a")
	assert.False(t, ok)

	require.NoError(t, s.Write("a", []byte("=3")))
	got, ok := s.Read("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("=3"), got)
	assert.FileExists(t, filepath.Join(dir, "deltas", encodeKey("a")))
}

func TestPurge(t *testing.T) {
	dir := setupCache(t)

	nested := filepath.Join(dir, "deltas", "md5")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	old := filepath.Join(nested, "old")
	recent := filepath.Join(dir, "recent")
	require.NoError(t, os.WriteFile(old, []byte("old"), 0o600))
	require.NoError(t, os.WriteFile(recent, []byte("recent"), 0o600))
	past := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	require.NoError(t, Purge(0))
	assert.FileExists(t, old, "zero hours disables purging")

	require.NoError(t, Purge(1))
	assert.NoFileExists(t, old)
	assert.FileExists(t, recent)
	assert.DirExists(t, nested)
}

func TestPurgeMissingBase(t *testing.T) {
	t.Setenv(EnvDir, filepath.Join(t.TempDir(), "absent"))
	assert.NoError(t, Purge(1))
}

func TestEncodeKey(t *testing.T) {
	assert.Equal(t, encodeKey("k"), encodeKey("k"))
	assert.NotEqual(t, encodeKey("key-one"), encodeKey("key-two"))

	for _, key := range []string{"", "key with spaces", "a/b\\c", "ڀ\n"} {
		encoded := encodeKey(key)
		assert.Len(t, encoded, 64)
		assert.Regexp(t, `^[0-9a-f]{64}$`, encoded)
	}
}
