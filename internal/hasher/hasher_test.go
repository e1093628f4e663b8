package hasher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHash(t *testing.T) {
	// xxHash64 of the empty input
	assert.Equal(t, "ef46db3751d8e999", ContentHash(nil, 0))
	assert.Equal(t, "ef46db37", ContentHash([]byte{}, 8))
	assert.Len(t, ContentHash([]byte("x"), 99), 16)
	assert.NotEqual(t, ContentHash([]byte("a"), 16), ContentHash([]byte("b"), 16))
	assert.Equal(t, ContentHash([]byte("gradient"), 12), StringHash("gradient", 12))
}

func TestReaderAndFileMatch(t *testing.T) {
	data := strings.Repeat("phoenyx", 1000)
	want := ContentHash([]byte(data), 16)

	got, err := ContentHashReader(strings.NewReader(data), 16)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	got, err = FileHash(path, 16)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = FileHash(filepath.Join(t.TempDir(), "missing"), 8)
	assert.Error(t, err)
}
