package logging

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRotator_RotatesAndKeepsMaxBackups(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(dir, 1, 2)
	require.NoError(t, err)
	r.maxSize = 64

	line := []byte(strings.Repeat("x", 40) + "\n")
	for i := 0; i < 6; i++ {
		_, err := r.Write(line)
		require.NoError(t, err)
	}
	require.NoError(t, r.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var backups int
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), logFileName+".") {
			backups++
		}
	}
	assert.LessOrEqual(t, backups, 2)
	assert.FileExists(t, dir+"/"+logFileName)
}

func TestParseLevel_String(t *testing.T) {
	tests := map[string]string{
		"trace":   "trace",
		"DEBUG":   "debug",
		"warning": "warn",
		"error":   "error",
		"":        "info",
		"bogus":   "info",
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in).String(), in)
	}
}
