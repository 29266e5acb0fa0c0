package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDocs_MarkdownIncludesSchema(t *testing.T) {
	dir := t.TempDir()

	files, err := generateDocs(rootCmd, docsMarkdown, dir, time.Unix(0, 0))
	require.NoError(t, err)

	assert.Contains(t, files, "pageflip.md")
	assert.Contains(t, files, "pageflip_run.md")
	assert.Contains(t, files, "pageflip_options.md")
	assert.Contains(t, files, "config.schema.json")

	page, err := os.ReadFile(filepath.Join(dir, "pageflip_options.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "--edit")
}

func TestGenerateDocs_ManIsDatedAndSchemaFree(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	files, err := generateDocs(rootCmd, docsMan, dir, date)
	require.NoError(t, err)

	assert.Contains(t, files, "pageflip.1")
	assert.NotContains(t, files, "config.schema.json")

	page, err := os.ReadFile(filepath.Join(dir, "pageflip.1"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "Mar 2024")
}

func TestGenerateDocs_UnknownFormat(t *testing.T) {
	_, err := generateDocs(rootCmd, "html", t.TempDir(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestDocsDate_PrefersSourceDateEpoch(t *testing.T) {
	t.Setenv("SOURCE_DATE_EPOCH", "86400")
	assert.Equal(t, time.Unix(86400, 0).UTC(), docsDate())
}
