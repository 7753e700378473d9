package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStager(t *testing.T) *LocalStager {
	t.Helper()
	return NewLocalStager(t.TempDir(), "/images/default-logo.png")
}

func TestSaveSanitizesAndStoresFile(t *testing.T) {
	stager := newTestStager(t)

	path, err := stager.Save("resumes", "my resume (final).pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "/resumes/"))
	assert.NotContains(t, path, " ")
	assert.NotContains(t, path, "(")
	assert.True(t, strings.HasSuffix(path, ".pdf"))
}

func TestSaveRejectsUnusableFilename(t *testing.T) {
	stager := newTestStager(t)

	_, err := stager.Save("resumes", "///", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestRemoveDeletesStoredFile(t *testing.T) {
	dir := t.TempDir()
	stager := NewLocalStager(dir, "/images/default-logo.png")

	path, err := stager.Save("companyLogos", "logo.png", strings.NewReader("png"))
	require.NoError(t, err)

	full := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(path, "/")))
	_, err = os.Stat(full)
	require.NoError(t, err)

	require.NoError(t, stager.Remove(path))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveIgnoresDefaultAndEmpty(t *testing.T) {
	stager := newTestStager(t)

	assert.NoError(t, stager.Remove(""))
	assert.NoError(t, stager.Remove("/images/default-logo.png"))
}

func TestRemoveBlocksRootEscape(t *testing.T) {
	stager := newTestStager(t)

	err := stager.Remove("/../outside.txt")
	assert.Error(t, err)
}

func TestIsDefault(t *testing.T) {
	stager := newTestStager(t)

	assert.True(t, stager.IsDefault("/images/default-logo.png"))
	assert.True(t, stager.IsDefault("/companyLogos/default-logo.png"))
	assert.False(t, stager.IsDefault("/companyLogos/acme.png"))
}
