package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/strive-cao-api/internal/models"
	"github.com/noah-isme/strive-cao-api/pkg/catalog"
)

const sampleCatalog = `
courses:
  - id: CK401
    title: Computer Science
    college: University College Cork
    points: 400
    category: STEM
  - id: DN600
    title: "  "
    college: Nowhere
    points: 100
    category: arts
  - id: TU857
    title: Liberal Arts
    college: TU Dublin
    points: 300
`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courses.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoaderList(t *testing.T) {
	loader, err := catalog.NewLoader(writeCatalog(t, sampleCatalog), nil)
	require.NoError(t, err)

	courses, err := loader.List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "CK401", courses[0].ID)
	assert.Equal(t, "stem", courses[0].Category)
	assert.Equal(t, 400, courses[0].Points)
	assert.Equal(t, string(models.CategoryGeneral), courses[1].Category)
}

func TestLoaderListReturnsCopy(t *testing.T) {
	loader, err := catalog.NewLoader(writeCatalog(t, sampleCatalog), nil)
	require.NoError(t, err)

	first, _ := loader.List(context.Background())
	first[0].Title = "mutated"
	second, _ := loader.List(context.Background())
	assert.Equal(t, "Computer Science", second[0].Title)
}

func TestLoaderReload(t *testing.T) {
	path := writeCatalog(t, sampleCatalog)
	loader, err := catalog.NewLoader(path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("courses:\n  - title: Only\n    points: 10\n    category: business\n"), 0o644))
	require.NoError(t, loader.Reload())

	courses, _ := loader.List(context.Background())
	require.Len(t, courses, 1)
	assert.Equal(t, "Only", courses[0].Title)
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := catalog.NewLoader(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestParseRejectsNegativePoints(t *testing.T) {
	_, err := catalog.Parse([]byte("courses:\n  - title: Bad\n    points: -1\n"))
	assert.Error(t, err)
}
