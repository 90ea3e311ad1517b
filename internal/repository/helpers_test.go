package repository_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mgiraldo/contrack/internal/db"
	"github.com/mgiraldo/contrack/internal/models"
)

// openTestDB opens a migrated, seeded database in a temp directory.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.OpenAt(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "should open and migrate test database")
	t.Cleanup(func() { database.Close() })

	return database
}

func testRepository(url string) models.Repository {
	return models.Repository{
		URL:          url,
		Organization: "Acme",
		Name:         "widget",
		Description:  "A test repository",
	}
}

func testContribution(repoURL, name string, priority int) models.Contribution {
	return models.Contribution{
		RepositoryURL:  repoURL,
		Name:           name,
		Overview:       "Overview of " + name,
		Description:    "Description of " + name,
		KeyCommits:     []string{"abc123"},
		RelatedCommits: []string{"def456"},
		TechnicalDetails: map[string]any{
			"technology_stack": "Go, SQLite",
		},
		ResumeBullets: []string{"Built " + name},
		Category:      "Feature",
		Priority:      priority,
	}
}
